package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/domain/shared"
)

// ============================================================================
// Test Helpers
// ============================================================================

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Order", uuid.New(), uuid.New())
	return &e
}

// ============================================================================
// Event Bus Tests
// ============================================================================

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("should dispatch to handlers subscribed to the type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"OrderAccepted"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("OrderAccepted"), newTestEvent("OrderCancelled"))

		require.NoError(t, err)
		assert.Equal(t, 1, handler.seen())
	})

	t.Run("should dispatch every event to wildcard handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("OrderAccepted"), newTestEvent("CustomizationRequestApproved"))

		require.NoError(t, err)
		assert.Equal(t, 2, handler.seen())
	})

	t.Run("should keep dispatching when a handler fails", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"OrderAccepted"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"OrderAccepted"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent("OrderAccepted"))

		require.NoError(t, err)
		assert.Equal(t, 1, healthy.seen())
	})

	t.Run("should survive a panicking handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicky := &recordingHandler{types: []string{"OrderAccepted"}, panics: true}
		healthy := &recordingHandler{types: []string{"OrderAccepted"}}
		bus.Subscribe(panicky)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent("OrderAccepted"))
		})
		assert.Equal(t, 1, healthy.seen())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"OrderAccepted"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderAccepted")))
	assert.Equal(t, 0, handler.seen())
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))
}
