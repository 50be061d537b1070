package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ============================================================================
// Mocks
// ============================================================================

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, log *activity.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]*activity.ActivityLog, error) {
	args := m.Called(ctx, aggregateType, aggregateID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]*activity.ActivityLog, error) {
	args := m.Called(ctx, actorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.ActivityLog), args.Error(1)
}

// ============================================================================
// Recorder Tests
// ============================================================================

func TestRecorder_Handle(t *testing.T) {
	customerID := uuid.New()
	shopID := uuid.New()

	newDeliveredEvent := func(t *testing.T) shared.DomainEvent {
		t.Helper()
		o, err := order.NewOrder("ORD-20260829-0001", customerID, shopID)
		require.NoError(t, err)
		return order.NewOrderDeliveredEvent(o, shopID)
	}

	t.Run("should record one entry per event with a populated payload", func(t *testing.T) {
		repo := new(MockActivityRepository)
		recorder := NewRecorder(repo, zap.NewNop())
		event := newDeliveredEvent(t)

		var recorded *activity.ActivityLog
		repo.On("Record", mock.Anything, mock.AnythingOfType("*activity.ActivityLog")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*activity.ActivityLog)
			}).
			Return(nil)

		err := recorder.Handle(context.Background(), event)

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, event.EventType(), recorded.EventType)
		assert.Equal(t, event.AggregateType(), recorded.AggregateType)
		assert.Equal(t, event.AggregateID(), recorded.AggregateID)
		assert.Equal(t, shopID, recorded.ActorID)
		assert.NotEmpty(t, recorded.Payload)
		assert.Equal(t, event.OccurredAt(), recorded.OccurredAt)
	})

	t.Run("should swallow repository failures", func(t *testing.T) {
		repo := new(MockActivityRepository)
		recorder := NewRecorder(repo, zap.NewNop())

		repo.On("Record", mock.Anything, mock.AnythingOfType("*activity.ActivityLog")).
			Return(errors.New("insert failed"))

		err := recorder.Handle(context.Background(), newDeliveredEvent(t))

		assert.NoError(t, err)
	})

	t.Run("should subscribe to all event types", func(t *testing.T) {
		recorder := NewRecorder(new(MockActivityRepository), zap.NewNop())
		assert.Empty(t, recorder.EventTypes())
	})
}
