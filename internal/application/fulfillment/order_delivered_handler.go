package fulfillment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MatchCacheInvalidator drops memoized shop matching candidate lists.
// Implemented by the shop matching service.
type MatchCacheInvalidator interface {
	InvalidateForRequest(ctx context.Context, requestID uuid.UUID) error
	InvalidateAll(ctx context.Context) error
}

// OrderDeliveredHandler handles OrderDeliveredEvent: it closes the
// customization requests the order fulfilled and credits the shop's
// completed order counter.
type OrderDeliveredHandler struct {
	requestRepo      customization.RequestRepository
	shopRepo         partner.ShopRepository
	matchInvalidator MatchCacheInvalidator
	logger           *zap.Logger
}

// NewOrderDeliveredHandler creates a new handler for order delivered events
func NewOrderDeliveredHandler(
	requestRepo customization.RequestRepository,
	shopRepo partner.ShopRepository,
	logger *zap.Logger,
) *OrderDeliveredHandler {
	return &OrderDeliveredHandler{
		requestRepo: requestRepo,
		shopRepo:    shopRepo,
		logger:      logger,
	}
}

// SetMatchInvalidator sets the shop matching cache invalidator
func (h *OrderDeliveredHandler) SetMatchInvalidator(invalidator MatchCacheInvalidator) {
	h.matchInvalidator = invalidator
}

// EventTypes returns the event types this handler is interested in
func (h *OrderDeliveredHandler) EventTypes() []string {
	return []string{order.EventTypeOrderDelivered}
}

// Handle completes the delivered order's customization requests
func (h *OrderDeliveredHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	delivered, ok := event.(*order.OrderDeliveredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderDelivered, event.EventType())
	}

	h.logger.Info("processing order delivered event",
		zap.String("order_id", delivered.OrderID.String()),
		zap.String("order_number", delivered.OrderNumber),
		zap.Int("request_count", len(delivered.CustomizationRequestIDs)),
	)

	if err := h.shopRepo.IncrementCompletedOrders(ctx, delivered.ShopID); err != nil {
		h.logger.Error("failed to credit shop completed orders",
			zap.String("shop_id", delivered.ShopID.String()),
			zap.Error(err),
		)
		// the counter is informational; keep closing requests
	} else if h.matchInvalidator != nil {
		// the counter orders bucket 3, so memoized candidate lists are stale
		_ = h.matchInvalidator.InvalidateAll(ctx)
	}

	var lastErr error
	for _, requestID := range delivered.CustomizationRequestIDs {
		request, err := h.requestRepo.FindByID(ctx, requestID)
		if err != nil {
			h.logger.Error("failed to load customization request",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		from := request.Status
		if err := request.Complete(); err != nil {
			// already completed requests are fine on redelivery
			if shared.KindOf(err) == shared.ErrorKindConflict && request.Status == customization.RequestStatusCompleted {
				continue
			}
			h.logger.Warn("customization request not completable",
				zap.String("request_id", requestID.String()),
				zap.String("status", request.Status.String()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if err := h.requestRepo.TransitionStatus(ctx, request, from); err != nil {
			h.logger.Error("failed to persist request completion",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("some customization requests failed to complete: %w", lastErr)
	}
	return nil
}

// Ensure OrderDeliveredHandler implements shared.EventHandler
var _ shared.EventHandler = (*OrderDeliveredHandler)(nil)
