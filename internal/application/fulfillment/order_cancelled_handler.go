package fulfillment

import (
	"context"
	"fmt"

	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderCancelledHandler handles OrderCancelledEvent: when the fulfilling
// shop rejects an order that carried customization work, the linked approved
// requests get their shop selection reopened so the customer can pick a
// different shop.
type OrderCancelledHandler struct {
	requestRepo      customization.RequestRepository
	matchInvalidator MatchCacheInvalidator
	logger           *zap.Logger
}

// NewOrderCancelledHandler creates a new handler for order cancelled events
func NewOrderCancelledHandler(
	requestRepo customization.RequestRepository,
	logger *zap.Logger,
) *OrderCancelledHandler {
	return &OrderCancelledHandler{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// SetMatchInvalidator sets the shop matching cache invalidator
func (h *OrderCancelledHandler) SetMatchInvalidator(invalidator MatchCacheInvalidator) {
	h.matchInvalidator = invalidator
}

// EventTypes returns the event types this handler is interested in
func (h *OrderCancelledHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCancelled}
}

// Handle reopens shop selection on the cancelled order's requests
func (h *OrderCancelledHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(*order.OrderCancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderCancelled, event.EventType())
	}

	if len(cancelled.CustomizationRequestIDs) == 0 {
		return nil
	}

	h.logger.Info("processing order cancelled event",
		zap.String("order_id", cancelled.OrderID.String()),
		zap.String("order_number", cancelled.OrderNumber),
		zap.Int("request_count", len(cancelled.CustomizationRequestIDs)),
	)

	var lastErr error
	for _, requestID := range cancelled.CustomizationRequestIDs {
		request, err := h.requestRepo.FindByID(ctx, requestID)
		if err != nil {
			h.logger.Error("failed to load customization request",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		// only requests still bound to the cancelling shop reopen
		if request.ShopID == nil || *request.ShopID != cancelled.ShopID {
			continue
		}

		if err := request.ReopenShopSelection(); err != nil {
			h.logger.Warn("shop selection not reopenable",
				zap.String("request_id", requestID.String()),
				zap.String("status", request.Status.String()),
				zap.Error(err),
			)
			continue
		}

		if err := h.requestRepo.SaveWithLock(ctx, request); err != nil {
			h.logger.Error("failed to persist reopened shop selection",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if h.matchInvalidator != nil {
			_ = h.matchInvalidator.InvalidateForRequest(ctx, requestID)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("some customization requests failed to reopen: %w", lastErr)
	}
	return nil
}

// Ensure OrderCancelledHandler implements shared.EventHandler
var _ shared.EventHandler = (*OrderCancelledHandler)(nil)
