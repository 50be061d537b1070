package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/application/fulfillment"
)

// Ensure NoopEscrowLedger implements EscrowLedger
var _ fulfillment.EscrowLedger = (*NoopEscrowLedger)(nil)

// NoopEscrowLedger logs releases instead of calling the payments service.
// Use it in development when no ledger is running.
type NoopEscrowLedger struct {
	logger *zap.Logger
}

// NewNoopEscrowLedger creates a new NoopEscrowLedger
func NewNoopEscrowLedger(logger *zap.Logger) *NoopEscrowLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopEscrowLedger{logger: logger}
}

// ReleaseFunds logs the release and succeeds
func (l *NoopEscrowLedger) ReleaseFunds(ctx context.Context, orderID, shopID uuid.UUID, amount decimal.Decimal) error {
	l.logger.Info("Escrow release (noop)",
		zap.String("order_id", orderID.String()),
		zap.String("shop_id", shopID.String()),
		zap.String("amount", amount.String()),
	)
	return nil
}
