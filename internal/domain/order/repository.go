package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	GenerateOrderNumber(ctx context.Context) (string, error)

	// TransitionStatus persists a status transition as a single conditional
	// write keyed on the prior status ("UPDATE ... WHERE status = from").
	// The order must already carry the new state produced by a domain
	// transition method. If the row is no longer in `from` the write affects
	// zero rows and shared.ErrConcurrencyConflict is returned, leaving the
	// stored order untouched.
	//
	// When sideEffect is non-nil it runs inside the same transaction after
	// the conditional update succeeds; an error from it rolls the whole
	// transition back. The shipped transition uses this to couple escrow
	// release to the exactly-once traversal of to_ship -> shipped.
	TransitionStatus(ctx context.Context, o *Order, from OrderStatus, sideEffect func(ctx context.Context) error) error
}
