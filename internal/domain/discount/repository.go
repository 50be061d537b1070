package discount

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// DiscountRepository defines the persistence contract for discounts
type DiscountRepository interface {
	// FindByID finds a discount by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	// FindAll finds discounts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Discount, error)

	// FindActiveByShop finds active discounts owned by a shop
	FindActiveByShop(ctx context.Context, shopID uuid.UUID) ([]*Discount, error)

	// Save persists a discount
	Save(ctx context.Context, d *Discount) error

	// IncrementUsage bumps used_count by one as a single guarded write
	// ("UPDATE ... WHERE used_count < usage_limit" when a limit is set).
	// Returns shared.ErrConflict-kind error when the limit is exhausted so
	// concurrent checkouts can never overrun the cap.
	IncrementUsage(ctx context.Context, id uuid.UUID) error

	// DecrementUsage releases one previously consumed usage
	// ("UPDATE ... WHERE used_count > 0"). Compensation for a checkout that
	// incremented the counter but failed to persist its order.
	DecrementUsage(ctx context.Context, id uuid.UUID) error

	// Count counts discounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
