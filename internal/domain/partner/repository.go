package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ShopRepository defines persistence operations for shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	// FindEligible returns all active, approved shops that offer printing,
	// ordered by rating descending then completed orders descending.
	FindEligible(ctx context.Context) ([]Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)
	Save(ctx context.Context, shop *Shop) error
	// IncrementCompletedOrders atomically bumps the completed order counter.
	IncrementCompletedOrders(ctx context.Context, id uuid.UUID) error
}

// DesignerRepository defines persistence operations for designers
type DesignerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Designer, error)
	Save(ctx context.Context, designer *Designer) error
}
