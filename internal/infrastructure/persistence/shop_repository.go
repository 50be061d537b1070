package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
)

// GormShopRepository implements partner.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Shop, error) {
	var shop partner.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindEligible returns all active, approved shops that offer printing,
// ordered by rating descending then completed orders descending. Matching
// consumes this ordering directly.
func (r *GormShopRepository) FindEligible(ctx context.Context) ([]partner.Shop, error) {
	var shops []partner.Shop
	if err := r.db.WithContext(ctx).
		Where("status = ? AND approved = ? AND printing_enabled = ?", partner.ShopStatusActive, true, true).
		Order("rating DESC, completed_orders DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FindAll finds shops matching the filter
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Shop, error) {
	var shops []partner.Shop
	query := applyFilter(r.db.WithContext(ctx).Model(&partner.Shop{}), filter)
	if err := query.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *partner.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// IncrementCompletedOrders atomically bumps the completed order counter
func (r *GormShopRepository) IncrementCompletedOrders(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&partner.Shop{}).
		Where("id = ?", id).
		UpdateColumn("completed_orders", gorm.Expr("completed_orders + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormShopRepository implements ShopRepository
var _ partner.ShopRepository = (*GormShopRepository)(nil)
