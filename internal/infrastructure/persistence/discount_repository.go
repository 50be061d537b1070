package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/discount"
	"github.com/printmarket/backend/internal/domain/shared"
)

// GormDiscountRepository implements discount.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*discount.Discount, error) {
	var d discount.Discount
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds discounts matching the filter
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*discount.Discount, error) {
	var discounts []*discount.Discount
	query := applyFilter(r.db.WithContext(ctx).Model(&discount.Discount{}), filter)
	if err := query.Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// FindActiveByShop finds active discounts owned by a shop
func (r *GormDiscountRepository) FindActiveByShop(ctx context.Context, shopID uuid.UUID) ([]*discount.Discount, error) {
	var discounts []*discount.Discount
	if err := r.db.WithContext(ctx).
		Where("owner_shop_id = ? AND status = ?", shopID, discount.StatusActive).
		Order("created_at DESC").
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, d *discount.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// IncrementUsage bumps used_count by one as a single guarded write. The
// WHERE clause enforces the usage cap inside the database, so concurrent
// checkouts can never push used_count past usage_limit.
func (r *GormDiscountRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&discount.Discount{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("USAGE_LIMIT_REACHED", "Discount usage limit reached")
	}
	return nil
}

// DecrementUsage releases one previously consumed usage. The guard keeps the
// counter from going negative when compensations race.
func (r *GormDiscountRepository) DecrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&discount.Discount{}).
		Where("id = ? AND used_count > 0", id).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}

// Count counts discounts matching the filter
func (r *GormDiscountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&discount.Discount{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormDiscountRepository implements DiscountRepository
var _ discount.DiscountRepository = (*GormDiscountRepository)(nil)
