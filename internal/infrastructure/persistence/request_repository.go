package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/shared"
)

// GormRequestRepository implements customization.RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID finds a customization request by ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*customization.CustomizationRequest, error) {
	var req customization.CustomizationRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindAll finds requests matching the filter
func (r *GormRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*customization.CustomizationRequest, error) {
	var requests []*customization.CustomizationRequest
	query := applyFilter(r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}), filter)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByCustomer finds requests opened by a customer
func (r *GormRequestRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*customization.CustomizationRequest, error) {
	var requests []*customization.CustomizationRequest
	query := applyFilter(
		r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}).
			Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByDesigner finds requests assigned to a designer
func (r *GormRequestRepository) FindByDesigner(ctx context.Context, designerID uuid.UUID, filter shared.Filter) ([]*customization.CustomizationRequest, error) {
	var requests []*customization.CustomizationRequest
	query := applyFilter(
		r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}).
			Where("designer_id = ?", designerID),
		filter,
	)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByStatus finds requests in a given status
func (r *GormRequestRepository) FindByStatus(ctx context.Context, status customization.RequestStatus, filter shared.Filter) ([]*customization.CustomizationRequest, error) {
	var requests []*customization.CustomizationRequest
	query := applyFilter(
		r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}).
			Where("status = ?", status),
		filter,
	)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a request
func (r *GormRequestRepository) Save(ctx context.Context, req *customization.CustomizationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// SaveWithLock persists the shop-selection and pricing columns under an
// optimistic version check. The status column is deliberately excluded so a
// concurrent transition (for example a customer cancel) is never overwritten
// by a stale in-memory copy; the version predicate detects the interleaving
// instead and shared.ErrConcurrencyConflict is returned.
func (r *GormRequestRepository) SaveWithLock(ctx context.Context, req *customization.CustomizationRequest) error {
	req.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}).
		Where("id = ? AND version = ?", req.ID, req.Version-1).
		Select("shop_id", "agreement", "updated_at", "version").
		Updates(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// TransitionStatus persists a status transition as a single conditional
// write keyed on the prior status. Zero affected rows means another actor
// moved the request first and shared.ErrConcurrencyConflict is returned.
func (r *GormRequestRepository) TransitionStatus(ctx context.Context, req *customization.CustomizationRequest, from customization.RequestStatus) error {
	req.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}).
		Where("id = ? AND status = ?", req.ID, from).
		Select("status", "designer_id", "shop_id", "design_files", "preview_files",
			"rejection_reason", "assigned_at", "completed_at", "cancelled_at", "updated_at", "version").
		Updates(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts requests matching the filter
func (r *GormRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&customization.CustomizationRequest{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRequestRepository implements RequestRepository
var _ customization.RequestRepository = (*GormRequestRepository)(nil)
