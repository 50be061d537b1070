package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/shared"
)

// GormActivityRepository implements activity.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Record appends a single activity entry
func (r *GormActivityRepository) Record(ctx context.Context, log *activity.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByAggregate lists activity for one aggregate, newest first
func (r *GormActivityRepository) FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]*activity.ActivityLog, error) {
	var logs []*activity.ActivityLog
	query := r.db.WithContext(ctx).Model(&activity.ActivityLog{}).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID).
		Order("occurred_at DESC")
	query = paginate(query, filter)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByActor lists activity performed by one actor, newest first
func (r *GormActivityRepository) FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]*activity.ActivityLog, error) {
	var logs []*activity.ActivityLog
	query := r.db.WithContext(ctx).Model(&activity.ActivityLog{}).
		Where("actor_id = ?", actorID).
		Order("occurred_at DESC")
	query = paginate(query, filter)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormActivityRepository implements ActivityRepository
var _ activity.ActivityRepository = (*GormActivityRepository)(nil)
