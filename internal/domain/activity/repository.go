package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ActivityRepository defines the persistence contract for activity records
type ActivityRepository interface {
	// Record appends a single activity entry
	Record(ctx context.Context, log *ActivityLog) error

	// FindByAggregate lists activity for one aggregate, newest first
	FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]*ActivityLog, error)

	// FindByActor lists activity performed by one actor, newest first
	FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]*ActivityLog, error)
}
