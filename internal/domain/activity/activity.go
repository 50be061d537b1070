package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ActivityLog is an append-only record of a domain event. Recording is
// best-effort: a failed insert never affects the originating transaction.
type ActivityLog struct {
	shared.BaseEntity
	EventType     string         `gorm:"not null;index" json:"event_type"`
	AggregateType string         `gorm:"not null;index" json:"aggregate_type"`
	AggregateID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"aggregate_id"`
	ActorID       uuid.UUID      `gorm:"type:uuid;index" json:"actor_id"`
	Payload       map[string]any `gorm:"serializer:json" json:"payload,omitempty"`
	OccurredAt    time.Time      `gorm:"not null;index" json:"occurred_at"`
}

// TableName returns the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates an activity record from a domain event
func NewActivityLog(eventType, aggregateType string, aggregateID, actorID uuid.UUID, payload map[string]any, occurredAt time.Time) *ActivityLog {
	return &ActivityLog{
		BaseEntity:    shared.NewBaseEntity(),
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		ActorID:       actorID,
		Payload:       payload,
		OccurredAt:    occurredAt,
	}
}
