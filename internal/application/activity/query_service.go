package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ActivityEntryResponse represents one audit entry in responses
type ActivityEntryResponse struct {
	ID            uuid.UUID      `json:"id"`
	EventType     string         `json:"event_type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   uuid.UUID      `json:"aggregate_id"`
	ActorID       uuid.UUID      `json:"actor_id"`
	Payload       map[string]any `json:"payload,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// QueryService reads the audit trail
type QueryService struct {
	activityRepo activity.ActivityRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(activityRepo activity.ActivityRepository) *QueryService {
	return &QueryService{activityRepo: activityRepo}
}

// ListForAggregate returns the audit trail of one aggregate, newest first
func (s *QueryService) ListForAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, page, pageSize int) ([]ActivityEntryResponse, error) {
	filter := shared.Filter{Page: page, PageSize: pageSize}
	logs, err := s.activityRepo.FindByAggregate(ctx, aggregateType, aggregateID, filter)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(logs), nil
}

// ListForActor returns the actions one actor performed, newest first
func (s *QueryService) ListForActor(ctx context.Context, actorID uuid.UUID, page, pageSize int) ([]ActivityEntryResponse, error) {
	filter := shared.Filter{Page: page, PageSize: pageSize}
	logs, err := s.activityRepo.FindByActor(ctx, actorID, filter)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(logs), nil
}

func toEntryResponses(logs []*activity.ActivityLog) []ActivityEntryResponse {
	responses := make([]ActivityEntryResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, ActivityEntryResponse{
			ID:            l.ID,
			EventType:     l.EventType,
			AggregateType: l.AggregateType,
			AggregateID:   l.AggregateID,
			ActorID:       l.ActorID,
			Payload:       l.Payload,
			OccurredAt:    l.OccurredAt,
		})
	}
	return responses
}
