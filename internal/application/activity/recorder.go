package activity

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/shared"
)

// Recorder subscribes to every domain event and appends it to the activity
// log. Recording is best-effort: failures are logged and swallowed so the
// audit trail can never break the operation that raised the event.
type Recorder struct {
	activityRepo activity.ActivityRepository
	logger       *zap.Logger
}

// NewRecorder creates a new activity Recorder
func NewRecorder(activityRepo activity.ActivityRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// EventTypes returns an empty slice: the recorder receives all events
func (r *Recorder) EventTypes() []string {
	return []string{}
}

// Handle appends one activity entry for the event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry := activity.NewActivityLog(
		event.EventType(),
		event.AggregateType(),
		event.AggregateID(),
		event.ActorID(),
		eventPayload(event),
		event.OccurredAt(),
	)

	if err := r.activityRepo.Record(ctx, entry); err != nil {
		r.logger.Error("Failed to record activity",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
	}
	return nil
}

// eventPayload flattens the concrete event struct into a generic map via its
// JSON form. Events that fail to marshal are recorded without a payload.
func eventPayload(event shared.DomainEvent) map[string]any {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}

// Ensure Recorder implements the EventHandler interface
var _ shared.EventHandler = (*Recorder)(nil)
