package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
)

// TaskTypeActivityEnrich is the asynq task type for post-placement enrichment.
const TaskTypeActivityEnrich = "activity:enrich"

// Enricher resolves provider metadata for a placed activity.
type Enricher interface {
	Enrich(ctx context.Context, sourceID string) (*entity.Enrichment, error)
}

// EnrichTaskPayload identifies the activity to enrich. Draft and activity
// may be gone by the time the worker runs; that makes the task stale, not
// failed.
type EnrichTaskPayload struct {
	DraftID    string `json:"draft_id"`
	OwnerID    string `json:"owner_id"`
	DayID      string `json:"day_id"`
	ActivityID string `json:"activity_id"`
	SourceID   string `json:"source_id"`
}

// NewEnrichTask builds the asynq task for one placed activity
func NewEnrichTask(payload EnrichTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal enrich payload: %w", err)
	}
	return asynq.NewTask(TaskTypeActivityEnrich, data, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)), nil
}

// EnrichmentProcessor handles activity:enrich tasks.
type EnrichmentProcessor struct {
	drafts   *itinservice.DraftManager
	enricher Enricher
}

// NewEnrichmentProcessor creates the worker-side handler
func NewEnrichmentProcessor(drafts *itinservice.DraftManager, enricher Enricher) *EnrichmentProcessor {
	return &EnrichmentProcessor{drafts: drafts, enricher: enricher}
}

// ProcessTask enriches the referenced activity in place. Stale tasks (the
// draft was submitted or discarded, or the activity removed) are dropped
// without error so asynq does not retry them.
func (p *EnrichmentProcessor) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload EnrichTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed enrich payload: %w", err)
	}

	draft, appErr := p.drafts.Get(payload.DraftID, payload.OwnerID)
	if appErr != nil {
		logger.Debug("Enrichment skipped, draft gone", "draftId", payload.DraftID)
		return nil
	}

	draft.Lock()
	stale := findActivity(draft, payload.DayID, payload.ActivityID) == nil
	draft.Unlock()
	if stale {
		logger.Debug("Enrichment skipped, activity gone", "activityId", payload.ActivityID)
		return nil
	}

	// The provider call runs without the draft lock; the draft can change
	// underneath it, so the activity is looked up again before writing.
	enrichment, err := p.enricher.Enrich(ctx, payload.SourceID)
	if err != nil {
		logger.Error("EnrichmentProcessor:ProcessTask", err)
		return err
	}
	if enrichment == nil {
		return nil
	}

	draft.Lock()
	defer draft.Unlock()

	activity := findActivity(draft, payload.DayID, payload.ActivityID)
	if activity == nil {
		logger.Debug("Enrichment skipped, activity removed during fetch", "activityId", payload.ActivityID)
		return nil
	}

	now := time.Now()
	enrichment.Enriched = true
	enrichment.EnrichedAt = &now
	activity.Enrichment = enrichment
	return nil
}

func findActivity(draft *itinservice.Draft, dayID, activityID string) *entity.Activity {
	day := draft.Store.DayByID(dayID)
	if day == nil {
		return nil
	}
	for i := range day.Activities {
		if day.Activities[i].ID == activityID {
			return &day.Activities[i]
		}
	}
	return nil
}
