package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itinentity "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
)

type fakeEnricher struct {
	calls    int
	fail     bool
	onEnrich func()
}

func (f *fakeEnricher) Enrich(_ context.Context, sourceID string) (*itinentity.Enrichment, error) {
	f.calls++
	if f.onEnrich != nil {
		f.onEnrich()
	}
	if f.fail {
		return nil, fmt.Errorf("provider timeout")
	}
	return &itinentity.Enrichment{
		Lat:          38.7223,
		Lng:          -9.1393,
		OpeningHours: "10:00-18:00",
		SourceURL:    "https://provider.example/poi/" + sourceID,
	}, nil
}

func placedActivity(t *testing.T, drafts *itinservice.DraftManager, ownerID string) (*itinservice.Draft, string, string) {
	t.Helper()
	draft := drafts.Create(ownerID)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.Nil(t, draft.Store.GenerateDays(start, start, "Lisbon"))

	day := draft.Store.Days()[0]
	sourceID := "poi-1"
	placed, appErr := draft.Placement.PlaceInDay(day.ID, itinentity.ActivityDescriptor{
		SourceID:      &sourceID,
		Name:          "Old town walk",
		DurationHours: 2,
	}, nil)
	require.Nil(t, appErr)
	return draft, day.ID, placed.ID
}

func TestProcessTaskWritesEnrichment(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")
	processor := NewEnrichmentProcessor(drafts, &fakeEnricher{})

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)
	require.NoError(t, processor.ProcessTask(context.Background(), task))

	activity := draft.Store.DayByID(dayID).Activities[0]
	require.NotNil(t, activity.Enrichment)
	assert.True(t, activity.Enrichment.Enriched)
	assert.NotNil(t, activity.Enrichment.EnrichedAt)
	assert.Equal(t, 38.7223, activity.Enrichment.Lat)
	assert.Equal(t, "10:00-18:00", activity.Enrichment.OpeningHours)
}

func TestProcessTaskStaleDraftDropped(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")
	enricher := &fakeEnricher{}
	processor := NewEnrichmentProcessor(drafts, enricher)

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)

	drafts.Discard(draft.ID)

	// Dropped silently, never reaches the provider.
	require.NoError(t, processor.ProcessTask(context.Background(), task))
	assert.Zero(t, enricher.calls)
}

func TestProcessTaskStaleActivityDropped(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")
	enricher := &fakeEnricher{}
	processor := NewEnrichmentProcessor(drafts, enricher)

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)

	require.Nil(t, draft.Placement.RemoveActivity(dayID, activityID))

	require.NoError(t, processor.ProcessTask(context.Background(), task))
	assert.Zero(t, enricher.calls)
}

func TestProcessTaskActivityRemovedDuringFetch(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")

	draft.Lock()
	survivor, appErr := draft.Placement.PlaceInDay(dayID, itinentity.ActivityDescriptor{
		Name:          "Tram ride",
		DurationHours: 1,
	}, nil)
	draft.Unlock()
	require.Nil(t, appErr)
	survivorID := survivor.ID

	// The first activity disappears while the provider call is in flight.
	// That write must not land on the activity that took over its index.
	enricher := &fakeEnricher{onEnrich: func() {
		draft.Lock()
		defer draft.Unlock()
		require.Nil(t, draft.Placement.RemoveActivity(dayID, activityID))
	}}
	processor := NewEnrichmentProcessor(drafts, enricher)

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)

	require.NoError(t, processor.ProcessTask(context.Background(), task))
	assert.Equal(t, 1, enricher.calls)

	day := draft.Store.DayByID(dayID)
	require.Len(t, day.Activities, 1)
	assert.Equal(t, survivorID, day.Activities[0].ID)
	assert.Nil(t, day.Activities[0].Enrichment)
}

func TestProcessTaskConcurrentWithPlacements(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")
	processor := NewEnrichmentProcessor(drafts, &fakeEnricher{})

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)

	// The worker and an editing session hammer the same draft. Whatever the
	// interleaving, enrichment lands on the targeted activity only.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, processor.ProcessTask(context.Background(), task))
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			draft.Lock()
			_, appErr := draft.Placement.PlaceInDay(dayID, itinentity.ActivityDescriptor{
				Name:          fmt.Sprintf("Stop %d", i),
				DurationHours: 1,
			}, nil)
			draft.Unlock()
			if appErr != nil {
				return
			}
		}
	}()
	wg.Wait()

	day := draft.Store.DayByID(dayID)
	for i := range day.Activities {
		if day.Activities[i].ID == activityID {
			assert.NotNil(t, day.Activities[i].Enrichment)
		} else {
			assert.Nil(t, day.Activities[i].Enrichment)
		}
	}
}

func TestProcessTaskProviderFailureRetries(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	draft, dayID, activityID := placedActivity(t, drafts, "owner-1")
	processor := NewEnrichmentProcessor(drafts, &fakeEnricher{fail: true})

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    "owner-1",
		DayID:      dayID,
		ActivityID: activityID,
		SourceID:   "poi-1",
	})
	require.NoError(t, err)

	// A provider failure surfaces so the queue retries it.
	assert.Error(t, processor.ProcessTask(context.Background(), task))
}
