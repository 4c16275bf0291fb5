package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityamakwana707/globetrotter-sub000/core/cache"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/dto"
)

type fakeSource struct {
	calls  int
	onCall func()
}

func (f *fakeSource) Fetch(_ context.Context, destination string, _ []string) ([]dto.Suggestion, []dto.ScheduledSuggestion, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	sourceID := "poi-1"
	return []dto.Suggestion{
			{SourceID: &sourceID, Name: "Old town walk", Category: "sightseeing", PriceTier: "$", DurationHours: 2},
		}, []dto.ScheduledSuggestion{
			{Suggestion: dto.Suggestion{Name: "Fado dinner", Category: "food", PriceTier: "$$$"}, DayNumber: 1, StartTime: "19:00"},
		}, nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) error {
	data, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func draftFixture(t *testing.T, drafts *itinservice.DraftManager, ownerID string) *itinservice.Draft {
	t.Helper()
	draft := drafts.Create(ownerID)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	require.Nil(t, draft.Store.GenerateDays(start, end, "Lisbon"))
	return draft
}

func TestFetchSuggestionsCachesByDestination(t *testing.T) {
	source := &fakeSource{}
	cached := newFakeCache()
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(source, cached, nil, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	req := &dto.FetchSuggestionsRequest{Destination: "Lisbon", Interests: []string{"food"}}

	first, appErr := svc.FetchSuggestions(context.Background(), draft.ID, "owner-1", req)
	require.Nil(t, appErr)
	assert.False(t, first.FromCache)
	assert.Equal(t, uint64(1), first.Sequence)
	require.Len(t, first.Suggestions, 1)
	require.Len(t, first.Scheduled, 1)

	second, appErr := svc.FetchSuggestions(context.Background(), draft.ID, "owner-1", req)
	require.Nil(t, appErr)
	assert.True(t, second.FromCache)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, 1, source.calls)
}

func TestFetchSuggestionsSupersededIsDiscarded(t *testing.T) {
	source := &fakeSource{}
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(source, nil, nil, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	// The second request starts while the first is still in flight.
	fired := false
	source.onCall = func() {
		if fired {
			return
		}
		fired = true
		_, appErr := svc.FetchSuggestions(context.Background(), draft.ID, "owner-1",
			&dto.FetchSuggestionsRequest{Destination: "Porto"})
		require.Nil(t, appErr)
	}

	_, appErr := svc.FetchSuggestions(context.Background(), draft.ID, "owner-1",
		&dto.FetchSuggestionsRequest{Destination: "Lisbon"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrRequestSuperseded, appErr.Code)
}

func TestApplyScheduledPlacesAndEnqueues(t *testing.T) {
	source := &fakeSource{}
	enqueuer := &fakeEnqueuer{}
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(source, nil, enqueuer, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	sourceID := "poi-7"
	resp, appErr := svc.ApplyScheduled(context.Background(), draft.ID, "owner-1", &dto.ApplyScheduledRequest{
		Suggestion: dto.ScheduledSuggestion{
			Suggestion: dto.Suggestion{SourceID: &sourceID, Name: "Fado dinner", Category: "food", PriceTier: "$$$", DurationHours: 2},
			DayNumber:  1,
			StartTime:  "19:00",
		},
	})
	require.Nil(t, appErr)
	assert.Equal(t, "19:00", resp.StartTime)
	assert.Equal(t, "21:00", resp.EndTime)

	day := draft.Store.Days()[0]
	require.Len(t, day.Activities, 1)
	assert.Equal(t, 19*60, day.Activities[0].StartMinutes)
	assert.Equal(t, 75.0, day.Activities[0].EstimatedCost)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, TaskTypeActivityEnrich, enqueuer.tasks[0].Type())

	var payload EnrichTaskPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, draft.ID, payload.DraftID)
	assert.Equal(t, resp.ActivityID, payload.ActivityID)
	assert.Equal(t, "poi-7", payload.SourceID)
}

func TestApplyScheduledWithoutSourceIDSkipsEnrichment(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(&fakeSource{}, nil, enqueuer, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	_, appErr := svc.ApplyScheduled(context.Background(), draft.ID, "owner-1", &dto.ApplyScheduledRequest{
		Suggestion: dto.ScheduledSuggestion{
			Suggestion: dto.Suggestion{Name: "Picnic"},
			DayNumber:  1,
			StartTime:  "12:00",
		},
	})
	require.Nil(t, appErr)
	assert.Empty(t, enqueuer.tasks)
}

func TestApplyScheduledUnknownDayNumber(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(&fakeSource{}, nil, nil, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	_, appErr := svc.ApplyScheduled(context.Background(), draft.ID, "owner-1", &dto.ApplyScheduledRequest{
		Suggestion: dto.ScheduledSuggestion{
			Suggestion: dto.Suggestion{Name: "Picnic"},
			DayNumber:  9,
			StartTime:  "12:00",
		},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestResolveThenConfirmPlacesAtChosenStart(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(&fakeSource{}, nil, nil, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")
	day := draft.Store.Days()[0]

	resolved, appErr := svc.ResolveCandidates(context.Background(), draft.ID, "owner-1", &dto.ResolveSuggestionRequest{
		DayID:      day.ID,
		Suggestion: dto.Suggestion{Name: "Old town walk", DurationHours: 2},
	})
	require.Nil(t, appErr)
	require.NotEmpty(t, resolved.CandidateStarts)
	assert.Equal(t, "09:00", resolved.CandidateStarts[0])

	placed, appErr := svc.ConfirmPlacement(context.Background(), draft.ID, "owner-1", &dto.ConfirmSuggestionRequest{
		DayID:      day.ID,
		StartTime:  resolved.CandidateStarts[0],
		Suggestion: dto.Suggestion{Name: "Old town walk", DurationHours: 2},
	})
	require.Nil(t, appErr)
	assert.Equal(t, "09:00", placed.StartTime)
	assert.Equal(t, "11:00", placed.EndTime)
	require.Len(t, day.Activities, 1)
}

func TestFetchSuggestionsForeignDraftForbidden(t *testing.T) {
	drafts := itinservice.NewDraftManager()
	svc := NewSuggestionService(&fakeSource{}, nil, nil, drafts, 15)
	draft := draftFixture(t, drafts, "owner-1")

	_, appErr := svc.FetchSuggestions(context.Background(), draft.ID, "owner-2",
		&dto.FetchSuggestionsRequest{Destination: "Lisbon"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}
