package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/adityamakwana707/globetrotter-sub000/core/cache"
	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/dto"
)

// SuggestionCache is the slice of the cache layer this service needs.
type SuggestionCache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// TaskEnqueuer is the slice of the asynq client this service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SuggestionService fetches recommendations and routes them into drafts
type SuggestionService struct {
	source   SuggestionSource
	cache    SuggestionCache
	enqueuer TaskEnqueuer
	drafts   *itinservice.DraftManager
	ttl      time.Duration

	mu        sync.Mutex
	sequences map[string]uint64
}

// SuggestionServiceInterface defines the service contract
type SuggestionServiceInterface interface {
	FetchSuggestions(ctx context.Context, draftID, ownerID string, req *dto.FetchSuggestionsRequest) (*dto.SuggestionListResponse, *errors.AppError)
	ApplyScheduled(ctx context.Context, draftID, ownerID string, req *dto.ApplyScheduledRequest) (*dto.PlacedResponse, *errors.AppError)
	ResolveCandidates(ctx context.Context, draftID, ownerID string, req *dto.ResolveSuggestionRequest) (*dto.CandidateStartsResponse, *errors.AppError)
	ConfirmPlacement(ctx context.Context, draftID, ownerID string, req *dto.ConfirmSuggestionRequest) (*dto.PlacedResponse, *errors.AppError)
}

// NewSuggestionService creates a new suggestion service. The enqueuer may be
// nil when background enrichment is disabled.
func NewSuggestionService(source SuggestionSource, c SuggestionCache, enqueuer TaskEnqueuer, drafts *itinservice.DraftManager, cacheTTLMin int) SuggestionServiceInterface {
	if cacheTTLMin <= 0 {
		cacheTTLMin = constants.SuggestionCacheTTLMin
	}
	return &SuggestionService{
		source:    source,
		cache:     c,
		enqueuer:  enqueuer,
		drafts:    drafts,
		ttl:       time.Duration(cacheTTLMin) * time.Minute,
		sequences: make(map[string]uint64),
	}
}

// FetchSuggestions asks the source (or the cache) for recommendations. Each
// call takes the next request sequence for the draft; if another fetch for
// the same draft started meanwhile, this response is superseded and is
// discarded instead of returned.
func (s *SuggestionService) FetchSuggestions(ctx context.Context, draftID, ownerID string, req *dto.FetchSuggestionsRequest) (*dto.SuggestionListResponse, *errors.AppError) {
	if _, appErr := s.drafts.Get(draftID, ownerID); appErr != nil {
		return nil, appErr
	}

	seq := s.nextSequence(draftID)
	key := cacheKey(req.Destination, req.Interests)

	var cached dto.SuggestionListResponse
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			cached.Sequence = seq
			cached.FromCache = true
			if s.currentSequence(draftID) != seq {
				return nil, errors.NewAppError(errors.ErrRequestSuperseded, "A newer suggestion request replaced this one", nil)
			}
			return &cached, nil
		} else if err != cache.ErrCacheMiss {
			logger.Warn("Suggestion cache read failed", "key", key, "error", err)
		}
	}

	suggestions, scheduled, err := s.source.Fetch(ctx, req.Destination, req.Interests)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch suggestions", err)
	}

	resp := &dto.SuggestionListResponse{
		Sequence:    seq,
		Suggestions: suggestions,
		Scheduled:   scheduled,
	}

	if s.cache != nil {
		// The cache is keyed by destination, not draft, so a superseded
		// response is still worth storing.
		if err := s.cache.SetJSON(ctx, key, resp, s.ttl); err != nil {
			logger.Warn("Suggestion cache write failed", "key", key, "error", err)
		}
	}

	if s.currentSequence(draftID) != seq {
		return nil, errors.NewAppError(errors.ErrRequestSuperseded, "A newer suggestion request replaced this one", nil)
	}
	return resp, nil
}

// ApplyScheduled drops a scheduled suggestion straight into the day it names
func (s *SuggestionService) ApplyScheduled(ctx context.Context, draftID, ownerID string, req *dto.ApplyScheduledRequest) (*dto.PlacedResponse, *errors.AppError) {
	draft, appErr := s.drafts.Get(draftID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	draft.Lock()
	defer draft.Unlock()

	day := draft.Store.DayByNumber(req.Suggestion.DayNumber)
	if day == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	start, err := entity.ClockToMinutes(req.Suggestion.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time", err)
	}

	placed, appErr := draft.Placement.PlaceInDay(day.ID, dto.ToDescriptor(req.Suggestion.Suggestion), &start)
	if appErr != nil {
		return nil, appErr
	}

	s.enqueueEnrichment(draft, day.ID, placed)
	return placedResponse(day.ID, placed), nil
}

// ResolveCandidates computes the free starts a suggestion could take in a day
func (s *SuggestionService) ResolveCandidates(ctx context.Context, draftID, ownerID string, req *dto.ResolveSuggestionRequest) (*dto.CandidateStartsResponse, *errors.AppError) {
	draft, appErr := s.drafts.Get(draftID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	draft.Lock()
	defer draft.Unlock()

	starts, appErr := draft.Placement.ResolveSuggestion(req.DayID, req.Suggestion.DurationHours)
	if appErr != nil {
		return nil, appErr
	}

	clocks := make([]string, 0, len(starts))
	for _, m := range starts {
		clocks = append(clocks, entity.MinutesToClock(m))
	}
	return &dto.CandidateStartsResponse{DayID: req.DayID, CandidateStarts: clocks}, nil
}

// ConfirmPlacement places a suggestion at the start the user picked from the
// candidate list
func (s *SuggestionService) ConfirmPlacement(ctx context.Context, draftID, ownerID string, req *dto.ConfirmSuggestionRequest) (*dto.PlacedResponse, *errors.AppError) {
	draft, appErr := s.drafts.Get(draftID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	start, err := entity.ClockToMinutes(req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time", err)
	}

	draft.Lock()
	defer draft.Unlock()

	placed, appErr := draft.Placement.PlaceInDay(req.DayID, dto.ToDescriptor(req.Suggestion), &start)
	if appErr != nil {
		return nil, appErr
	}

	s.enqueueEnrichment(draft, req.DayID, placed)
	return placedResponse(req.DayID, placed), nil
}

// enqueueEnrichment schedules a background lookup for activities that came
// from the provider. Placement already succeeded, so a full queue only costs
// the metadata.
func (s *SuggestionService) enqueueEnrichment(draft *itinservice.Draft, dayID string, placed *entity.Activity) {
	if s.enqueuer == nil || placed.SourceID == nil {
		return
	}

	task, err := NewEnrichTask(EnrichTaskPayload{
		DraftID:    draft.ID,
		OwnerID:    draft.OwnerID,
		DayID:      dayID,
		ActivityID: placed.ID,
		SourceID:   *placed.SourceID,
	})
	if err != nil {
		logger.Error("SuggestionService:enqueueEnrichment", err)
		return
	}

	if _, err := s.enqueuer.Enqueue(task); err != nil {
		logger.Warn("Failed to enqueue enrichment task", "activityId", placed.ID, "error", err)
	}
}

func (s *SuggestionService) nextSequence(draftID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[draftID]++
	return s.sequences[draftID]
}

func (s *SuggestionService) currentSequence(draftID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequences[draftID]
}

func cacheKey(destination string, interests []string) string {
	parts := append([]string{"suggestions", strings.ToLower(strings.TrimSpace(destination))}, interests...)
	return strings.Join(parts, ":")
}

func placedResponse(dayID string, placed *entity.Activity) *dto.PlacedResponse {
	return &dto.PlacedResponse{
		DayID:      dayID,
		ActivityID: placed.ID,
		StartTime:  entity.MinutesToClock(placed.StartMinutes),
		EndTime:    entity.MinutesToClock(placed.EndMinutes),
	}
}
