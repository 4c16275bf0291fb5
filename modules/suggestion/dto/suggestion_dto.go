package dto

import (
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
)

// Suggestion is an unscheduled recommendation from the suggestion source.
// It only becomes an engine descriptor after validation.
type Suggestion struct {
	SourceID      *string  `json:"source_id,omitempty"`
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Description   string   `json:"description" validate:"max=2000"`
	Category      string   `json:"category" validate:"omitempty,oneof=travel accommodation sightseeing food adventure culture relaxation"`
	PriceTier     string   `json:"price_tier" validate:"omitempty,max=4"`
	Rating        *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	DurationHours float64  `json:"duration_hours" validate:"omitempty,min=0.5,max=14"`
}

// ScheduledSuggestion carries a concrete day and start time alongside the
// recommendation, for the direct-drop path.
type ScheduledSuggestion struct {
	Suggestion
	DayNumber int    `json:"day_number" validate:"required,min=1"`
	StartTime string `json:"start_time" validate:"required,len=5"`
}

// FetchSuggestionsRequest asks the source for recommendations
type FetchSuggestionsRequest struct {
	Destination string   `json:"destination" validate:"required,min=1,max=200"`
	Interests   []string `json:"interests" validate:"max=20,dive,min=1,max=50"`
}

// ApplyScheduledRequest drops a scheduled suggestion straight into a day
type ApplyScheduledRequest struct {
	Suggestion ScheduledSuggestion `json:"suggestion" validate:"required"`
}

// ResolveSuggestionRequest asks for candidate starts for a suggestion
type ResolveSuggestionRequest struct {
	DayID      string     `json:"day_id" validate:"required"`
	Suggestion Suggestion `json:"suggestion" validate:"required"`
}

// ConfirmSuggestionRequest places a suggestion at a chosen candidate start
type ConfirmSuggestionRequest struct {
	DayID      string     `json:"day_id" validate:"required"`
	StartTime  string     `json:"start_time" validate:"required,len=5"`
	Suggestion Suggestion `json:"suggestion" validate:"required"`
}

// SuggestionListResponse is a fetch result tagged with its request sequence
type SuggestionListResponse struct {
	Sequence    uint64                `json:"sequence"`
	Suggestions []Suggestion          `json:"suggestions"`
	Scheduled   []ScheduledSuggestion `json:"scheduled"`
	FromCache   bool                  `json:"from_cache"`
}

// CandidateStartsResponse lists the free starts for a suggestion. An empty
// list is a normal "no free slot" outcome.
type CandidateStartsResponse struct {
	DayID           string   `json:"day_id"`
	CandidateStarts []string `json:"candidate_starts"`
}

// PlacedResponse reports where a suggestion landed
type PlacedResponse struct {
	DayID      string `json:"day_id"`
	ActivityID string `json:"activity_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ToDescriptor converts a validated suggestion into the engine's strict
// descriptor shape.
func ToDescriptor(s Suggestion) entity.ActivityDescriptor {
	return entity.ActivityDescriptor{
		SourceID:      s.SourceID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		PriceTier:     s.PriceTier,
		Rating:        s.Rating,
		DurationHours: s.DurationHours,
	}
}
