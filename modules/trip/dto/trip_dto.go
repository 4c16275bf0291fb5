package dto

import (
	"encoding/json"
	"time"

	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/mapper"
)

// SubmitTripRequest persists a draft as a new trip
type SubmitTripRequest struct {
	DraftID      string   `json:"draft_id" validate:"required"`
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Destinations []string `json:"destinations" validate:"max=50,dive,min=1"`
	IsPublic     bool     `json:"is_public"`
}

// UpdateTripRequest overwrites an existing trip from a draft
type UpdateTripRequest struct {
	DraftID      string   `json:"draft_id" validate:"required"`
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Destinations []string `json:"destinations" validate:"max=50,dive,min=1"`
}

// PublishTripRequest toggles public sharing
type PublishTripRequest struct {
	IsPublic bool `json:"is_public"`
}

// TripResponse is the full trip returned to its owner
type TripResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	IsPublic     bool                `json:"is_public"`
	Slug         *string             `json:"slug,omitempty"`
	Destinations []string            `json:"destinations"`
	TotalBudget  float64             `json:"total_budget"`
	Itinerary    []mapper.DayPayload `json:"itinerary,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TripSummaryResponse is the list-view shape without the itinerary body
type TripSummaryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	IsPublic     bool      `json:"is_public"`
	Slug         *string   `json:"slug,omitempty"`
	Destinations []string  `json:"destinations"`
	TotalBudget  float64   `json:"total_budget"`
	CreatedAt    time.Time `json:"created_at"`
}

// OpenDraftResponse points the client at the editing session created from a trip
type OpenDraftResponse struct {
	DraftID string `json:"draft_id"`
	TripID  string `json:"trip_id"`
}

// ToTripResponse maps a trip row to the owner-facing response, decoding the
// stored itinerary. A row with a corrupt itinerary column still maps; the
// itinerary comes back empty.
func ToTripResponse(trip *entity.Trip) TripResponse {
	resp := TripResponse{
		ID:           trip.ID,
		Name:         trip.Name,
		StartDate:    trip.StartDate.Format("2006-01-02"),
		EndDate:      trip.EndDate.Format("2006-01-02"),
		IsPublic:     trip.IsPublic,
		Slug:         trip.Slug,
		Destinations: trip.Destinations,
		TotalBudget:  trip.TotalBudget,
		CreatedAt:    trip.CreatedAt,
		UpdatedAt:    trip.UpdatedAt,
	}
	if trip.Description != nil {
		resp.Description = *trip.Description
	}
	if len(trip.Itinerary) > 0 {
		var days []mapper.DayPayload
		if err := json.Unmarshal(trip.Itinerary, &days); err == nil {
			resp.Itinerary = days
		}
	}
	return resp
}

// ToTripSummaryResponse maps a trip row to the list-view shape
func ToTripSummaryResponse(trip *entity.Trip) TripSummaryResponse {
	return TripSummaryResponse{
		ID:           trip.ID,
		Name:         trip.Name,
		StartDate:    trip.StartDate.Format("2006-01-02"),
		EndDate:      trip.EndDate.Format("2006-01-02"),
		IsPublic:     trip.IsPublic,
		Slug:         trip.Slug,
		Destinations: trip.Destinations,
		TotalBudget:  trip.TotalBudget,
		CreatedAt:    trip.CreatedAt,
	}
}
