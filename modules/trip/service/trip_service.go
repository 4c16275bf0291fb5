package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"

	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/mapper"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/repository"
)

// TripService persists drafts as trips and reopens trips for editing
type TripService struct {
	repo   repository.TripRepositoryInterface
	drafts *itinservice.DraftManager
}

// TripServiceInterface defines the service contract
type TripServiceInterface interface {
	SubmitDraft(ctx context.Context, ownerID uuid.UUID, req *dto.SubmitTripRequest) (*dto.TripResponse, *errors.AppError)
	UpdateFromDraft(ctx context.Context, tripID string, ownerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, *errors.AppError)
	OpenForEditing(ctx context.Context, tripID string, ownerID uuid.UUID) (*dto.OpenDraftResponse, *errors.AppError)
	GetTrip(ctx context.Context, tripID string, ownerID uuid.UUID) (*dto.TripResponse, *errors.AppError)
	GetMyTrips(ctx context.Context, ownerID uuid.UUID) ([]dto.TripSummaryResponse, *errors.AppError)
	DeleteTrip(ctx context.Context, tripID string, ownerID uuid.UUID) *errors.AppError
	SetVisibility(ctx context.Context, tripID string, ownerID uuid.UUID, isPublic bool) (*dto.TripResponse, *errors.AppError)
	GetPublicBySlug(ctx context.Context, slugValue string) (*dto.TripResponse, *errors.AppError)
}

// NewTripService creates a new trip service
func NewTripService(repo repository.TripRepositoryInterface, drafts *itinservice.DraftManager) TripServiceInterface {
	return &TripService{repo: repo, drafts: drafts}
}

// SubmitDraft serializes a draft and stores it as a new trip. The draft is
// only discarded once the insert succeeded, so a storage failure leaves the
// editing session intact.
func (s *TripService) SubmitDraft(ctx context.Context, ownerID uuid.UUID, req *dto.SubmitTripRequest) (*dto.TripResponse, *errors.AppError) {
	draft, appErr := s.drafts.Get(req.DraftID, ownerID.String())
	if appErr != nil {
		return nil, appErr
	}

	trip, appErr := s.tripFromDraft(draft, ownerID, req.Name, req.Description, req.Destinations)
	if appErr != nil {
		return nil, appErr
	}
	trip.ID = utils.GenerateLongID()
	trip.IsPublic = req.IsPublic
	if req.IsPublic {
		trip.Slug = s.newSlug(req.Name)
	}

	created, err := s.repo.CreateTrip(ctx, trip)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save trip", err)
	}

	s.drafts.Discard(draft.ID)

	resp := dto.ToTripResponse(created)
	return &resp, nil
}

// UpdateFromDraft overwrites an existing trip with the draft's current state
func (s *TripService) UpdateFromDraft(ctx context.Context, tripID string, ownerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, *errors.AppError) {
	existing, appErr := s.ownedTrip(ctx, tripID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	draft, appErr := s.drafts.Get(req.DraftID, ownerID.String())
	if appErr != nil {
		return nil, appErr
	}

	trip, appErr := s.tripFromDraft(draft, ownerID, req.Name, req.Description, req.Destinations)
	if appErr != nil {
		return nil, appErr
	}
	trip.ID = existing.ID

	if err := s.repo.UpdateTrip(ctx, trip); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update trip", err)
	}

	s.drafts.Discard(draft.ID)

	updated, err := s.repo.GetTripByID(ctx, trip.ID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to reload trip", err)
	}

	resp := dto.ToTripResponse(updated)
	return &resp, nil
}

// OpenForEditing loads a stored trip into a fresh draft
func (s *TripService) OpenForEditing(ctx context.Context, tripID string, ownerID uuid.UUID) (*dto.OpenDraftResponse, *errors.AppError) {
	trip, appErr := s.ownedTrip(ctx, tripID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	var days []mapper.DayPayload
	if len(trip.Itinerary) > 0 {
		if err := json.Unmarshal(trip.Itinerary, &days); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Stored itinerary is unreadable", err)
		}
	}

	draft := s.drafts.Create(ownerID.String())
	draft.Lock()
	mapper.DeserializeDays(days, draft.Store)
	draft.Unlock()

	return &dto.OpenDraftResponse{DraftID: draft.ID, TripID: trip.ID}, nil
}

// GetTrip returns one of the owner's trips including its itinerary
func (s *TripService) GetTrip(ctx context.Context, tripID string, ownerID uuid.UUID) (*dto.TripResponse, *errors.AppError) {
	trip, appErr := s.ownedTrip(ctx, tripID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	resp := dto.ToTripResponse(trip)
	return &resp, nil
}

// GetMyTrips lists the owner's trips newest first
func (s *TripService) GetMyTrips(ctx context.Context, ownerID uuid.UUID) ([]dto.TripSummaryResponse, *errors.AppError) {
	trips, err := s.repo.GetTripsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list trips", err)
	}

	responses := make([]dto.TripSummaryResponse, 0, len(trips))
	for i := range trips {
		responses = append(responses, dto.ToTripSummaryResponse(&trips[i]))
	}
	return responses, nil
}

// DeleteTrip removes one of the owner's trips
func (s *TripService) DeleteTrip(ctx context.Context, tripID string, ownerID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedTrip(ctx, tripID, ownerID); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteTrip(ctx, tripID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete trip", err)
	}
	return nil
}

// SetVisibility publishes or unpublishes a trip. Publishing mints a slug on
// first use and keeps it on republish so shared links stay stable.
func (s *TripService) SetVisibility(ctx context.Context, tripID string, ownerID uuid.UUID, isPublic bool) (*dto.TripResponse, *errors.AppError) {
	trip, appErr := s.ownedTrip(ctx, tripID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	tripSlug := trip.Slug
	if isPublic && tripSlug == nil {
		tripSlug = s.newSlug(trip.Name)
	}

	if err := s.repo.UpdateVisibility(ctx, tripID, isPublic, tripSlug); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to change trip visibility", err)
	}

	trip.IsPublic = isPublic
	trip.Slug = tripSlug
	resp := dto.ToTripResponse(trip)
	return &resp, nil
}

// GetPublicBySlug resolves a shared link. Only public trips resolve.
func (s *TripService) GetPublicBySlug(ctx context.Context, slugValue string) (*dto.TripResponse, *errors.AppError) {
	trip, err := s.repo.GetTripBySlug(ctx, slugValue)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load trip", err)
	}
	if trip == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Trip not found", nil)
	}

	resp := dto.ToTripResponse(trip)
	return &resp, nil
}

func (s *TripService) ownedTrip(ctx context.Context, tripID string, ownerID uuid.UUID) (*entity.Trip, *errors.AppError) {
	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load trip", err)
	}
	if trip == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Trip not found", nil)
	}
	if trip.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Trip belongs to another user", nil)
	}
	return trip, nil
}

func (s *TripService) tripFromDraft(draft *itinservice.Draft, ownerID uuid.UUID, name, description string, destinations []string) (*entity.Trip, *errors.AppError) {
	draft.Lock()
	defer draft.Unlock()

	days := draft.Store.Days()
	if len(days) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Draft has no days to save", nil)
	}

	payload := mapper.SerializeDays(days)
	itinerary, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to serialize itinerary", err)
	}

	// Days keep their insertion order, which can drift from calendar order
	// after remove/add cycles or date edits, so the trip range is the
	// min and max date rather than the first and last element.
	startDate, endDate := days[0].Date, days[0].Date
	for _, day := range days[1:] {
		if day.Date.Before(startDate) {
			startDate = day.Date
		}
		if day.Date.After(endDate) {
			endDate = day.Date
		}
	}

	trip := &entity.Trip{
		OwnerID:      ownerID,
		Name:         name,
		StartDate:    startDate,
		EndDate:      endDate,
		Destinations: pq.StringArray(destinations),
		TotalBudget:  draft.Store.TotalEstimatedBudget(),
		Itinerary:    itinerary,
	}
	if strings.TrimSpace(description) != "" {
		desc := description
		trip.Description = &desc
	}
	if trip.Destinations == nil {
		trip.Destinations = pq.StringArray{}
	}
	return trip, nil
}

func (s *TripService) newSlug(name string) *string {
	value := slug.Make(name) + "-" + strings.ToLower(utils.GenerateID())
	return &value
}
