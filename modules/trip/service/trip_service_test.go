package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	itinentity "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/entity"
)

type fakeTripRepo struct {
	trips      map[string]*entity.Trip
	failCreate bool
	failUpdate bool
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[string]*entity.Trip{}}
}

func (f *fakeTripRepo) CreateTrip(_ context.Context, trip *entity.Trip) (*entity.Trip, error) {
	if f.failCreate {
		return nil, fmt.Errorf("connection refused")
	}
	stored := *trip
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.trips[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeTripRepo) GetTripByID(_ context.Context, id string) (*entity.Trip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	copied := *trip
	return &copied, nil
}

func (f *fakeTripRepo) GetTripsByOwnerID(_ context.Context, ownerID uuid.UUID) ([]entity.Trip, error) {
	out := []entity.Trip{}
	for _, trip := range f.trips {
		if trip.OwnerID == ownerID {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) GetTripBySlug(_ context.Context, slug string) (*entity.Trip, error) {
	for _, trip := range f.trips {
		if trip.IsPublic && trip.Slug != nil && *trip.Slug == slug {
			copied := *trip
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTripRepo) UpdateTrip(_ context.Context, trip *entity.Trip) error {
	if f.failUpdate {
		return fmt.Errorf("connection refused")
	}
	stored, ok := f.trips[trip.ID]
	if !ok {
		return nil
	}
	owner := stored.OwnerID
	updated := *trip
	updated.OwnerID = owner
	updated.IsPublic = stored.IsPublic
	updated.Slug = stored.Slug
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	f.trips[trip.ID] = &updated
	return nil
}

func (f *fakeTripRepo) UpdateVisibility(_ context.Context, id string, isPublic bool, slug *string) error {
	if trip, ok := f.trips[id]; ok {
		trip.IsPublic = isPublic
		trip.Slug = slug
	}
	return nil
}

func (f *fakeTripRepo) DeleteTrip(_ context.Context, id string) error {
	delete(f.trips, id)
	return nil
}

func seedDraft(t *testing.T, drafts *itinservice.DraftManager, ownerID uuid.UUID) *itinservice.Draft {
	t.Helper()
	draft := drafts.Create(ownerID.String())
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	require.Nil(t, draft.Store.GenerateDays(start, end, "Lisbon"))

	day := draft.Store.Days()[1]
	_, appErr := draft.Placement.PlaceInDay(day.ID, itinentity.ActivityDescriptor{
		Name:          "Tram 28 ride",
		Category:      "sightseeing",
		PriceTier:     "$$",
		DurationHours: 2,
	}, nil)
	require.Nil(t, appErr)
	return draft
}

func TestSubmitDraftPersistsAndDiscards(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	resp, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID:      draft.ID,
		Name:         "Lisbon long weekend",
		Destinations: []string{"Lisbon"},
	})
	require.Nil(t, appErr)
	require.NotNil(t, resp)

	assert.Equal(t, "2026-09-01", resp.StartDate)
	assert.Equal(t, "2026-09-03", resp.EndDate)
	assert.Equal(t, 50.0, resp.TotalBudget)
	require.Len(t, resp.Itinerary, 3)
	assert.False(t, resp.IsPublic)
	assert.Nil(t, resp.Slug)

	// Successful submit ends the editing session.
	_, appErr = drafts.Get(draft.ID, ownerID.String())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestSubmitDraftFailureKeepsDraft(t *testing.T) {
	repo := newFakeTripRepo()
	repo.failCreate = true
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	_, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Lisbon long weekend",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInternalServer, appErr.Code)

	// The draft survives a storage failure.
	kept, appErr := drafts.Get(draft.ID, ownerID.String())
	require.Nil(t, appErr)
	assert.Len(t, kept.Store.Days(), 3)
}

func TestOpenForEditingRestoresDraft(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	saved, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Lisbon long weekend",
	})
	require.Nil(t, appErr)

	opened, appErr := svc.OpenForEditing(context.Background(), saved.ID, ownerID)
	require.Nil(t, appErr)
	assert.Equal(t, saved.ID, opened.TripID)

	reopened, appErr := drafts.Get(opened.DraftID, ownerID.String())
	require.Nil(t, appErr)
	require.Len(t, reopened.Store.Days(), 3)
	day := reopened.Store.Days()[1]
	require.Len(t, day.Activities, 1)
	assert.Equal(t, "Tram 28 ride", day.Activities[0].Name)
	assert.Equal(t, 50.0, reopened.Store.TotalEstimatedBudget())
}

func TestOpenForEditingForeignTripForbidden(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	saved, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Lisbon long weekend",
	})
	require.Nil(t, appErr)

	_, appErr = svc.OpenForEditing(context.Background(), saved.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestSetVisibilityMintsStableSlug(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	saved, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Lisbon Long Weekend",
	})
	require.Nil(t, appErr)

	published, appErr := svc.SetVisibility(context.Background(), saved.ID, ownerID, true)
	require.Nil(t, appErr)
	require.NotNil(t, published.Slug)
	assert.Contains(t, *published.Slug, "lisbon-long-weekend")
	firstSlug := *published.Slug

	shared, appErr := svc.GetPublicBySlug(context.Background(), firstSlug)
	require.Nil(t, appErr)
	assert.Equal(t, saved.ID, shared.ID)

	// Unpublish hides the link but keeps the slug for republish.
	hidden, appErr := svc.SetVisibility(context.Background(), saved.ID, ownerID, false)
	require.Nil(t, appErr)
	assert.False(t, hidden.IsPublic)

	_, appErr = svc.GetPublicBySlug(context.Background(), firstSlug)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	republished, appErr := svc.SetVisibility(context.Background(), saved.ID, ownerID, true)
	require.Nil(t, appErr)
	require.NotNil(t, republished.Slug)
	assert.Equal(t, firstSlug, *republished.Slug)
}

func TestSubmitDraftDatesSpanCalendarRange(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := seedDraft(t, drafts, ownerID)

	// Editing can leave day dates out of insertion order. Pull the last
	// day back before day one; the saved range must still cover all days.
	days := draft.Store.Days()
	earlier := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	require.Nil(t, draft.Store.UpdateDay(days[2].ID, itinservice.DayPatch{Date: &earlier}))

	resp, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Lisbon long weekend",
	})
	require.Nil(t, appErr)

	assert.Equal(t, "2026-08-30", resp.StartDate)
	assert.Equal(t, "2026-09-02", resp.EndDate)
}

func TestSubmitEmptyDraftRejected(t *testing.T) {
	repo := newFakeTripRepo()
	drafts := itinservice.NewDraftManager()
	svc := NewTripService(repo, drafts)
	ownerID := uuid.New()
	draft := drafts.Create(ownerID.String())

	_, appErr := svc.SubmitDraft(context.Background(), ownerID, &dto.SubmitTripRequest{
		DraftID: draft.ID,
		Name:    "Empty",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}
