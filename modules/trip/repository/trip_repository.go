package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/adityamakwana707/globetrotter-sub000/core/database"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/entity"
)

// TripRepository handles trip database operations
type TripRepository struct {
	DB database.IDatabase
}

// NewTripRepository creates a new repository instance
func NewTripRepository(db database.IDatabase) *TripRepository {
	return &TripRepository{DB: db}
}

// TripRepositoryInterface defines the repository contract
type TripRepositoryInterface interface {
	CreateTrip(ctx context.Context, trip *entity.Trip) (*entity.Trip, error)
	GetTripByID(ctx context.Context, id string) (*entity.Trip, error)
	GetTripsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Trip, error)
	GetTripBySlug(ctx context.Context, slug string) (*entity.Trip, error)
	UpdateTrip(ctx context.Context, trip *entity.Trip) error
	UpdateVisibility(ctx context.Context, id string, isPublic bool, slug *string) error
	DeleteTrip(ctx context.Context, id string) error
}

func (r *TripRepository) CreateTrip(ctx context.Context, trip *entity.Trip) (*entity.Trip, error) {
	query := `
		INSERT INTO trips (id, owner_id, name, description, start_date, end_date, is_public, slug, destinations, total_budget, itinerary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, owner_id, name, description, start_date, end_date, is_public, slug,
		          destinations, total_budget, itinerary, created_at, updated_at
	`

	var created entity.Trip
	err := r.DB.GetContext(ctx, &created, query,
		trip.ID, trip.OwnerID, trip.Name, trip.Description,
		trip.StartDate, trip.EndDate, trip.IsPublic, trip.Slug,
		trip.Destinations, trip.TotalBudget, trip.Itinerary)

	if err != nil {
		logger.Error("TripRepository:CreateTrip", err)
		return nil, err
	}

	return &created, nil
}

func (r *TripRepository) GetTripByID(ctx context.Context, id string) (*entity.Trip, error) {
	query := `
		SELECT id, owner_id, name, description, start_date, end_date, is_public, slug,
		       destinations, total_budget, itinerary, created_at, updated_at
		FROM trips WHERE id = $1
	`

	var trip entity.Trip
	err := r.DB.GetContext(ctx, &trip, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TripRepository:GetTripByID", err)
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) GetTripsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Trip, error) {
	query := `
		SELECT id, owner_id, name, description, start_date, end_date, is_public, slug,
		       destinations, total_budget, itinerary, created_at, updated_at
		FROM trips WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	trips := []entity.Trip{}
	err := r.DB.SelectContext(ctx, &trips, query, ownerID)
	if err != nil {
		logger.Error("TripRepository:GetTripsByOwnerID", err)
		return nil, err
	}

	return trips, nil
}

func (r *TripRepository) GetTripBySlug(ctx context.Context, slug string) (*entity.Trip, error) {
	query := `
		SELECT id, owner_id, name, description, start_date, end_date, is_public, slug,
		       destinations, total_budget, itinerary, created_at, updated_at
		FROM trips WHERE slug = $1 AND is_public = true
	`

	var trip entity.Trip
	err := r.DB.GetContext(ctx, &trip, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TripRepository:GetTripBySlug", err)
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) UpdateTrip(ctx context.Context, trip *entity.Trip) error {
	query := `
		UPDATE trips
		SET name = $1, description = $2, start_date = $3, end_date = $4,
		    destinations = $5, total_budget = $6, itinerary = $7, updated_at = now()
		WHERE id = $8 AND owner_id = $9
	`

	err := r.DB.ExecContext(ctx, query,
		trip.Name, trip.Description, trip.StartDate, trip.EndDate,
		trip.Destinations, trip.TotalBudget, trip.Itinerary,
		trip.ID, trip.OwnerID)

	if err != nil {
		logger.Error("TripRepository:UpdateTrip", err)
		return err
	}

	return nil
}

func (r *TripRepository) UpdateVisibility(ctx context.Context, id string, isPublic bool, slug *string) error {
	query := `
		UPDATE trips
		SET is_public = $1, slug = $2, updated_at = now()
		WHERE id = $3
	`

	err := r.DB.ExecContext(ctx, query, isPublic, slug, id)
	if err != nil {
		logger.Error("TripRepository:UpdateVisibility", err)
		return err
	}

	return nil
}

func (r *TripRepository) DeleteTrip(ctx context.Context, id string) error {
	query := `
		DELETE FROM trips
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("TripRepository:DeleteTrip", err)
		return err
	}

	return nil
}
