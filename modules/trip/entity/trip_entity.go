package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Trip is the persisted shape of a submitted trip. The itinerary column
// holds the serialized day payload as JSONB.
type Trip struct {
	ID           string         `db:"id" json:"id"`
	OwnerID      uuid.UUID      `db:"owner_id" json:"owner_id"`
	Name         string         `db:"name" json:"name"`
	Description  *string        `db:"description" json:"description,omitempty"`
	StartDate    time.Time      `db:"start_date" json:"start_date"`
	EndDate      time.Time      `db:"end_date" json:"end_date"`
	IsPublic     bool           `db:"is_public" json:"is_public"`
	Slug         *string        `db:"slug" json:"slug,omitempty"`
	Destinations pq.StringArray `db:"destinations" json:"destinations"`
	TotalBudget  float64        `db:"total_budget" json:"total_budget"`
	Itinerary    []byte         `db:"itinerary" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
