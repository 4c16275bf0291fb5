package entity

import "time"

// Activity is a scheduled instance of a catalog or suggested activity inside a Day.
// ID is the engine's own identity, assigned at placement; SourceID points back
// to the catalog or suggestion the activity came from and may be absent for
// ad hoc entries.
type Activity struct {
	ID              string      `json:"id"`
	SourceID        *string     `json:"source_id,omitempty"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Category        string      `json:"category,omitempty"`
	PriceTier       string      `json:"price_tier,omitempty"`
	Rating          *float64    `json:"rating,omitempty"`
	DurationMinutes int         `json:"duration_minutes"`
	StartMinutes    int         `json:"start_minutes"`
	EndMinutes      int         `json:"end_minutes"`
	OrderIndex      int         `json:"order_index"`
	Notes           string      `json:"notes,omitempty"`
	EstimatedCost   float64     `json:"estimated_cost"`
	Enrichment      *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment holds metadata filled in asynchronously after placement.
type Enrichment struct {
	Lat          float64    `json:"lat,omitempty"`
	Lng          float64    `json:"lng,omitempty"`
	OpeningHours string     `json:"opening_hours,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	Enriched     bool       `json:"enriched"`
	EnrichedAt   *time.Time `json:"enriched_at,omitempty"`
}

// ActivityDescriptor is the unplaced shape a placement request starts from:
// a validated suggestion or an ad hoc form entry. Nil pointers mean
// "derive a default at placement time".
type ActivityDescriptor struct {
	SourceID      *string
	Name          string
	Description   string
	Category      string
	PriceTier     string
	Rating        *float64
	DurationHours float64 // <= 0 means default
	StartMinutes  *int
	Notes         string
	EstimatedCost *float64
}
