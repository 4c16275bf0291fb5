package dto

import (
	"time"

	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
)

// ===================== Request DTOs =====================

// CreateDraftRequest opens a new draft and generates its day range
type CreateDraftRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location  string `json:"location"`
}

// UpdateDayRequest shallow-merges day fields; absent fields stay untouched
type UpdateDayRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Date         *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string `json:"notes"`
	ActivityType *string `json:"activity_type" validate:"omitempty,oneof=travel accommodation sightseeing food adventure culture relaxation"`
	Location     *string `json:"location"`
	Completed    *bool   `json:"completed"`
}

// PlaceActivityRequest adds an activity to a day's plan
type PlaceActivityRequest struct {
	SourceID      *string  `json:"source_id"`
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	PriceTier     string   `json:"price_tier"`
	Rating        *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	DurationHours float64  `json:"duration_hours" validate:"omitempty,min=0,max=14"`
	StartTime     *string  `json:"start_time"` // "HH:MM", optional
	Notes         string   `json:"notes"`
	EstimatedCost *float64 `json:"estimated_cost" validate:"omitempty,min=0"`
}

// PlaceInSlotRequest drops an activity onto a specific slot
type PlaceInSlotRequest struct {
	SlotID   string               `json:"slot_id" validate:"required"`
	Activity PlaceActivityRequest `json:"activity" validate:"required"`
}

// MoveRequest is the drag-and-drop contract: source and target identifiers,
// decoupled from whatever gesture library produced them
type MoveRequest struct {
	SourceDayID  string `json:"source_day_id" validate:"required"`
	SourceSlotID string `json:"source_slot_id" validate:"required"`
	TargetDayID  string `json:"target_day_id" validate:"required"`
	TargetSlotID string `json:"target_slot_id" validate:"required"`
}

// UpdateCostRequest edits a placed activity's estimated cost
type UpdateCostRequest struct {
	EstimatedCost float64 `json:"estimated_cost" validate:"min=0"`
}

// FreeStartsRequest asks for candidate start times for a duration
type FreeStartsRequest struct {
	DurationHours float64 `json:"duration_hours" validate:"omitempty,min=0,max=14"`
}

// ===================== Response DTOs =====================

// ActivityResponse mirrors a placed activity with clock-string times
type ActivityResponse struct {
	ID            string             `json:"id"`
	SourceID      *string            `json:"source_id,omitempty"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Category      string             `json:"category,omitempty"`
	PriceTier     string             `json:"price_tier,omitempty"`
	Rating        *float64           `json:"rating,omitempty"`
	DurationHours float64            `json:"duration_hours"`
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	OrderIndex    int                `json:"order_index"`
	Notes         string             `json:"notes,omitempty"`
	EstimatedCost float64            `json:"estimated_cost"`
	Enrichment    *entity.Enrichment `json:"enrichment,omitempty"`
}

// SlotResponse is one cell of the day grid
type SlotResponse struct {
	ID        string            `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Occupied  bool              `json:"occupied"`
	Activity  *ActivityResponse `json:"activity,omitempty"`
}

// BudgetItemResponse is one breakdown line
type BudgetItemResponse struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// BudgetResponse is a day's money summary
type BudgetResponse struct {
	Estimated float64              `json:"estimated"`
	Actual    *float64             `json:"actual,omitempty"`
	Breakdown []BudgetItemResponse `json:"breakdown"`
}

// DayResponse is the read model the grid renders from
type DayResponse struct {
	ID           string             `json:"id"`
	DayNumber    int                `json:"day_number"`
	Date         string             `json:"date"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Location     string             `json:"location,omitempty"`
	ActivityType string             `json:"activity_type"`
	Budget       BudgetResponse     `json:"budget"`
	Notes        string             `json:"notes,omitempty"`
	Completed    bool               `json:"completed"`
	Activities   []ActivityResponse `json:"activities"`
	TimeSlots    []SlotResponse     `json:"time_slots"`
	ActivityLog  []string           `json:"activity_log"`
}

// DraftResponse is the full draft snapshot
type DraftResponse struct {
	DraftID              string        `json:"draft_id"`
	Days                 []DayResponse `json:"days"`
	TotalEstimatedBudget float64       `json:"total_estimated_budget"`
}

// FreeStartsResponse lists candidate start times; an empty list means the
// day has no capacity for the requested duration
type FreeStartsResponse struct {
	DayID         string   `json:"day_id"`
	DurationHours float64  `json:"duration_hours"`
	Starts        []string `json:"starts"`
}

// ===================== Mapper Functions =====================

// ToDescriptor converts a validated request into the engine descriptor
func (r *PlaceActivityRequest) ToDescriptor() (entity.ActivityDescriptor, error) {
	descriptor := entity.ActivityDescriptor{
		SourceID:      r.SourceID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		PriceTier:     r.PriceTier,
		Rating:        r.Rating,
		DurationHours: r.DurationHours,
		Notes:         r.Notes,
		EstimatedCost: r.EstimatedCost,
	}
	if r.StartTime != nil {
		mins, err := entity.ClockToMinutes(*r.StartTime)
		if err != nil {
			return descriptor, err
		}
		descriptor.StartMinutes = &mins
	}
	return descriptor, nil
}

// ToActivityResponse maps entity to DTO
func ToActivityResponse(a *entity.Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:            a.ID,
		SourceID:      a.SourceID,
		Name:          a.Name,
		Description:   a.Description,
		Category:      a.Category,
		PriceTier:     a.PriceTier,
		Rating:        a.Rating,
		DurationHours: float64(a.DurationMinutes) / 60,
		StartTime:     entity.MinutesToClock(a.StartMinutes),
		EndTime:       entity.MinutesToClock(a.EndMinutes),
		OrderIndex:    a.OrderIndex,
		Notes:         a.Notes,
		EstimatedCost: a.EstimatedCost,
		Enrichment:    a.Enrichment,
	}
}

// ToSlotResponse maps entity to DTO
func ToSlotResponse(s *entity.Slot) SlotResponse {
	resp := SlotResponse{
		ID:        s.ID,
		StartTime: entity.MinutesToClock(s.StartMinutes),
		EndTime:   entity.MinutesToClock(s.EndMinutes),
		Occupied:  s.Occupied,
	}
	if s.Activity != nil {
		resp.Activity = ToActivityResponse(s.Activity)
	}
	return resp
}

// ToDayResponse maps entity to DTO, including the derived activity log
func ToDayResponse(d *entity.Day) DayResponse {
	resp := DayResponse{
		ID:           d.ID,
		DayNumber:    d.DayNumber,
		Date:         d.Date.Format("2006-01-02"),
		Title:        d.Title,
		Description:  d.Description,
		Location:     d.Location,
		ActivityType: string(d.ActivityType),
		Notes:        d.Notes,
		Completed:    d.Completed,
		Activities:   make([]ActivityResponse, 0, len(d.Activities)),
		TimeSlots:    make([]SlotResponse, 0, len(d.TimeSlots)),
		ActivityLog:  service.DayActivityLog(d),
	}

	resp.Budget = BudgetResponse{
		Estimated: d.Budget.Estimated,
		Actual:    d.Budget.Actual,
		Breakdown: make([]BudgetItemResponse, 0, len(d.Budget.Breakdown)),
	}
	for _, item := range d.Budget.Breakdown {
		resp.Budget.Breakdown = append(resp.Budget.Breakdown, BudgetItemResponse(item))
	}

	for i := range d.Activities {
		resp.Activities = append(resp.Activities, *ToActivityResponse(&d.Activities[i]))
	}
	for i := range d.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, ToSlotResponse(&d.TimeSlots[i]))
	}
	return resp
}

// ToDraftResponse maps a draft snapshot to DTO
func ToDraftResponse(draft *service.Draft) *DraftResponse {
	days := draft.Store.Days()
	resp := &DraftResponse{
		DraftID:              draft.ID,
		Days:                 make([]DayResponse, 0, len(days)),
		TotalEstimatedBudget: draft.Store.TotalEstimatedBudget(),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, ToDayResponse(day))
	}
	return resp
}

// ToFreeStartsResponse formats candidate start minutes as clock strings
func ToFreeStartsResponse(dayID string, durationHours float64, starts []int) *FreeStartsResponse {
	resp := &FreeStartsResponse{
		DayID:         dayID,
		DurationHours: durationHours,
		Starts:        make([]string, 0, len(starts)),
	}
	for _, s := range starts {
		resp.Starts = append(resp.Starts, entity.MinutesToClock(s))
	}
	return resp
}

// ParseDate parses a "2006-01-02" date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
