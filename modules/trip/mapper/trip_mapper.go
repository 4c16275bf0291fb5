package mapper

import (
	"time"

	itinentity "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
)

// The trip-storage API accepts a flat payload. Fields the external schema
// does not know are dropped on serialize; fields it omits are defaulted on
// deserialize (missing slot sets are regenerated, day numbers renumbered,
// budget totals recomputed).

// TripPayload is the flat shape submitted to the trip-storage API.
type TripPayload struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	IsPublic     bool         `json:"isPublic"`
	Destinations []string     `json:"destinations"`
	TotalBudget  float64      `json:"totalBudget"`
	Itinerary    []DayPayload `json:"itinerary"`
}

// DayPayload is one itinerary entry of the external schema.
type DayPayload struct {
	ID           string            `json:"id,omitempty"`
	DayNumber    int               `json:"dayNumber"`
	Date         string            `json:"date"`
	Title        string            `json:"title,omitempty"`
	Description  string            `json:"description,omitempty"`
	Location     string            `json:"location,omitempty"`
	ActivityType string            `json:"activityType,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Completed    bool              `json:"completed"`
	Budget       BudgetPayload     `json:"budget"`
	Activities   []ActivityPayload `json:"activities"`
	TimeSlots    []SlotPayload     `json:"timeSlots,omitempty"`
}

// BudgetPayload mirrors a day's budget summary.
type BudgetPayload struct {
	Estimated float64             `json:"estimated"`
	Actual    *float64            `json:"actual,omitempty"`
	Breakdown []BudgetItemPayload `json:"breakdown,omitempty"`
}

// BudgetItemPayload is one breakdown line.
type BudgetItemPayload struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// ActivityPayload is one placed activity of the external schema.
type ActivityPayload struct {
	ID            string   `json:"id,omitempty"`
	SourceID      *string  `json:"sourceId,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	PriceTier     string   `json:"priceTier,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	DurationHours float64  `json:"durationHours"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	OrderIndex    int      `json:"orderIndex"`
	Notes         string   `json:"notes,omitempty"`
	EstimatedCost float64  `json:"estimatedCost"`
}

// SlotPayload is one occupied-or-free grid cell of the external schema.
type SlotPayload struct {
	ID        string           `json:"id"`
	StartTime string           `json:"startTime"`
	EndTime   string           `json:"endTime"`
	Occupied  bool             `json:"occupied"`
	Activity  *ActivityPayload `json:"activity,omitempty"`
}

// SerializeDays converts the day store's live state into the external
// itinerary array. Enrichment metadata is not part of the external schema
// and is dropped here.
func SerializeDays(days []*itinentity.Day) []DayPayload {
	payload := make([]DayPayload, 0, len(days))
	for _, day := range days {
		p := DayPayload{
			ID:           day.ID,
			DayNumber:    day.DayNumber,
			Date:         day.Date.Format("2006-01-02"),
			Title:        day.Title,
			Description:  day.Description,
			Location:     day.Location,
			ActivityType: string(day.ActivityType),
			Notes:        day.Notes,
			Completed:    day.Completed,
			Budget: BudgetPayload{
				Estimated: day.Budget.Estimated,
				Actual:    day.Budget.Actual,
				Breakdown: serializeBreakdown(day.Budget.Breakdown),
			},
			Activities: make([]ActivityPayload, 0, len(day.Activities)),
			TimeSlots:  make([]SlotPayload, 0, len(day.TimeSlots)),
		}
		for i := range day.Activities {
			p.Activities = append(p.Activities, serializeActivity(&day.Activities[i]))
		}
		for i := range day.TimeSlots {
			slot := &day.TimeSlots[i]
			sp := SlotPayload{
				ID:        slot.ID,
				StartTime: itinentity.MinutesToClock(slot.StartMinutes),
				EndTime:   itinentity.MinutesToClock(slot.EndMinutes),
				Occupied:  slot.Occupied,
			}
			if slot.Activity != nil {
				a := serializeActivity(slot.Activity)
				sp.Activity = &a
			}
			p.TimeSlots = append(p.TimeSlots, sp)
		}
		payload = append(payload, p)
	}
	return payload
}

// DeserializeDays rebuilds engine days from a persisted itinerary array and
// installs them into the store. Payload budget totals are advisory; the
// store recomputes them from the activity lists.
func DeserializeDays(payload []DayPayload, store *itinservice.DayStore) {
	days := make([]*itinentity.Day, 0, len(payload))
	for _, p := range payload {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			date = time.Time{}
		}
		day := &itinentity.Day{
			ID:           p.ID,
			DayNumber:    p.DayNumber,
			Date:         date,
			Title:        p.Title,
			Description:  p.Description,
			Location:     p.Location,
			ActivityType: itinentity.ActivityType(p.ActivityType),
			Notes:        p.Notes,
			Completed:    p.Completed,
			Budget: itinentity.BudgetSummary{
				Actual:    p.Budget.Actual,
				Breakdown: deserializeBreakdown(p.Budget.Breakdown),
			},
		}
		for i := range p.Activities {
			day.Activities = append(day.Activities, deserializeActivity(&p.Activities[i], i+1))
		}
		for i := range p.TimeSlots {
			sp := &p.TimeSlots[i]
			start, err1 := itinentity.ClockToMinutes(sp.StartTime)
			end, err2 := itinentity.ClockToMinutes(sp.EndTime)
			if err1 != nil || err2 != nil {
				// Malformed slot rows are dropped; Restore regenerates a
				// fresh grid when none survive.
				continue
			}
			slot := itinentity.Slot{
				ID:           sp.ID,
				StartMinutes: start,
				EndMinutes:   end,
			}
			if sp.Occupied && sp.Activity != nil {
				activity := deserializeActivity(sp.Activity, 0)
				slot.Activity = &activity
				slot.Occupied = true
			}
			day.TimeSlots = append(day.TimeSlots, slot)
		}
		days = append(days, day)
	}
	store.Restore(days)
}

func serializeActivity(a *itinentity.Activity) ActivityPayload {
	return ActivityPayload{
		ID:            a.ID,
		SourceID:      a.SourceID,
		Name:          a.Name,
		Description:   a.Description,
		Category:      a.Category,
		PriceTier:     a.PriceTier,
		Rating:        a.Rating,
		DurationHours: float64(a.DurationMinutes) / 60,
		StartTime:     itinentity.MinutesToClock(a.StartMinutes),
		EndTime:       itinentity.MinutesToClock(a.EndMinutes),
		OrderIndex:    a.OrderIndex,
		Notes:         a.Notes,
		EstimatedCost: a.EstimatedCost,
	}
}

func deserializeActivity(p *ActivityPayload, fallbackOrder int) itinentity.Activity {
	start, err := itinentity.ClockToMinutes(p.StartTime)
	if err != nil {
		start = 9 * 60
	}
	end, err := itinentity.ClockToMinutes(p.EndTime)
	if err != nil || end <= start {
		end = start + int(p.DurationHours*60)
		if end <= start {
			end = start + 120
		}
	}
	order := p.OrderIndex
	if order <= 0 {
		order = fallbackOrder
	}
	return itinentity.Activity{
		ID:              p.ID,
		SourceID:        p.SourceID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		PriceTier:       p.PriceTier,
		Rating:          p.Rating,
		DurationMinutes: end - start,
		StartMinutes:    start,
		EndMinutes:      end,
		OrderIndex:      order,
		Notes:           p.Notes,
		EstimatedCost:   p.EstimatedCost,
	}
}

func serializeBreakdown(items []itinentity.BudgetItem) []BudgetItemPayload {
	out := make([]BudgetItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, BudgetItemPayload(item))
	}
	return out
}

func deserializeBreakdown(items []BudgetItemPayload) []itinentity.BudgetItem {
	out := make([]itinentity.BudgetItem, 0, len(items))
	for _, item := range items {
		out = append(out, itinentity.BudgetItem(item))
	}
	return out
}
