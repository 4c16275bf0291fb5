package entity

import "time"

// ActivityType tags what kind of day this mostly is.
type ActivityType string

const (
	ActivityTypeTravel        ActivityType = "travel"
	ActivityTypeAccommodation ActivityType = "accommodation"
	ActivityTypeSightseeing   ActivityType = "sightseeing"
	ActivityTypeFood          ActivityType = "food"
	ActivityTypeAdventure     ActivityType = "adventure"
	ActivityTypeCulture       ActivityType = "culture"
	ActivityTypeRelaxation    ActivityType = "relaxation"
)

// Day is one calendar day of a trip draft.
type Day struct {
	ID           string        `json:"id"`
	DayNumber    int           `json:"day_number"`
	Date         time.Time     `json:"date"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Location     string        `json:"location,omitempty"`
	ActivityType ActivityType  `json:"activity_type"`
	Budget       BudgetSummary `json:"budget"`
	Notes        string        `json:"notes,omitempty"`
	Completed    bool          `json:"completed"`
	Activities   []Activity    `json:"activities"`
	TimeSlots    []Slot        `json:"time_slots"`
}

// Slot is a fixed sub-interval of a Day's plannable window. Occupied is true
// iff Activity is non-nil; the placement service is the only mutator.
type Slot struct {
	ID           string    `json:"id"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	Activity     *Activity `json:"activity,omitempty"`
	Occupied     bool      `json:"occupied"`
}

// OccupiedIntervals collects the half-open [start,end) intervals the day's
// placed activities and occupied slots cover. Used by the free-start search.
func (d *Day) OccupiedIntervals() [][2]int {
	intervals := make([][2]int, 0, len(d.Activities))
	for _, a := range d.Activities {
		intervals = append(intervals, [2]int{a.StartMinutes, a.EndMinutes})
	}
	for _, s := range d.TimeSlots {
		if s.Occupied {
			intervals = append(intervals, [2]int{s.StartMinutes, s.EndMinutes})
		}
	}
	return intervals
}
