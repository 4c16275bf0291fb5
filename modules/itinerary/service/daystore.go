package service

import (
	"fmt"
	"time"

	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
)

// DayStore owns the authoritative ordered day list of one trip draft and
// keeps day numbering contiguous. It is an explicit object handed to every
// operation so the engine stays testable without any ambient state.
type DayStore struct {
	grid       *TimeGrid
	aggregator *BudgetAggregator
	days       []*entity.Day
}

// DayPatch carries the fields UpdateDay shallow-merges. Nil means "leave as is".
type DayPatch struct {
	Title        *string
	Description  *string
	Date         *time.Time
	Notes        *string
	Budget       *entity.BudgetSummary
	ActivityType *entity.ActivityType
	Location     *string
	Completed    *bool
}

// NewDayStore creates an empty store over the given grid.
func NewDayStore(grid *TimeGrid) *DayStore {
	return &DayStore{
		grid:       grid,
		aggregator: NewBudgetAggregator(),
	}
}

// GenerateDays replaces the day list with one day per calendar date in the
// inclusive range. Day 1 is the arrival, the last day the departure (both
// travel), everything between defaults to sightseeing. Fails with an
// invalid-range error when endDate precedes startDate.
func (s *DayStore) GenerateDays(startDate, endDate time.Time, defaultLocation string) *errors.AppError {
	start := truncateToDate(startDate)
	end := truncateToDate(endDate)
	if end.Before(start) {
		return errors.NewAppError(errors.ErrInvalidRange, "End date must not be before start date", nil)
	}

	total := int(end.Sub(start).Hours()/24) + 1
	days := make([]*entity.Day, 0, total)
	for i := 0; i < total; i++ {
		day := s.newDay(i+1, start.AddDate(0, 0, i), defaultLocation)
		switch {
		case i == 0:
			day.ActivityType = entity.ActivityTypeTravel
			day.Title = "Arrival"
		case i == total-1:
			day.ActivityType = entity.ActivityTypeTravel
			day.Title = "Departure"
		default:
			day.ActivityType = entity.ActivityTypeSightseeing
			day.Title = fmt.Sprintf("Day %d", i+1)
		}
		days = append(days, day)
	}

	s.days = days
	s.aggregator.RecomputeTrip(s.days)
	return nil
}

// AddDay appends one day after the last with a fresh slot set.
func (s *DayStore) AddDay() *entity.Day {
	number := len(s.days) + 1
	var date time.Time
	var location string
	if len(s.days) > 0 {
		last := s.days[len(s.days)-1]
		date = last.Date.AddDate(0, 0, 1)
		location = last.Location
	} else {
		date = truncateToDate(time.Now())
	}

	day := s.newDay(number, date, location)
	day.ActivityType = entity.ActivityTypeSightseeing
	day.Title = fmt.Sprintf("Day %d", number)
	s.days = append(s.days, day)
	return day
}

// RemoveDay deletes the day and renumbers the survivors 1..N in their
// existing insertion order, then recomputes the trip totals.
func (s *DayStore) RemoveDay(dayID string) *errors.AppError {
	idx := s.indexOf(dayID)
	if idx < 0 {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	s.days = append(s.days[:idx], s.days[idx+1:]...)
	for i, day := range s.days {
		day.DayNumber = i + 1
	}
	s.aggregator.RecomputeTrip(s.days)
	return nil
}

// UpdateDay shallow-merges the patch into the matching day.
func (s *DayStore) UpdateDay(dayID string, patch DayPatch) *errors.AppError {
	day := s.DayByID(dayID)
	if day == nil {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	if patch.Title != nil {
		day.Title = *patch.Title
	}
	if patch.Description != nil {
		day.Description = *patch.Description
	}
	if patch.Date != nil {
		day.Date = truncateToDate(*patch.Date)
	}
	if patch.Notes != nil {
		day.Notes = *patch.Notes
	}
	if patch.Budget != nil {
		day.Budget = *patch.Budget
	}
	if patch.ActivityType != nil {
		day.ActivityType = *patch.ActivityType
	}
	if patch.Location != nil {
		day.Location = *patch.Location
	}
	if patch.Completed != nil {
		day.Completed = *patch.Completed
	}
	return nil
}

// Restore replaces the day list with days loaded from a persisted payload.
// Day numbers are renumbered 1..N in list order, missing slot sets are
// regenerated from the grid and all budget totals are recomputed; persisted
// totals are advisory only.
func (s *DayStore) Restore(days []*entity.Day) {
	for i, day := range days {
		day.DayNumber = i + 1
		if day.ID == "" {
			day.ID = utils.GenerateID()
		}
		if day.Activities == nil {
			day.Activities = []entity.Activity{}
		}
		if len(day.TimeSlots) == 0 {
			day.TimeSlots = s.grid.GenerateSlots()
		}
		if day.ActivityType == "" {
			day.ActivityType = entity.ActivityTypeSightseeing
		}
	}
	s.days = days
	s.aggregator.RecomputeTrip(s.days)
}

// Days returns the live ordered day list.
func (s *DayStore) Days() []*entity.Day {
	return s.days
}

// DayByID returns the day with the given id, or nil.
func (s *DayStore) DayByID(dayID string) *entity.Day {
	idx := s.indexOf(dayID)
	if idx < 0 {
		return nil
	}
	return s.days[idx]
}

// DayByNumber returns the day with the given 1-based number, or nil.
func (s *DayStore) DayByNumber(number int) *entity.Day {
	for _, day := range s.days {
		if day.DayNumber == number {
			return day
		}
	}
	return nil
}

// TotalEstimatedBudget recomputes and returns the trip-level estimate.
// The totals are derived state and never stored independently.
func (s *DayStore) TotalEstimatedBudget() float64 {
	return s.aggregator.RecomputeTrip(s.days)
}

// Grid exposes the slot layout generator the store was built with.
func (s *DayStore) Grid() *TimeGrid {
	return s.grid
}

// Aggregator exposes the budget aggregator for placement triggers.
func (s *DayStore) Aggregator() *BudgetAggregator {
	return s.aggregator
}

func (s *DayStore) newDay(number int, date time.Time, location string) *entity.Day {
	return &entity.Day{
		ID:         utils.GenerateID(),
		DayNumber:  number,
		Date:       date,
		Location:   location,
		Activities: []entity.Activity{},
		TimeSlots:  s.grid.GenerateSlots(),
		Budget:     entity.BudgetSummary{Breakdown: []entity.BudgetItem{}},
	}
}

func (s *DayStore) indexOf(dayID string) int {
	for i, day := range s.days {
		if day.ID == dayID {
			return i
		}
	}
	return -1
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
