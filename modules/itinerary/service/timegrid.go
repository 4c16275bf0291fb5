package service

import (
	"fmt"
	"sort"

	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
)

// TimeGrid handles the fixed slot layout of a day and the free-start search.
// All computations are pure; inputs are never mutated.
type TimeGrid struct {
	// DayStartMinutes - default 08:00
	DayStartMinutes int
	// DayEndMinutes - default 22:00
	DayEndMinutes int
	// SlotWidthMinutes for slot generation
	SlotWidthMinutes int
	// SearchStartMinutes - default 09:00
	SearchStartMinutes int
	// SearchEndMinutes - default 18:00
	SearchEndMinutes int
	// StepMinutes between candidate starts
	StepMinutes int
}

// NewTimeGrid creates a time grid with the default planning window.
func NewTimeGrid() *TimeGrid {
	return &TimeGrid{
		DayStartMinutes:    constants.SlotDayStartMinutes,
		DayEndMinutes:      constants.SlotDayEndMinutes,
		SlotWidthMinutes:   constants.SlotWidthMinutes,
		SearchStartMinutes: constants.SearchWindowStart,
		SearchEndMinutes:   constants.SearchWindowEnd,
		StepMinutes:        constants.SearchStepMinutes,
	}
}

// GenerateSlots produces the deterministic slot layout for a fresh day:
// 08:00-22:00 in 2-hour steps, all unoccupied. Slot IDs derive from the
// start hour so they stay stable across day reorders.
func (g *TimeGrid) GenerateSlots() []entity.Slot {
	slots := make([]entity.Slot, 0, (g.DayEndMinutes-g.DayStartMinutes)/g.SlotWidthMinutes)
	for start := g.DayStartMinutes; start+g.SlotWidthMinutes <= g.DayEndMinutes; start += g.SlotWidthMinutes {
		slots = append(slots, entity.Slot{
			ID:           fmt.Sprintf("slot-%02d", start/60),
			StartMinutes: start,
			EndMinutes:   start + g.SlotWidthMinutes,
		})
	}
	return slots
}

// FindFreeStarts returns the candidate start minutes inside the search
// window where an activity of the given duration fits without overlapping
// any occupied interval of the day. An empty result means no capacity,
// never an error.
func (g *TimeGrid) FindFreeStarts(day *entity.Day, durationHours float64) []int {
	if durationHours <= 0 {
		durationHours = constants.DefaultDurationHours
	}
	duration := int(durationHours * 60)

	busy := g.mergeOverlappingIntervals(day.OccupiedIntervals())

	starts := []int{}
	for start := g.SearchStartMinutes; start <= g.SearchEndMinutes; start += g.StepMinutes {
		end := start + duration
		if end > g.SearchEndMinutes {
			break
		}
		if g.isFree(start, end, busy) {
			starts = append(starts, start)
		}
	}
	return starts
}

// mergeOverlappingIntervals merges overlapping or adjacent busy intervals.
func (g *TimeGrid) mergeOverlappingIntervals(intervals [][2]int) [][2]int {
	if len(intervals) == 0 {
		return intervals
	}

	// Copy before sorting; callers hand us live day state.
	sorted := make([][2]int, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i][0] < sorted[j][0]
	})

	merged := [][2]int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		last := &merged[len(merged)-1]
		current := sorted[i]

		if current[0] <= last[1] {
			if current[1] > last[1] {
				last[1] = current[1]
			}
		} else {
			merged = append(merged, current)
		}
	}
	return merged
}

func (g *TimeGrid) isFree(start, end int, busy [][2]int) bool {
	for _, b := range busy {
		if entity.Overlaps(start, end, b[0], b[1]) {
			return false
		}
	}
	return true
}
