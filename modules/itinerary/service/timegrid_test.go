package service

import (
	"testing"

	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	grid := NewTimeGrid()
	slots := grid.GenerateSlots()

	require.Len(t, slots, 7)
	assert.Equal(t, "slot-08", slots[0].ID)
	assert.Equal(t, 8*60, slots[0].StartMinutes)
	assert.Equal(t, 10*60, slots[0].EndMinutes)
	assert.Equal(t, "slot-20", slots[6].ID)
	assert.Equal(t, 22*60, slots[6].EndMinutes)

	for _, slot := range slots {
		assert.False(t, slot.Occupied)
		assert.Nil(t, slot.Activity)
	}

	// Deterministic: two calls produce the same layout.
	assert.Equal(t, slots, grid.GenerateSlots())
}

func TestGenerateSlotsNoOverlap(t *testing.T) {
	slots := NewTimeGrid().GenerateSlots()
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			assert.False(t, entity.Overlaps(
				slots[i].StartMinutes, slots[i].EndMinutes,
				slots[j].StartMinutes, slots[j].EndMinutes))
		}
	}
}

func dayWithActivities(intervals ...[2]int) *entity.Day {
	day := &entity.Day{TimeSlots: NewTimeGrid().GenerateSlots()}
	for i, iv := range intervals {
		day.Activities = append(day.Activities, entity.Activity{
			ID:           string(rune('a' + i)),
			Name:         "busy",
			StartMinutes: iv[0],
			EndMinutes:   iv[1],
		})
	}
	return day
}

func TestFindFreeStartsEmptyDay(t *testing.T) {
	grid := NewTimeGrid()
	starts := grid.FindFreeStarts(dayWithActivities(), 2)

	// 09:00 through 16:00 every 30 minutes: a 2-hour activity must end by 18:00.
	require.NotEmpty(t, starts)
	assert.Equal(t, 9*60, starts[0])
	assert.Equal(t, 16*60, starts[len(starts)-1])
	assert.Len(t, starts, 15)
}

func TestFindFreeStartsAvoidsOccupiedIntervals(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities([2]int{9 * 60, 11 * 60}, [2]int{13 * 60, 15 * 60})

	starts := grid.FindFreeStarts(day, 2)

	assert.NotContains(t, starts, 9*60)
	assert.NotContains(t, starts, 10*60)
	assert.NotContains(t, starts, 10*60+30)
	assert.Contains(t, starts, 11*60)
	// 11:30 + 2h runs into the 13:00 interval.
	assert.NotContains(t, starts, 11*60+30)
	assert.NotContains(t, starts, 12*60)
	assert.NotContains(t, starts, 13*60)
	assert.Contains(t, starts, 15*60)
	assert.Contains(t, starts, 15*60+30)
	assert.Contains(t, starts, 16*60)
	// Nothing may spill past the search window.
	for _, s := range starts {
		assert.LessOrEqual(t, s+120, 18*60)
	}
}

func TestFindFreeStartsCorrectnessProperty(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities([2]int{9*60 + 15, 10 * 60}, [2]int{12 * 60, 16 * 60})

	for _, duration := range []float64{0.5, 1, 1.5, 2, 3} {
		starts := grid.FindFreeStarts(day, duration)
		d := int(duration * 60)
		for _, s := range starts {
			assert.GreaterOrEqual(t, s, 9*60)
			assert.LessOrEqual(t, s+d, 18*60)
			for _, busy := range day.OccupiedIntervals() {
				assert.Falsef(t, entity.Overlaps(s, s+d, busy[0], busy[1]),
					"start %d duration %v overlaps %v", s, duration, busy)
			}
		}
	}
}

func TestFindFreeStartsNoCapacity(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities([2]int{8 * 60, 22 * 60})

	starts := grid.FindFreeStarts(day, 2)
	assert.Empty(t, starts)
}

func TestFindFreeStartsDefaultsDuration(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities()

	// Non-positive durations fall back to 2 hours.
	assert.Equal(t, grid.FindFreeStarts(day, 2), grid.FindFreeStarts(day, 0))
	assert.Equal(t, grid.FindFreeStarts(day, 2), grid.FindFreeStarts(day, -1))
}

func TestFindFreeStartsDoesNotMutateDay(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities([2]int{14 * 60, 12 * 60 + 600}, [2]int{9 * 60, 10 * 60})
	before := *day
	beforeActivities := append([]entity.Activity(nil), day.Activities...)

	grid.FindFreeStarts(day, 1)

	assert.Equal(t, before.TimeSlots, day.TimeSlots)
	assert.Equal(t, beforeActivities, day.Activities)
}

func TestFindFreeStartsConsidersOccupiedSlots(t *testing.T) {
	grid := NewTimeGrid()
	day := dayWithActivities()
	day.TimeSlots[1].Occupied = true // 10:00-12:00
	day.TimeSlots[1].Activity = &entity.Activity{ID: "x", Name: "museum"}

	starts := grid.FindFreeStarts(day, 2)
	assert.NotContains(t, starts, 10*60)
	assert.NotContains(t, starts, 11*60)
	assert.Contains(t, starts, 12*60)
}
