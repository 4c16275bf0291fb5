package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itinentity "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
)

func seededStore(t *testing.T) *itinservice.DayStore {
	t.Helper()
	store := itinservice.NewDayStore(itinservice.NewTimeGrid())
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	require.Nil(t, store.GenerateDays(start, end, "Lisbon"))

	placement := itinservice.NewPlacementService(store)
	day := store.Days()[1]
	_, appErr := placement.PlaceInDay(day.ID, itinentity.ActivityDescriptor{
		Name:          "Harbour kayaking",
		Category:      "adventure",
		PriceTier:     "$$$",
		DurationHours: 2,
	}, nil)
	require.Nil(t, appErr)
	return store
}

func TestSerializeDaysRoundTrip(t *testing.T) {
	store := seededStore(t)
	payload := SerializeDays(store.Days())
	require.Len(t, payload, 3)
	assert.Equal(t, "2026-09-01", payload[0].Date)
	assert.Equal(t, "Arrival", payload[0].Title)
	require.Len(t, payload[1].Activities, 1)
	assert.Equal(t, "09:00", payload[1].Activities[0].StartTime)
	assert.Equal(t, "11:00", payload[1].Activities[0].EndTime)
	assert.Equal(t, 75.0, payload[1].Activities[0].EstimatedCost)
	assert.Equal(t, 75.0, payload[1].Budget.Estimated)
	assert.Len(t, payload[0].TimeSlots, 7)

	restored := itinservice.NewDayStore(itinservice.NewTimeGrid())
	DeserializeDays(payload, restored)
	require.Len(t, restored.Days(), 3)
	day := restored.Days()[1]
	require.Len(t, day.Activities, 1)
	assert.Equal(t, "Harbour kayaking", day.Activities[0].Name)
	assert.Equal(t, 9*60, day.Activities[0].StartMinutes)
	assert.Equal(t, 11*60, day.Activities[0].EndMinutes)
	assert.Equal(t, 75.0, day.Budget.Estimated)
	assert.Equal(t, 75.0, restored.TotalEstimatedBudget())
}

func TestDeserializeDaysDefaultsMissingFields(t *testing.T) {
	payload := []DayPayload{
		{
			// No id, no day number, no slots: deserialization must fill
			// all three and recompute the budget from the activities.
			Date: "2026-09-05",
			Activities: []ActivityPayload{
				{Name: "Street food tour", Category: "food", StartTime: "18:00", EndTime: "20:00", EstimatedCost: 40},
			},
			Budget: BudgetPayload{Estimated: 9999},
		},
		{DayNumber: 7, Date: "2026-09-06"},
	}

	store := itinservice.NewDayStore(itinservice.NewTimeGrid())
	DeserializeDays(payload, store)

	days := store.Days()
	require.Len(t, days, 2)
	assert.NotEmpty(t, days[0].ID)
	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, 2, days[1].DayNumber)
	assert.Len(t, days[0].TimeSlots, 7)
	assert.Equal(t, 40.0, days[0].Budget.Estimated)
	require.Len(t, days[0].Activities, 1)
	assert.Equal(t, 1, days[0].Activities[0].OrderIndex)
}

func TestDeserializeDaysDropsMalformedSlots(t *testing.T) {
	payload := []DayPayload{
		{
			DayNumber: 1,
			Date:      "2026-09-05",
			TimeSlots: []SlotPayload{
				{ID: "slot-xx", StartTime: "not-a-time", EndTime: "10:00"},
			},
		},
	}

	store := itinservice.NewDayStore(itinservice.NewTimeGrid())
	DeserializeDays(payload, store)

	require.Len(t, store.Days(), 1)
	// The one malformed row is dropped, leaving no slots, so the grid is
	// regenerated in full.
	assert.Len(t, store.Days()[0].TimeSlots, 7)
}
