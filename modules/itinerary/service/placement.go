package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
)

// PlacementService is the state machine governing where an activity lives.
// Every rejected operation leaves prior state fully intact; the engine never
// silently picks a different slot on the caller's behalf.
type PlacementService struct {
	store *DayStore
}

// NewPlacementService creates a placement service over the given store.
func NewPlacementService(store *DayStore) *PlacementService {
	return &PlacementService{store: store}
}

// PlaceInDay builds a concrete activity from the descriptor and appends it
// to the day's activity list. Cost derivation: explicit cost wins, else the
// price tier symbol count times the fixed unit rate. No overlap check is
// enforced on the free-form list; only slot placement enforces exclusivity.
// Triggers a budget recompute for the day and the trip.
func (p *PlacementService) PlaceInDay(dayID string, descriptor entity.ActivityDescriptor, explicitStartMinutes *int) (*entity.Activity, *errors.AppError) {
	day := p.store.DayByID(dayID)
	if day == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	activity := BuildActivity(descriptor, explicitStartMinutes)
	activity.OrderIndex = len(day.Activities) + 1
	day.Activities = append(day.Activities, activity)

	p.store.Aggregator().RecomputeDay(day)
	p.store.Aggregator().RecomputeTrip(p.store.Days())

	placed := &day.Activities[len(day.Activities)-1]
	return placed, nil
}

// PlaceInSlot attaches an activity to an unoccupied slot. The activity is
// not duplicated into the day's free-form list.
func (p *PlacementService) PlaceInSlot(dayID, slotID string, activity entity.Activity) *errors.AppError {
	day := p.store.DayByID(dayID)
	if day == nil {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}
	slot := findSlot(day, slotID)
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.Occupied {
		return errors.NewAppError(errors.ErrSlotOccupied, fmt.Sprintf("Slot %s is already occupied", slotID), nil)
	}

	if activity.ID == "" {
		activity.ID = utils.GenerateID()
	} else if p.slotHolding(activity.ID) != nil {
		return errors.NewAppError(errors.ErrInvalidMove, "Activity is already placed in a slot", nil)
	}
	if activity.EndMinutes <= activity.StartMinutes {
		activity.StartMinutes = slot.StartMinutes
		activity.EndMinutes = slot.EndMinutes
	}

	slot.Activity = &activity
	slot.Occupied = true
	return nil
}

// MoveBetweenSlots is the drag-and-drop contract: the source slot must be
// occupied and the target slot free. It either fully succeeds (source
// cleared, target set) or fully fails with no state change. Slot-only moves
// preserve cost, so no budget recompute happens here.
func (p *PlacementService) MoveBetweenSlots(sourceDayID, sourceSlotID, targetDayID, targetSlotID string) *errors.AppError {
	sourceDay := p.store.DayByID(sourceDayID)
	if sourceDay == nil {
		return errors.NewAppError(errors.ErrNotFound, "Source day not found", nil)
	}
	targetDay := p.store.DayByID(targetDayID)
	if targetDay == nil {
		return errors.NewAppError(errors.ErrNotFound, "Target day not found", nil)
	}

	source := findSlot(sourceDay, sourceSlotID)
	target := findSlot(targetDay, targetSlotID)

	// Validate both ends before touching either slot.
	if source == nil || !source.Occupied || source.Activity == nil {
		return errors.NewAppError(errors.ErrInvalidMove, "Source slot is empty", nil)
	}
	if target == nil || target.Occupied {
		return errors.NewAppError(errors.ErrInvalidMove, "Target slot is not available", nil)
	}

	activity := source.Activity
	source.Activity = nil
	source.Occupied = false

	activity.StartMinutes = target.StartMinutes
	activity.EndMinutes = target.EndMinutes
	target.Activity = activity
	target.Occupied = true
	return nil
}

// RemoveFromSlot clears a slot's occupancy. Removing an already-empty slot
// is a no-op, not an error.
func (p *PlacementService) RemoveFromSlot(dayID, slotID string) *errors.AppError {
	day := p.store.DayByID(dayID)
	if day == nil {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}
	slot := findSlot(day, slotID)
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}

	slot.Activity = nil
	slot.Occupied = false
	return nil
}

// RemoveActivity deletes a list-placed activity, reindexes the survivors,
// frees any slot still holding it and recomputes the budgets.
func (p *PlacementService) RemoveActivity(dayID, activityID string) *errors.AppError {
	day := p.store.DayByID(dayID)
	if day == nil {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	idx := -1
	for i, a := range day.Activities {
		if a.ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NewAppError(errors.ErrNotFound, "Activity not found", nil)
	}

	day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)
	for i := range day.Activities {
		day.Activities[i].OrderIndex = i + 1
	}

	if slot := p.slotHolding(activityID); slot != nil {
		slot.Activity = nil
		slot.Occupied = false
	}

	p.store.Aggregator().RecomputeDay(day)
	p.store.Aggregator().RecomputeTrip(p.store.Days())
	return nil
}

// UpdateActivityCost edits a placed activity's estimated cost and
// recomputes the budgets.
func (p *PlacementService) UpdateActivityCost(dayID, activityID string, cost float64) *errors.AppError {
	day := p.store.DayByID(dayID)
	if day == nil {
		return errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}

	for i := range day.Activities {
		if day.Activities[i].ID == activityID {
			day.Activities[i].EstimatedCost = cost
			p.store.Aggregator().RecomputeDay(day)
			p.store.Aggregator().RecomputeTrip(p.store.Days())
			return nil
		}
	}
	return errors.NewAppError(errors.ErrNotFound, "Activity not found", nil)
}

// ResolveSuggestion computes the candidate free starts for a suggestion.
// An empty list means "no free slot" and is a normal outcome the caller
// surfaces to the user; confirmation goes back through PlaceInDay with the
// chosen start.
func (p *PlacementService) ResolveSuggestion(dayID string, durationHours float64) ([]int, *errors.AppError) {
	day := p.store.DayByID(dayID)
	if day == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Day not found", nil)
	}
	return p.store.Grid().FindFreeStarts(day, durationHours), nil
}

// DayActivityLog renders the human-readable schedule lines for a day from
// the structured activity list. The list is the sole source of truth; the
// log is derived on demand and never stored.
func DayActivityLog(day *entity.Day) []string {
	lines := make([]string, 0, len(day.Activities))
	for _, a := range day.Activities {
		line := fmt.Sprintf("%s - %s: %s",
			entity.MinutesToClock(a.StartMinutes),
			entity.MinutesToClock(a.EndMinutes),
			a.Name)
		if a.Category != "" {
			line += fmt.Sprintf(" (%s)", a.Category)
		}
		if a.EstimatedCost > 0 {
			line += fmt.Sprintf(" - est. %.0f", a.EstimatedCost)
		}
		lines = append(lines, line)
	}
	return lines
}

// BuildActivity turns a descriptor into a concrete activity, deriving the
// defaults the descriptor leaves open.
func BuildActivity(d entity.ActivityDescriptor, explicitStartMinutes *int) entity.Activity {
	durationHours := d.DurationHours
	if durationHours <= 0 {
		durationHours = constants.DefaultDurationHours
	}
	durationMinutes := int(durationHours * 60)

	start := constants.DefaultStartMinutes
	if explicitStartMinutes != nil {
		start = *explicitStartMinutes
	} else if d.StartMinutes != nil {
		start = *d.StartMinutes
	}

	cost := 0.0
	if d.EstimatedCost != nil {
		cost = *d.EstimatedCost
	} else {
		cost = float64(utf8.RuneCountInString(strings.TrimSpace(d.PriceTier))) * constants.PriceTierUnitRate
	}

	return entity.Activity{
		ID:              utils.GenerateID(),
		SourceID:        d.SourceID,
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		PriceTier:       d.PriceTier,
		Rating:          d.Rating,
		DurationMinutes: durationMinutes,
		StartMinutes:    start,
		EndMinutes:      start + durationMinutes,
		Notes:           d.Notes,
		EstimatedCost:   cost,
	}
}

func findSlot(day *entity.Day, slotID string) *entity.Slot {
	for i := range day.TimeSlots {
		if day.TimeSlots[i].ID == slotID {
			return &day.TimeSlots[i]
		}
	}
	return nil
}

// slotHolding scans the whole trip for the slot currently holding the
// activity, if any. Slot exclusivity is trip-wide.
func (p *PlacementService) slotHolding(activityID string) *entity.Slot {
	for _, day := range p.store.Days() {
		for i := range day.TimeSlots {
			slot := &day.TimeSlots[i]
			if slot.Occupied && slot.Activity != nil && slot.Activity.ID == activityID {
				return slot
			}
		}
	}
	return nil
}
