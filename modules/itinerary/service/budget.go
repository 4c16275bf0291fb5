package service

import (
	"sort"

	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
)

// BudgetAggregator is the single source of truth for derived money totals.
// Totals are recomputed from the activity lists on every trigger, never
// patched incrementally, so they cannot drift.
type BudgetAggregator struct{}

// NewBudgetAggregator creates the aggregator.
func NewBudgetAggregator() *BudgetAggregator {
	return &BudgetAggregator{}
}

// RecomputeDay rewrites the day's estimate as the sum of its placed
// activities' costs and rebuilds the itemized breakdown grouped by
// category, so both sums reconcile by construction.
func (a *BudgetAggregator) RecomputeDay(day *entity.Day) entity.BudgetSummary {
	total := 0.0
	byCategory := map[string]float64{}
	for _, activity := range day.Activities {
		total += activity.EstimatedCost
		category := activity.Category
		if category == "" {
			category = "general"
		}
		byCategory[category] += activity.EstimatedCost
	}

	breakdown := make([]entity.BudgetItem, 0, len(byCategory))
	for category, amount := range byCategory {
		breakdown = append(breakdown, entity.BudgetItem{
			Category:    category,
			Amount:      amount,
			Description: "estimated from planned activities",
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	day.Budget.Estimated = total
	day.Budget.Breakdown = breakdown
	return day.Budget
}

// RecomputeTrip recomputes every day and returns the trip-level total.
func (a *BudgetAggregator) RecomputeTrip(days []*entity.Day) float64 {
	total := 0.0
	for _, day := range days {
		total += a.RecomputeDay(day).Estimated
	}
	return total
}
