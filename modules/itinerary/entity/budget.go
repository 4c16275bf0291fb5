package entity

// BudgetItem is one line of a day's itemized breakdown.
type BudgetItem struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// BudgetSummary is a day's money view. Estimated always equals the sum of
// the breakdown amounts and, independently, the sum of the placed
// activities' estimated costs; the aggregator rebuilds both from the
// activity list so they reconcile by construction.
type BudgetSummary struct {
	Estimated float64      `json:"estimated"`
	Actual    *float64     `json:"actual,omitempty"`
	Breakdown []BudgetItem `json:"breakdown"`
}
