package models

import (
	"math"
	"time"
)

// BudgetAnalysis is the derived spend-vs-budget summary for one active
// budget. It is recomputed from current data on every request and never
// persisted.
type BudgetAnalysis struct {
	BudgetID       int64     `json:"budgetId"`
	Month          time.Time `json:"month"`
	Budget         float64   `json:"budget"`
	Spent          float64   `json:"spent"`
	Remaining      float64   `json:"remaining"`
	PercentageUsed float64   `json:"percentageUsed"`
	Transactions   int       `json:"transactions"`
}

// BuildBudgetAnalysis sums the expenses contributing to b's month window and
// derives remaining and percentage used. Remaining may go negative. A budget
// of 0 would make the percentage division degenerate; it reports 0 when
// nothing was spent and 100 otherwise, never NaN or Inf.
func BuildBudgetAnalysis(b Budget, expenses []Transaction) BudgetAnalysis {
	var spent float64
	for _, e := range expenses {
		spent += e.Amount
	}

	var pct float64
	switch {
	case b.Amount > 0:
		pct = round2(spent / b.Amount * 100)
	case spent > 0:
		pct = 100
	}

	return BudgetAnalysis{
		BudgetID:       b.ID,
		Month:          b.Month,
		Budget:         b.Amount,
		Spent:          spent,
		Remaining:      b.Amount - spent,
		PercentageUsed: pct,
		Transactions:   len(expenses),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
