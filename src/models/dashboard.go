package models

import (
	"sort"
	"strings"
)

// UncategorizedLabel stands in for transactions saved without a category when
// they are grouped for the dashboard breakdown.
const UncategorizedLabel = "Uncategorized"

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DashboardSummary struct {
	Income       float64          `json:"income"`
	Expenses     float64          `json:"expenses"`
	CategoryData []CategoryAmount `json:"categoryData"`
}

// BuildDashboardSummary walks the month's transactions once, accumulating
// income and expense totals plus per-category expense totals. Type matching
// is case-insensitive; a transaction whose type is neither income nor expense
// contributes to nothing. Category order in the result is alphabetical only
// for determinism, callers attach no meaning to it.
func BuildDashboardSummary(transactions []Transaction) DashboardSummary {
	summary := DashboardSummary{CategoryData: []CategoryAmount{}}
	byCategory := make(map[string]float64)

	for _, tx := range transactions {
		switch strings.ToLower(tx.Type) {
		case TypeIncome:
			summary.Income += tx.Amount
		case TypeExpense:
			summary.Expenses += tx.Amount
			category := tx.Category
			if category == "" {
				category = UncategorizedLabel
			}
			byCategory[category] += tx.Amount
		}
	}

	for category, amount := range byCategory {
		summary.CategoryData = append(summary.CategoryData, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(summary.CategoryData, func(i, j int) bool {
		return summary.CategoryData[i].Category < summary.CategoryData[j].Category
	})

	return summary
}
