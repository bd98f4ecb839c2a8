package models

import "testing"

func TestBuildDashboardSummary(t *testing.T) {
	transactions := []Transaction{
		{Type: "income", Amount: 1000},
		{Type: "income", Amount: 250},
		{Type: "expense", Amount: 100, Category: "Food"},
		{Type: "expense", Amount: 50, Category: "Food"},
		{Type: "expense", Amount: 80, Category: "Transport"},
	}

	got := BuildDashboardSummary(transactions)

	if got.Income != 1250 {
		t.Errorf("Income = %v, want 1250", got.Income)
	}
	if got.Expenses != 230 {
		t.Errorf("Expenses = %v, want 230", got.Expenses)
	}
	if len(got.CategoryData) != 2 {
		t.Fatalf("CategoryData length = %d, want 2", len(got.CategoryData))
	}
	if got.CategoryData[0].Category != "Food" || got.CategoryData[0].Amount != 150 {
		t.Errorf("CategoryData[0] = %+v, want Food/150", got.CategoryData[0])
	}
	if got.CategoryData[1].Category != "Transport" || got.CategoryData[1].Amount != 80 {
		t.Errorf("CategoryData[1] = %+v, want Transport/80", got.CategoryData[1])
	}
}

func TestBuildDashboardSummaryCaseInsensitiveType(t *testing.T) {
	got := BuildDashboardSummary([]Transaction{
		{Type: "Income", Amount: 10},
		{Type: "EXPENSE", Amount: 4, Category: "Misc"},
	})

	if got.Income != 10 {
		t.Errorf("Income = %v, want 10", got.Income)
	}
	if got.Expenses != 4 {
		t.Errorf("Expenses = %v, want 4", got.Expenses)
	}
}

func TestBuildDashboardSummaryUncategorized(t *testing.T) {
	got := BuildDashboardSummary([]Transaction{{Type: "expense", Amount: 12}})

	if len(got.CategoryData) != 1 || got.CategoryData[0].Category != UncategorizedLabel {
		t.Fatalf("CategoryData = %+v, want a single %q entry", got.CategoryData, UncategorizedLabel)
	}
	if got.CategoryData[0].Amount != 12 {
		t.Errorf("Amount = %v, want 12", got.CategoryData[0].Amount)
	}
}

func TestBuildDashboardSummaryIgnoresUnknownTypes(t *testing.T) {
	got := BuildDashboardSummary([]Transaction{
		{Type: "transfer", Amount: 999},
		{Type: "", Amount: 50},
		{Type: "income", Amount: 5},
	})

	if got.Income != 5 {
		t.Errorf("Income = %v, want 5", got.Income)
	}
	if got.Expenses != 0 {
		t.Errorf("Expenses = %v, want 0", got.Expenses)
	}
	if len(got.CategoryData) != 0 {
		t.Errorf("CategoryData = %+v, want empty", got.CategoryData)
	}
}

func TestBuildDashboardSummaryEmpty(t *testing.T) {
	got := BuildDashboardSummary(nil)

	if got.Income != 0 || got.Expenses != 0 {
		t.Errorf("empty input should produce zero totals, got %+v", got)
	}
	if got.CategoryData == nil {
		t.Error("CategoryData should be an empty slice, not nil")
	}
}
