package db

import (
	"budget-tracker-server/src/models"
	"strings"
	"testing"
	"time"
)

func TestBuildTransactionFilterOwnerOnly(t *testing.T) {
	where, args := buildTransactionFilter(42, models.TransactionFilter{})

	if where != "user_id = $1" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 1 || args[0] != int64(42) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildTransactionFilterAllFilters(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 23, 59, 59, 0, time.UTC)
	min, max := 5.0, 500.0

	where, args := buildTransactionFilter(1, models.TransactionFilter{
		Category:    "Food",
		Type:        "expense",
		Title:       "cof",
		Description: "latte",
		StartDate:   &start,
		EndDate:     &end,
		MinAmount:   &min,
		MaxAmount:   &max,
	})

	wantClauses := []string{
		"user_id = $1",
		"category = $2",
		"type = $3",
		`title ILIKE '%' || $4 || '%' ESCAPE '\'`,
		`description ILIKE '%' || $5 || '%' ESCAPE '\'`,
		"date >= $6",
		"date <= $7",
		"amount >= $8",
		"amount <= $9",
	}
	if want := strings.Join(wantClauses, " AND "); where != want {
		t.Errorf("where = %q\nwant    %q", where, want)
	}
	if len(args) != 9 {
		t.Fatalf("args length = %d, want 9", len(args))
	}
	if args[1] != "Food" || args[2] != "expense" || args[3] != "cof" || args[4] != "latte" {
		t.Errorf("unexpected string args: %v", args)
	}
	if args[5] != start || args[6] != end {
		t.Errorf("unexpected date args: %v", args)
	}
	if args[7] != min || args[8] != max {
		t.Errorf("unexpected amount args: %v", args)
	}
}

func TestBuildTransactionFilterEscapesLikeMetacharacters(t *testing.T) {
	where, args := buildTransactionFilter(1, models.TransactionFilter{
		Title:       `50%_off`,
		Description: `back\slash`,
	})

	// % and _ in the search text must match literally, not as wildcards.
	if !strings.Contains(where, `title ILIKE '%' || $2 || '%' ESCAPE '\'`) {
		t.Errorf("where = %q, want escaped title clause", where)
	}
	if args[1] != `50\%\_off` {
		t.Errorf("title arg = %q, want %q", args[1], `50\%\_off`)
	}
	if args[2] != `back\\slash` {
		t.Errorf("description arg = %q, want %q", args[2], `back\\slash`)
	}
}

func TestBuildTransactionFilterOpenEndedRanges(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	where, args := buildTransactionFilter(1, models.TransactionFilter{StartDate: &start})

	if !strings.Contains(where, "date >= $2") {
		t.Errorf("where = %q, want lower date bound only", where)
	}
	if strings.Contains(where, "date <= ") {
		t.Errorf("where = %q, open upper bound must not be constrained", where)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildTransactionFilterPlaceholderNumbering(t *testing.T) {
	max := 100.0
	where, _ := buildTransactionFilter(1, models.TransactionFilter{
		Type:      "income",
		MaxAmount: &max,
	})

	// Placeholders must be numbered by position in args, not by filter field.
	if want := "user_id = $1 AND type = $2 AND amount <= $3"; where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
}
