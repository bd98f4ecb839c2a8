package db

import (
	"budget-tracker-server/src/apperr"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestBudgetCreateErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "budgets_active_user_month_idx"}

	err := budgetCreateError(pgErr)

	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	if got := apperr.Status(err); got != http.StatusConflict {
		t.Errorf("status = %d, want %d", got, http.StatusConflict)
	}
	if got := apperr.Message(err); got != "an active budget already exists for this month" {
		t.Errorf("message = %q", got)
	}
}

func TestBudgetCreateErrorOtherFailures(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := budgetCreateError(cause)

	if errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, must not be Conflict", err)
	}
	if !errors.Is(err, apperr.ErrInternal) {
		t.Errorf("err = %v, want Internal", err)
	}
	if got := apperr.Message(err); got == cause.Error() {
		t.Errorf("message %q leaks the storage error", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert budget: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
