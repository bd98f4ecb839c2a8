package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateBudgetValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			"missing amount",
			`{"month": "2025-05"}`,
			"amount and month are required",
		},
		{
			"missing month",
			`{"amount": 500}`,
			"amount and month are required",
		},
		{
			"negative amount",
			`{"amount": -1, "month": "2025-05"}`,
			"amount must not be negative",
		},
		{
			"unparseable month",
			`{"amount": 500, "month": "May 2025"}`,
			"invalid month format, use YYYY-MM or a full ISO date",
		},
		{
			"impossible month",
			`{"amount": 500, "month": "2025-13"}`,
			"invalid month format, use YYYY-MM or a full ISO date",
		},
		{
			"bad period",
			`{"amount": 500, "month": "2025-05", "period": "fortnightly"}`,
			"period must be one of daily, weekly, monthly, yearly",
		},
		{
			"start after end",
			`{"amount": 500, "month": "2025-05", "startDate": "2025-05-20", "endDate": "2025-05-10"}`,
			"startDate must not be after endDate",
		},
	}

	handler := CreateBudget(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/budget", tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeMessage(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestCreateBudgetAllowsZeroAmount(t *testing.T) {
	// A zero budget is a legal row; the request must get past validation.
	// The nil pool makes the storage call panic, which is fine here: the
	// point is that validation does not write a 400 first.
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		CreateBudget(nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/budget", `{"amount": 0, "month": "2025-05"}`))
	}()

	if rec.Code == http.StatusBadRequest {
		t.Errorf("zero amount was rejected by validation: %s", rec.Body.String())
	}
}
