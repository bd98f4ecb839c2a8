package handlers

import (
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type createBudgetRequest struct {
	Amount    *float64 `json:"amount"`
	Month     string   `json:"month"`
	Category  string   `json:"category"`
	Period    string   `json:"period"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		var req createBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Amount == nil || req.Month == "" {
			respondMessage(w, http.StatusBadRequest, "amount and month are required")
			return
		}
		if *req.Amount < 0 {
			respondMessage(w, http.StatusBadRequest, "amount must not be negative")
			return
		}

		month, ok := util.NormalizeMonth(req.Month)
		if !ok {
			respondMessage(w, http.StatusBadRequest, "invalid month format, use YYYY-MM or a full ISO date")
			return
		}

		period := req.Period
		if period == "" {
			period = models.PeriodMonthly
		}
		if !models.ValidPeriod(period) {
			respondMessage(w, http.StatusBadRequest, "period must be one of daily, weekly, monthly, yearly")
			return
		}

		var startDate, endDate *time.Time
		if req.StartDate != "" {
			t, ok := util.ParseDate(req.StartDate)
			if !ok {
				respondMessage(w, http.StatusBadRequest, "invalid startDate")
				return
			}
			startDate = &t
		}
		if req.EndDate != "" {
			t, ok := util.ParseDate(req.EndDate)
			if !ok {
				respondMessage(w, http.StatusBadRequest, "invalid endDate")
				return
			}
			endDate = &t
		}
		if startDate != nil && endDate != nil && startDate.After(*endDate) {
			respondMessage(w, http.StatusBadRequest, "startDate must not be after endDate")
			return
		}

		created, err := db.CreateBudget(r.Context(), pool, &models.Budget{
			UserID:    userID,
			Amount:    *req.Amount,
			Month:     month,
			Category:  req.Category,
			Period:    period,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d, month %s: %v", userID, month.Format("2006-01"), err)
			respondError(w, err)
			return
		}

		log.Printf("INFO: Created budget id %d for user %d, month %s", created.ID, userID, month.Format("2006-01"))
		respondJSON(w, http.StatusCreated, created)
	}
}

func GetBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		budgets, err := db.GetActiveBudgets(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		var req struct {
			Amount *float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		updated, err := db.UpdateBudgetAmount(r.Context(), pool, userID, budgetID, req.Amount)
		if err != nil {
			log.Printf("ERROR: Failed to update budget id %d for user %d: %v", budgetID, userID, err)
			respondError(w, err)
			return
		}

		log.Printf("INFO: Updated budget id %d for user %d", budgetID, userID)
		respondJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		if err := db.SoftDeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			respondError(w, err)
			return
		}

		log.Printf("INFO: Soft-deleted budget id %d for user %d", budgetID, userID)
		respondMessage(w, http.StatusOK, "budget deleted")
	}
}

// GetBudgetAnalysis recomputes the spend summary for each of the user's
// active budgets from current data; nothing here is cached or persisted.
func GetBudgetAnalysis(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		budgets, err := db.GetActiveBudgets(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for analysis for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		analysis := []models.BudgetAnalysis{}
		for _, budget := range budgets {
			start, end := util.MonthWindow(budget.Month)
			expenses, err := db.GetExpensesBetween(r.Context(), pool, userID, start, end)
			if err != nil {
				log.Printf("ERROR: Failed to get expenses for budget %d, user %d: %v", budget.ID, userID, err)
				respondError(w, err)
				return
			}
			analysis = append(analysis, models.BuildBudgetAnalysis(budget, expenses))
		}

		respondJSON(w, http.StatusOK, analysis)
	}
}
