package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetDashboard summarizes the caller's current calendar month: income and
// expense totals plus a per-category expense breakdown. The window is always
// computed at call time, never user-supplied.
func GetDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		start, end := util.MonthWindow(time.Now().UTC())
		cacheKey := cache.DashboardCacheKey(userID, start)

		if cached, found := cache.CacheGet(cacheKey); found {
			if summary, ok := cached.(models.DashboardSummary); ok {
				respondJSON(w, http.StatusOK, summary)
				return
			}
		}

		transactions, err := db.GetTransactionsBetween(r.Context(), pool, userID, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to get dashboard transactions for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		summary := models.BuildDashboardSummary(transactions)
		cache.CacheSet(cacheKey, summary)
		respondJSON(w, http.StatusOK, summary)
	}
}
