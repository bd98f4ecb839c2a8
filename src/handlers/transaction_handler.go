package handlers

import (
	"budget-tracker-server/src/apperr"
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		if missing := req.MissingFields(); len(missing) > 0 {
			respondMessage(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
			return
		}
		if *req.Amount <= 0 {
			respondMessage(w, http.StatusBadRequest, "amount must be a positive number")
			return
		}
		if !models.ValidType(req.Type) {
			respondMessage(w, http.StatusBadRequest, "type must be either 'income' or 'expense'")
			return
		}

		date := time.Now().UTC()
		if req.Date != "" {
			parsed, ok := util.ParseDate(req.Date)
			if !ok {
				respondMessage(w, http.StatusBadRequest, "invalid date format")
				return
			}
			date = parsed
		}

		created, err := db.CreateTransaction(r.Context(), pool, &models.Transaction{
			UserID:      userID,
			Title:       req.Title,
			Amount:      *req.Amount,
			Type:        req.Type,
			Category:    req.Category,
			Description: req.Description,
			Date:        date,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		cache.InvalidateUserCaches(userID)
		log.Printf("INFO: Created transaction id %d for user %d", created.ID, userID)
		respondJSON(w, http.StatusCreated, created)
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		filter, err := parseTransactionFilter(r)
		if err != nil {
			respondError(w, err)
			return
		}

		page, err := db.ListTransactions(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, page)
	}
}

// parseTransactionFilter reads the public listing's query parameters. Bad
// numeric or date values are validation errors, never silently dropped.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		Category:    q.Get("category"),
		Type:        q.Get("type"),
		Title:       q.Get("title"),
		Description: q.Get("description"),
		Page:        1,
		Limit:       10,
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, apperr.Validation("page must be a positive integer")
		}
		filter.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, apperr.Validation("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("startDate"); raw != "" {
		t, ok := util.ParseDate(raw)
		if !ok {
			return filter, apperr.Validation("invalid startDate")
		}
		filter.StartDate = &t
	}
	if raw := q.Get("endDate"); raw != "" {
		t, ok := util.ParseDate(raw)
		if !ok {
			return filter, apperr.Validation("invalid endDate")
		}
		filter.EndDate = &t
	}
	if raw := q.Get("minAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperr.Validation("invalid minAmount")
		}
		filter.MinAmount = &v
	}
	if raw := q.Get("maxAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperr.Validation("invalid maxAmount")
		}
		filter.MaxAmount = &v
	}

	return filter, nil
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		txID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		var patch models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}
		if patch.Amount != nil && *patch.Amount <= 0 {
			respondMessage(w, http.StatusBadRequest, "amount must be a positive number")
			return
		}
		if patch.Type != nil && !models.ValidType(*patch.Type) {
			respondMessage(w, http.StatusBadRequest, "type must be either 'income' or 'expense'")
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, userID, txID, patch)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", txID, userID, err)
			respondError(w, err)
			return
		}

		cache.InvalidateUserCaches(userID)
		log.Printf("INFO: Updated transaction id %d for user %d", txID, userID)
		respondJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		txID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, txID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", txID, userID, err)
			respondError(w, err)
			return
		}

		cache.InvalidateUserCaches(userID)
		log.Printf("INFO: Deleted transaction id %d for user %d", txID, userID)
		respondMessage(w, http.StatusOK, "transaction removed")
	}
}

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		if cached, found := cache.CacheGet(cache.CategoriesCacheKey(userID)); found {
			if categories, ok := cached.([]string); ok {
				respondJSON(w, http.StatusOK, categories)
				return
			}
		}

		categories, err := db.GetDistinctCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		cache.CacheSet(cache.CategoriesCacheKey(userID), categories)
		respondJSON(w, http.StatusOK, categories)
	}
}
