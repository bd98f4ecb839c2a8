package api

import (
	"budget-tracker-server/src/config"
	"budget-tracker-server/src/handlers"
	"budget-tracker-server/src/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Register(pool, cfg.Auth))
			r.Post("/login", handlers.Login(pool, cfg.Auth))
			r.Post("/refresh-token", handlers.RefreshToken(pool, cfg.Auth))
			r.With(middleware.Auth(cfg.Auth)).Get("/verify", handlers.Verify(pool))
		})

		// Protected routes
		r.With(middleware.Auth(cfg.Auth)).Group(func(r chi.Router) {
			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Get("/transactions/categories", handlers.GetCategories(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Budgets
			r.Post("/budget", handlers.CreateBudget(pool))
			r.Get("/budget", handlers.GetBudgets(pool))
			r.Get("/budget/analysis", handlers.GetBudgetAnalysis(pool))
			r.Put("/budget/{budget_id}", handlers.UpdateBudget(pool))
			r.Delete("/budget/{budget_id}", handlers.DeleteBudget(pool))

			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(pool))
		})
	})

	return r
}
