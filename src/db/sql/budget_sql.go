package db

import (
	"budget-tracker-server/src/apperr"
	"budget-tracker-server/src/models"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = "id, user_id, amount, month, category, period, start_date, end_date, is_active, created_at, updated_at"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// budgetCreateError translates a failed budget insert. The only unique
// constraint on budgets is the active-per-month index, so a unique violation
// means the caller already has an active budget for that month.
func budgetCreateError(err error) error {
	if isUniqueViolation(err) {
		return apperr.ErrConflict.WithMessage("an active budget already exists for this month")
	}
	return apperr.ErrInternal.Wrap(err)
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Amount, &b.Month, &b.Category, &b.Period,
		&b.StartDate, &b.EndDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBudget inserts a new active budget. The partial unique index on
// (user_id, month) over active rows is the authority for the one-active-
// budget-per-month invariant; a violation comes back as Conflict without any
// read-then-write race.
func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, amount, month, category, period, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING ` + budgetColumns + `
	`
	created, err := scanBudget(pool.QueryRow(ctx, query,
		budget.UserID, budget.Amount, budget.Month, budget.Category, budget.Period,
		budget.StartDate, budget.EndDate))
	if err != nil {
		return nil, budgetCreateError(err)
	}
	return created, nil
}

// GetActiveBudgets returns the user's active budgets, newest month first.
func GetActiveBudgets(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND is_active
		ORDER BY month DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.Amount, &b.Month, &b.Category, &b.Period,
			&b.StartDate, &b.EndDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, apperr.ErrInternal.Wrap(err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, budgetID int64) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	b, err := scanBudget(pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound.WithMessage("budget not found")
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return b, nil
}

// UpdateBudgetAmount replaces the stored amount when one is provided. A nil
// amount keeps the existing value, so 0 is a settable amount, absence is the
// only "no change" signal.
func UpdateBudgetAmount(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64, amount *float64) (*models.Budget, error) {
	existing, err := GetBudgetByID(ctx, pool, budgetID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperr.ErrForbidden.WithMessage("not authorized")
	}

	if amount == nil {
		return existing, nil
	}
	if *amount < 0 {
		return nil, apperr.Validation("amount must not be negative")
	}

	query := `
		UPDATE budgets
		SET amount = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + budgetColumns + `
	`
	updated, err := scanBudget(pool.QueryRow(ctx, query, *amount, budgetID))
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return updated, nil
}

// SoftDeleteBudget flips the budget to inactive. The row stays behind for
// history and no longer blocks a new active budget for the same month.
func SoftDeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) error {
	existing, err := GetBudgetByID(ctx, pool, budgetID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperr.ErrForbidden.WithMessage("not authorized")
	}

	query := `UPDATE budgets SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	if _, err := pool.Exec(ctx, query, budgetID); err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	return nil
}
