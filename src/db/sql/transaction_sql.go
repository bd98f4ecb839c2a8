package db

import (
	"budget-tracker-server/src/apperr"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = "id, user_id, title, amount, type, category, description, date, created_at"

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, title, amount, type, category, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + transactionColumns + `
	`
	created, err := scanTransaction(pool.QueryRow(ctx, query,
		tx.UserID, tx.Title, tx.Amount, tx.Type, tx.Category, tx.Description, tx.Date))
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return created, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, txID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(pool.QueryRow(ctx, query, txID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound.WithMessage("transaction not found")
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return t, nil
}

// ListTransactions returns one page of the owner's transactions matching the
// filter, newest first, along with the total match count.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, filter models.TransactionFilter) (*models.TransactionPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	where, args := buildTransactionFilter(userID, filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + where
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, apperr.ErrInternal.Wrap(err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Total:        total,
		CurrentPage:  page,
		TotalPages:   models.PageCount(total, limit),
	}, nil
}

// likeEscaper neutralizes LIKE metacharacters so search text matches as a
// literal substring instead of a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildTransactionFilter turns the filter into a WHERE clause and its
// positional arguments. The owner scope is always the first condition; date
// and amount bounds are inclusive; title and description match
// case-insensitive substrings independently.
func buildTransactionFilter(userID int64, f models.TransactionFilter) (string, []interface{}) {
	clauses := []string{"user_id = $1"}
	args := []interface{}{userID}

	add := func(format string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Title != "" {
		add(`title ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(f.Title))
	}
	if f.Description != "" {
		add(`description ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(f.Description))
	}
	if f.StartDate != nil {
		add("date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		add("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", *f.MaxAmount)
	}

	return strings.Join(clauses, " AND "), args
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, txID int64, patch models.UpdateTransactionRequest) (*models.Transaction, error) {
	existing, err := GetTransactionByID(ctx, pool, txID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperr.ErrForbidden.WithMessage("not authorized")
	}

	sets := []string{}
	args := []interface{}{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Date != nil {
		date, ok := util.ParseDate(*patch.Date)
		if !ok {
			return nil, apperr.Validation("invalid date format")
		}
		set("date", date)
	}

	if len(sets) == 0 {
		return existing, nil
	}

	args = append(args, txID)
	query := fmt.Sprintf(`UPDATE transactions SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), transactionColumns)

	updated, err := scanTransaction(pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return updated, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, txID int64) error {
	existing, err := GetTransactionByID(ctx, pool, txID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperr.ErrForbidden.WithMessage("not authorized")
	}

	if _, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, txID); err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	return nil
}

func GetDistinctCategories(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]string, error) {
	query := `SELECT DISTINCT category FROM transactions WHERE user_id = $1 AND category <> ''`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, apperr.ErrInternal.Wrap(err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetExpensesBetween fetches every expense of the user with a date inside the
// inclusive [start, end] window. No pagination; the analysis engine needs all
// matches.
func GetExpensesBetween(ctx context.Context, pool *pgxpool.Pool, userID int64, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4
	`
	return queryTransactions(ctx, pool, query, userID, models.TypeExpense, start, end)
}

// GetTransactionsBetween fetches every transaction of the user, any type,
// with a date inside the inclusive [start, end] window.
func GetTransactionsBetween(ctx context.Context, pool *pgxpool.Pool, userID int64, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`
	return queryTransactions(ctx, pool, query, userID, start, end)
}

func queryTransactions(ctx context.Context, pool *pgxpool.Pool, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, apperr.ErrInternal.Wrap(err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
