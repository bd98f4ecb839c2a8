package db

import (
	"budget-tracker-server/src/apperr"
	"budget-tracker-server/src/models"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, name, email, password_hash, refresh_token, created_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RefreshToken, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, name, email string, passwordHash []byte) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `
	`
	user, err := scanUser(pool.QueryRow(ctx, query, name, email, passwordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrConflict.WithMessage("email already in use")
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound.WithMessage("user not found")
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return user, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound.WithMessage("user not found")
		}
		return nil, apperr.ErrInternal.Wrap(err)
	}
	return user, nil
}

func UpdateRefreshToken(ctx context.Context, pool *pgxpool.Pool, userID int64, token string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`
	if _, err := pool.Exec(ctx, query, token, userID); err != nil {
		return apperr.ErrInternal.Wrap(err)
	}
	return nil
}
