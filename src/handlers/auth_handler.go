package handlers

import (
	"budget-tracker-server/src/config"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const refreshCookieName = "refreshToken"

func signToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func issueTokens(cfg config.AuthConfig, userID int64) (string, string, error) {
	access, err := signToken(cfg.AccessSecret, userID, cfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := signToken(cfg.RefreshSecret, userID, cfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func setRefreshCookie(w http.ResponseWriter, cfg config.AuthConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(cfg.RefreshTTL.Seconds()),
	})
}

func Register(pool *pgxpool.Pool, cfg config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if !util.ValidateName(req.Name) {
			respondMessage(w, http.StatusBadRequest, "name is required")
			return
		}
		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			respondMessage(w, http.StatusBadRequest, "invalid email format")
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Email: %s", req.Email)
			respondMessage(w, http.StatusBadRequest, "password must be at least 8 characters with uppercase, lowercase, digit, and special character")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Name, req.Email, hashedPassword)
		if err != nil {
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			respondError(w, err)
			return
		}

		access, refresh, err := issueTokens(cfg, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to generate tokens for user %d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := db.UpdateRefreshToken(r.Context(), pool, user.ID, refresh); err != nil {
			log.Printf("ERROR: Failed to store refresh token for user %d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Email, user.ID)

		setRefreshCookie(w, cfg, refresh)
		respondJSON(w, http.StatusCreated, models.AuthResponse{
			UserID:      user.ID,
			AccessToken: access,
			User:        models.UserInfo{Name: user.Name, Email: user.Email},
		})
	}
}

func Login(pool *pgxpool.Pool, cfg config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			respondMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Email: %s: %v", req.Email, err)
			respondMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for %s from IP %s", req.Email, r.RemoteAddr)
			respondMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		access, refresh, err := issueTokens(cfg, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to generate tokens for user %d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := db.UpdateRefreshToken(r.Context(), pool, user.ID, refresh); err != nil {
			log.Printf("ERROR: Failed to store refresh token for user %d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Email, user.ID)

		setRefreshCookie(w, cfg, refresh)
		respondJSON(w, http.StatusOK, models.AuthResponse{
			UserID:      user.ID,
			AccessToken: access,
			User:        models.UserInfo{Name: user.Name, Email: user.Email},
		})
	}
}

// RefreshToken exchanges a valid refresh cookie for a new access token. The
// cookie value must also match the token stored for the user, so a stolen
// token dies as soon as the user logs in again.
func RefreshToken(pool *pgxpool.Pool, cfg config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "refresh token required")
			return
		}

		token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return cfg.RefreshSecret, nil
		})
		if err != nil || !token.Valid {
			respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		rawUserID, ok := claims["userId"].(float64)
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		userID := int64(rawUserID)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil || user.RefreshToken != cookie.Value {
			log.Printf("ERROR: Refresh token mismatch for user %d", userID)
			respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}

		access, err := signToken(cfg.AccessSecret, user.ID, cfg.AccessTTL)
		if err != nil {
			log.Printf("ERROR: Failed to generate access token for user %d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"accessToken": access})
	}
}

// Verify returns the authenticated user's profile, password hash excluded.
func Verify(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "authorization required")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load user %d: %v", userID, err)
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
