package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/secondbank/mobile-api/internal/api/middleware"
	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/models"
)

// AuthHandler exposes the login endpoint backed by the mock authenticator.
type AuthHandler struct {
	auth     bank.Authenticator
	tokenTTL time.Duration
}

func NewAuthHandler(auth bank.Authenticator, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		RespondError(w, r, http.StatusBadRequest, "auth/missing-credentials", "username and password are required")
		return
	}

	user, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			RespondError(w, r, http.StatusUnauthorized, "auth/invalid-credentials", err.Error())
			return
		}
		// Simulated network failure from the mock service.
		RespondError(w, r, http.StatusBadGateway, "auth/upstream-failure", err.Error())
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"sub":     user.ID,
		"iss":     middleware.JWTIssuer(),
		"aud":     middleware.JWTAudience(),
		"iat":     now.Unix(),
		"exp":     now.Add(h.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(middleware.JWTSecret())
	if err != nil {
		RespondError(w, r, http.StatusInternalServerError, "auth/token-signing", "Failed to sign token")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"token": tokenString,
		"user":  user,
	})
}
