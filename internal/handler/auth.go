package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/platepos/api/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

// terminal is the subject all dashboard tokens are issued to. There is one
// register per deployment.
const terminal = "dashboard"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	jwtSecret string
	pinHash   string
}

// NewAuthHandler creates a new AuthHandler. pinHash is a bcrypt hash of the
// dashboard PIN (see cmd/seed to generate one).
func NewAuthHandler(jwtSecret, pinHash string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, pinHash: pinHash}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
}

// --- Request / Response types ---

type loginRequest struct {
	Pin string `json:"pin"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// --- Handlers ---

// Login handles PIN authentication for the dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Pin == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pin is required"})
		return
	}
	if h.pinHash == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "login is not configured"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.pinHash), []byte(req.Pin)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	h.issueTokens(w)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh_token is required"})
		return
	}

	if _, err := auth.ValidateRefreshToken(h.jwtSecret, req.RefreshToken); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid refresh token"})
		return
	}

	h.issueTokens(w)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter) {
	access, err := auth.GenerateToken(h.jwtSecret, terminal)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	refresh, err := auth.GenerateRefreshToken(h.jwtSecret, terminal)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh})
}
