// Package http provides the stub backend's HTTP handlers and router. Every
// response is a TaleTrail envelope.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/taletrail/internal/middleware"
	"github.com/atinyakov/taletrail/internal/models"
	"github.com/atinyakov/taletrail/internal/repository"
	"github.com/atinyakov/taletrail/internal/service"
)

// AuthService defines the account operations required by the HTTP
// handlers.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (models.AuthPayload, error)
	Profile(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (models.User, error)
	PublicProfile(ctx context.Context, username string) (models.PublicProfile, error)
}

// AuthHandler handles signup, login and profile requests.
type AuthHandler struct {
	// AuthService performs the underlying account operations.
	AuthService AuthService
}

// Signup registers an account and responds with tokens and the user.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decode(w, r, &req) {
		return
	}

	payload, err := h.AuthService.Signup(r.Context(), req)
	if errors.Is(err, repository.ErrConflict) {
		fail(w, http.StatusConflict, "Email or username already taken", "Conflict", "")
		return
	}
	if err != nil {
		writeError(w, err, "User")
		return
	}
	ok(w, http.StatusCreated, "User registered successfully", payload)
}

// Login checks credentials and responds with tokens and the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	payload, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		fail(w, http.StatusUnauthorized, "Invalid email or password", "Unauthorized", "")
		return
	}
	if err != nil {
		writeError(w, err, "User")
		return
	}
	ok(w, http.StatusOK, "Login successful", payload)
}

// MyProfile returns the authenticated user.
func (h *AuthHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.Profile(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, "User")
		return
	}
	ok(w, http.StatusOK, "Profile retrieved successfully", u)
}

// UpdateProfile replaces the authenticated user's editable fields.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}

	u, err := h.AuthService.UpdateProfile(r.Context(), middleware.GetUserIDFromContext(r.Context()), req)
	if errors.Is(err, repository.ErrConflict) {
		fail(w, http.StatusConflict, "Username already taken", "Conflict", "")
		return
	}
	if err != nil {
		writeError(w, err, "User")
		return
	}
	ok(w, http.StatusOK, "Profile updated successfully", u)
}

// PublicProfile looks a user up by username.
func (h *AuthHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.AuthService.PublicProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err, "User")
		return
	}
	ok(w, http.StatusOK, "Profile retrieved successfully", p)
}
