// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

type AuthHandler struct {
	users store.UserStore
	cfg   cliparse.Config
}

func NewAuthHandler(users store.UserStore, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	avatarURL := strings.TrimSpace(req.AvatarURL)
	if avatarURL == "" {
		avatarURL = strings.TrimSpace(req.ImageURL)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := store.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		AvatarURL:    avatarURL,
		CreatedAt:    time.Now(),
	}

	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "email or username already taken")
			return
		}
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := auth.NewToken(user.ID, user.Email, user.Username, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to mint token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token: token,
		User:  models.NewPublicUser(user),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EmailOrUsername == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email_or_username and password are required")
		return
	}

	user, err := h.users.GetUserByLogin(r.Context(), strings.TrimSpace(req.EmailOrUsername))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.NewToken(user.ID, user.Email, user.Username, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to mint token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  models.NewPublicUser(user),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ParseToken(auth.BearerToken(r), h.cfg.JWTSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{User: models.NewPublicUser(user)})
}

// requesterFromToken derives the voter identity of an authenticated request.
// A missing or invalid token yields the anonymous voter rather than an error;
// handlers that require authentication must check Anonymous themselves.
func requesterFromToken(r *http.Request, cfg cliparse.Config) poll.Voter {
	claims, err := auth.ParseToken(auth.BearerToken(r), cfg.JWTSecret)
	if err != nil {
		return poll.Voter{}
	}
	return poll.Voter{ID: claims.Subject, Username: claims.Username}
}
