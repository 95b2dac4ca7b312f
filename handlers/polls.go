// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

type PollHandler struct {
	polls store.PollStore
	cfg   cliparse.Config
}

func NewPollHandler(polls store.PollStore, cfg cliparse.Config) *PollHandler {
	return &PollHandler{polls: polls, cfg: cfg}
}

// ListPolls handles GET /api/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListPolls(r.Context())
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	list := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		list = append(list, models.NewPollResponse(p))
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Creator resolution: explicit body creator wins, then the bearer
	// token, then none (anonymous poll).
	creator := requesterFromToken(r, h.cfg)
	if req.Creator != nil && req.Creator.ID != "" {
		creator = poll.Voter{ID: req.Creator.ID, Username: req.Creator.Username}
	}

	p, err := poll.New(poll.CreateSpec{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		AllowMultiple: req.AllowMultiple,
		Options:       req.Options,
		Creator:       creator,
	}, time.Now())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and at least 2 options are required")
		return
	}

	if err := h.polls.CreatePoll(r.Context(), p); err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", p.ID, "creator", creator.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.NewPollResponse(p))
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	p, err := h.polls.GetPoll(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewPollResponse(p))
}

// RenamePoll handles PATCH /api/polls/{id}
// Requires authentication; only the creator may rename, and only while the
// poll has no votes.
func (h *PollHandler) RenamePoll(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	requester := requesterFromToken(r, h.cfg)
	if requester.Anonymous() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req models.RenamePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.polls.UpdatePoll(r.Context(), id, func(p *poll.Poll) error {
		return p.Rename(req.Title, requester)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("poll renamed", "poll_id", id, "user_id", requester.ID)

	middleware.JSONResponse(w, http.StatusOK, models.NewPollResponse(updated))
}

// DeletePoll handles DELETE /api/polls/{id}
// Requires authentication; only the creator may delete.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	requester := requesterFromToken(r, h.cfg)
	if requester.Anonymous() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	p, err := h.polls.GetPoll(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := p.AuthorizeDelete(requester); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.polls.DeletePoll(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", id, "user_id", requester.ID)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{OK: true})
}
