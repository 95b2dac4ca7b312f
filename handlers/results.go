// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

type ResultsHandler struct {
	polls store.PollStore
	cfg   cliparse.Config
}

func NewResultsHandler(polls store.PollStore, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{polls: polls, cfg: cfg}
}

// GetResults handles GET /api/polls/{id}/results
// Counts are recomputed from the vote set on every call.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		ID:     p.ID,
		Counts: poll.Tally(p),
	})
}
