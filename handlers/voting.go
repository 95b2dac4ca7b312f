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

type VotingHandler struct {
	polls store.PollStore
	cfg   cliparse.Config
}

func NewVotingHandler(polls store.PollStore, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{polls: polls, cfg: cfg}
}

// CastVote handles POST /api/polls/{id}/votes
//
// The voter identity comes from the request body when supplied (explicit "by"
// takes precedence) or from the bearer token. A missing or invalid token
// degrades to an anonymous vote rather than failing the request.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	voter := requesterFromToken(r, h.cfg)
	if req.By != nil && req.By.ID != "" {
		voter = poll.Voter{ID: req.By.ID, Username: req.By.Username}
	}

	var outcome poll.Outcome
	updated, err := h.polls.UpdatePoll(r.Context(), id, func(p *poll.Poll) error {
		votes, o, err := poll.ApplyVote(*p, req.OptionID, voter, time.Now())
		if err != nil {
			return err
		}
		p.Votes = votes
		outcome = o
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("vote cast",
		"poll_id", id,
		"option_id", req.OptionID,
		"outcome", string(outcome),
		"anonymous", voter.Anonymous(),
	)

	status := http.StatusOK
	if outcome == poll.OutcomeAdded {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.CastVoteResponse{
		Outcome: string(outcome),
		Counts:  poll.Tally(updated),
	})
}
