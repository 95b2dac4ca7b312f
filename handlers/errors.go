// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

// writeDomainError translates core and store errors into status codes and
// client-facing messages. Anything unclassified is a 500; the core never
// formats user-facing text itself.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poll.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, poll.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid option")
	case errors.Is(err, poll.ErrNoCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, "poll has no creator assigned")
	case errors.Is(err, poll.ErrNotCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, "only the creator may do this")
	case errors.Is(err, poll.ErrVotingStarted):
		middleware.ErrorResponse(w, http.StatusConflict, "title is locked once voting has started")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "poll not found")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "conflicting update, retry")
	default:
		slog.Error("unexpected store error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
