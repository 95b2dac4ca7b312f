// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/handlers"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, cfg)
	pollHandler := handlers.NewPollHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", middleware.WithLogging(authHandler.Me))

	// Poll management
	mux.HandleFunc("GET /api/polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PATCH /api/polls/{id}", middleware.WithLogging(pollHandler.RenamePoll))
	mux.HandleFunc("DELETE /api/polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Voting and results
	mux.HandleFunc("POST /api/polls/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /api/polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbox API v1"))
	})

	return mux
}
