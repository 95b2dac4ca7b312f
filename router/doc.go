// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method routing.

Routes (all JSON, under /api):

	GET    /api/health                 liveness check
	POST   /api/auth/register          create an account, returns token
	POST   /api/auth/login             exchange credentials for a token
	GET    /api/auth/me                current user (bearer required)
	GET    /api/polls                  all polls with counts, newest first
	POST   /api/polls                  create a poll
	GET    /api/polls/{id}             one poll with live counts
	PATCH  /api/polls/{id}             rename (creator only, before any vote)
	DELETE /api/polls/{id}             delete (creator only)
	POST   /api/polls/{id}/votes       cast / replace / toggle a vote
	GET    /api/polls/{id}/results     per-option counts only
*/
package router
