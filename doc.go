// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollbox API server.

Pollbox is a poll service: registered users create polls with two or more
fixed options, anyone casts single- or multiple-choice votes, and results
are tallied live from the vote set.

# Starting the Server

The server reads environment variables (a .env file is honored) or CLI flags:

	JWT_SECRET=... go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..." --jwt-secret dev

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): bearer token signing secret
  - DATABASE_URL (-d): connection string for non-memory store drivers

Optional settings:

  - PORT (-p): server port (default: 3000)
  - STORE_DRIVER (-t): memory, postgres, sqlite or mongo (default: memory)
  - TOKEN_TTL_HOURS (--token-ttl): token lifetime (default: 168)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - poll: the voting core (vote engine, tally engine, lifecycle rules)
  - store: persistence contract plus memory, sqlstore and mongostore
    implementations
  - handlers: HTTP request handlers (authn, polls, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - auth: password hashing, bearer token mint/verify
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
