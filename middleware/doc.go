// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

  - WithLogging: structured request/completion logging via slog
  - CORS: permissive cross-origin handling with preflight support
  - JSONResponse / ErrorResponse: response encoding helpers
  - ParseJSONBody: request decoding helper

Bearer-token handling intentionally lives in the auth package, not here:
vote casting needs the "invalid token degrades to anonymous" rule, which a
blanket rejection middleware could not express.
*/
package middleware
