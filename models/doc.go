// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, username, password, avatar_url (alias: image_url)
  - LoginRequest: email_or_username, password
  - CreatePollRequest: title, description, image_url, allow_multiple,
    options, creator
  - RenamePollRequest: title
  - CastVoteRequest: option_id, by

# Response Types

Types for JSON responses:

  - AuthResponse: token, user
  - MeResponse: user
  - PollResponse: poll fields, options and live counts (votes are never
    exposed, only the derived tally)
  - CastVoteResponse: outcome, counts
  - ResultsResponse: id, counts
  - DeletePollResponse: ok
  - ErrorResponse: error, message

Domain types live in the poll package; this package only shapes them for the
wire via NewPollResponse and NewPublicUser.
*/
package models
