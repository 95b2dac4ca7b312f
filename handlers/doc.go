// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers for the API.

Handler groups:

  - AuthHandler: register, login, me (identity provider surface)
  - PollHandler: list, create, get, rename, delete
  - VotingHandler: cast vote (add / replace / toggle per poll mode)
  - ResultsHandler: derived per-option counts

Handlers are thin: they parse and validate the request shape, resolve the
requester identity from the bearer token or the request body, call into the
poll core through the store's atomic UpdatePoll, and translate sentinel
errors to status codes via writeDomainError. No vote or lifecycle rule is
implemented here.

Identity rules worth knowing:

  - rename and delete require a valid bearer token (401 otherwise)
  - vote casting never fails on a bad token; it degrades to anonymous
  - an explicit "by" identity in the vote body wins over the token
  - an explicit "creator" in the create body wins over the token
*/
package handlers
