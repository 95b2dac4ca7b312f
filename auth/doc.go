// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and bearer-token handling.

Passwords are hashed with bcrypt. Tokens are HS256-signed JWTs carrying the
user id as subject plus email and username, so protected handlers can derive
a voter identity without a store round trip. The signing secret and token TTL
come from the startup configuration; nothing in this package reads ambient
process state.

Token validation failures are deliberately collapsed into a single
ErrInvalidToken: on protected routes it maps to 401, on vote casting it
degrades the request to an anonymous vote.
*/
package auth
