// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mongostore implements the store contract on MongoDB. Each poll is
// one document with embedded options and votes; UpdatePoll replaces the
// document conditionally on a version field and retries on conflict, which
// gives the per-poll read-then-write atomicity the contract requires.
package mongostore
