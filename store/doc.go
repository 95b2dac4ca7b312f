// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the persistence contract for polls and users.

The poll core defines the data model and invariants; this package defines how
documents are durably held and which atomicity guarantees implementations owe
the handlers. Three implementations ship in subpackages:

  - memory: in-process maps, used by tests and for local development
  - sqlstore: database/sql against PostgreSQL (lib/pq) or SQLite
    (modernc.org/sqlite), optimistic version-checked updates
  - mongostore: MongoDB documents with embedded votes, version-conditional
    replace

# Atomicity

UpdatePoll is the single write path for vote casting and title renames. Every
implementation performs the read-mutate-write cycle as one atomic unit per
poll, so two concurrent toggles can never both observe "not present" and both
append. A write that fails leaves the stored document untouched.

# Errors

ErrNotFound and ErrConflict are the only error kinds handlers classify;
anything else is treated as an internal storage failure.
*/
package store
