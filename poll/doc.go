// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the voting and aggregation core: the data model, the
vote engine, the tally engine and the lifecycle rules for poll mutation.

Everything in this package is pure computation over in-memory values. The
package never touches storage, never logs and never formats user-facing text;
persistence and HTTP translation live in the store and handlers packages.

# Vote Engine

ApplyVote computes a new vote set from a poll snapshot, an option id and a
voter. The branch taken depends on the voter and the poll's multiple-choice
flag:

  - anonymous voters always append; their votes are never matched again
  - single-choice polls hold at most one vote per identified voter, so a
    second vote redirects the existing record (outcome "replaced")
  - multiple-choice polls hold at most one vote per (voter, option) pair,
    and repeating the same vote removes it (outcome "removed")

Two consecutive identical calls on a multiple-choice poll return to the
original state.

# Tally Engine

Tally recomputes per-option counts from the vote set on every call. Counts
are never stored, which rules out drift between votes and counts. Votes
referencing an option that no longer exists are skipped.

# Lifecycle

New validates and constructs polls (non-empty title, at least two options).
Rename enforces the title lock: only the creator may rename, and only while
the poll has zero votes. AuthorizeDelete restricts deletion to the creator.
Polls created without a creator can never be renamed or deleted.

# Errors

All rule violations surface as sentinel errors (ErrInvalidInput,
ErrInvalidOption, ErrNoCreator, ErrNotCreator, ErrVotingStarted) suitable
for errors.Is classification at the service boundary.
*/
package poll
