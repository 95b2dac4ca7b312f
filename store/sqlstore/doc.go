// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlstore implements the store contract on database/sql.

It targets PostgreSQL (github.com/lib/pq) and SQLite (modernc.org/sqlite).
Polls are stored relationally (polls, poll_options, votes) but updated as a
document: UpdatePoll reads the whole aggregate in a transaction, applies the
mutation, bumps a version column with a conditional UPDATE and rewrites the
vote rows. A concurrent writer makes the conditional UPDATE touch zero rows,
which triggers a bounded retry against fresh state. Vote sets are small, so
the rewrite stays cheap.
*/
package sqlstore
