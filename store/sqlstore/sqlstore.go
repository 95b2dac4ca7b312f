// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

// Store persists polls and users through database/sql. It works against
// PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite); the caller opens the
// *sql.DB with whichever driver the deployment uses.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) CreateSchema() error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    avatar_url TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Polls. version guards the read-mutate-write cycle in UpdatePoll.
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    allow_multiple BOOLEAN NOT NULL,
    creator_id TEXT NOT NULL DEFAULT '',
    creator_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    version INTEGER NOT NULL DEFAULT 0
);

-- Options, fixed at poll creation
CREATE TABLE IF NOT EXISTS poll_options (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_options_poll_id ON poll_options(poll_id);

-- Votes. voter_id '' marks an anonymous vote.
CREATE TABLE IF NOT EXISTS votes (
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    voter_id TEXT NOT NULL DEFAULT '',
    voter_name TEXT NOT NULL DEFAULT '',
    cast_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id);
`

// isUniqueViolation recognizes duplicate-key failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Store) CreatePoll(ctx context.Context, p poll.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, description, image_url, allow_multiple, creator_id, creator_name, created_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
	`, p.ID, p.Title, p.Description, p.ImageURL, p.AllowMultiple, p.Creator.ID, p.Creator.Username, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, o := range p.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_options (id, poll_id, position, text)
			VALUES ($1, $2, $3, $4)
		`, o.ID, p.ID, i, o.Text)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := insertVotes(ctx, tx, p.ID, p.Votes); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetPoll(ctx context.Context, id string) (poll.Poll, error) {
	p, _, err := s.getPoll(ctx, s.db, id)
	return p, err
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) getPoll(ctx context.Context, q querier, id string) (poll.Poll, int, error) {
	var p poll.Poll
	var version int
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description, image_url, allow_multiple, creator_id, creator_name, created_at, version
		FROM polls
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.AllowMultiple,
		&p.Creator.ID, &p.Creator.Username, &p.CreatedAt, &version,
	)
	if err == sql.ErrNoRows {
		return poll.Poll{}, 0, store.ErrNotFound
	}
	if err != nil {
		return poll.Poll{}, 0, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, text FROM poll_options
		WHERE poll_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return poll.Poll{}, 0, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()
	p.Options = []poll.Option{}
	for rows.Next() {
		var o poll.Option
		if err := rows.Scan(&o.ID, &o.Text); err != nil {
			return poll.Poll{}, 0, fmt.Errorf("failed to scan option: %w", err)
		}
		p.Options = append(p.Options, o)
	}
	if err := rows.Err(); err != nil {
		return poll.Poll{}, 0, err
	}

	voteRows, err := q.QueryContext(ctx, `
		SELECT option_id, voter_id, voter_name, cast_at FROM votes
		WHERE poll_id = $1
		ORDER BY cast_at
	`, id)
	if err != nil {
		return poll.Poll{}, 0, fmt.Errorf("failed to query votes: %w", err)
	}
	defer voteRows.Close()
	p.Votes = []poll.Vote{}
	for voteRows.Next() {
		var v poll.Vote
		if err := voteRows.Scan(&v.OptionID, &v.By.ID, &v.By.Username, &v.At); err != nil {
			return poll.Poll{}, 0, fmt.Errorf("failed to scan vote: %w", err)
		}
		p.Votes = append(p.Votes, v)
	}
	if err := voteRows.Err(); err != nil {
		return poll.Poll{}, 0, err
	}

	return p, version, nil
}

func (s *Store) ListPolls(ctx context.Context) ([]poll.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM polls
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan poll id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	polls := make([]poll.Poll, 0, len(ids))
	for _, id := range ids {
		p, _, err := s.getPoll(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

// maxUpdateRetries bounds the optimistic-concurrency retry loop. Contention
// on a single poll is short-lived, so a handful of attempts is plenty.
const maxUpdateRetries = 5

func (s *Store) UpdatePoll(ctx context.Context, id string, mutate func(*poll.Poll) error) (poll.Poll, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		updated, err := s.tryUpdatePoll(ctx, id, mutate)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return updated, err
	}
	return poll.Poll{}, store.ErrConflict
}

// tryUpdatePoll performs one read-mutate-conditional-write cycle. The
// version check on the poll row detects a concurrent writer; the caller
// retries in that case. Vote rows are rewritten in the same transaction so
// a failed write never leaves a partial vote set.
func (s *Store) tryUpdatePoll(ctx context.Context, id string, mutate func(*poll.Poll) error) (poll.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return poll.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, version, err := s.getPoll(ctx, tx, id)
	if err != nil {
		return poll.Poll{}, err
	}

	if err := mutate(&p); err != nil {
		return poll.Poll{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE polls SET title = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`, p.Title, id, version)
	if err != nil {
		return poll.Poll{}, fmt.Errorf("failed to update poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return poll.Poll{}, err
	}
	if affected == 0 {
		// Lost the revision race; caller retries against fresh state.
		return poll.Poll{}, store.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return poll.Poll{}, fmt.Errorf("failed to clear votes: %w", err)
	}
	if err := insertVotes(ctx, tx, id, p.Votes); err != nil {
		return poll.Poll{}, err
	}

	if err := tx.Commit(); err != nil {
		return poll.Poll{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertVotes(ctx context.Context, tx execer, pollID string, votes []poll.Vote) error {
	for _, v := range votes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO votes (poll_id, option_id, voter_id, voter_name, cast_at)
			VALUES ($1, $2, $3, $4, $5)
		`, pollID, v.OptionID, v.By.ID, v.By.Username, v.At)
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}
	return nil
}

func (s *Store) DeletePoll(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Child rows removed explicitly; not every SQLite connection has
	// foreign_keys enabled.
	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete options: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return tx.Commit()
}

func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Email, u.Username, u.PasswordHash, u.AvatarURL, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (store.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (store.User, error) {
	u, err := s.getUser(ctx, `WHERE email = $1`, strings.ToLower(login))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, err
	}
	return s.getUser(ctx, `WHERE username = $1`, login)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (store.User, error) {
	var u store.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, username, password_hash, avatar_url, created_at
		FROM users `+where, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}
