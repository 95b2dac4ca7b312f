// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/pollbox/pollbox/poll"
)

var (
	// ErrNotFound is returned when no poll or user matches the given id.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint is violated or
	// a conditional write loses a revision race.
	ErrConflict = errors.New("conflict")
)

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the store/auth boundary.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time
}

// Voter derives the identity the poll core consumes.
func (u User) Voter() poll.Voter {
	return poll.Voter{ID: u.ID, Username: u.Username}
}

// PollStore owns poll documents. Implementations must guarantee that
// UpdatePoll performs its read-mutate-write as a single atomic unit per poll:
// two concurrent updates of the same poll must serialize, and a failed write
// must leave the stored poll unchanged. Operations on distinct polls are
// independent.
type PollStore interface {
	// CreatePoll stores a new poll. The id must be unused.
	CreatePoll(ctx context.Context, p poll.Poll) error

	// GetPoll returns the poll with the given id, or ErrNotFound.
	GetPoll(ctx context.Context, id string) (poll.Poll, error)

	// ListPolls returns all polls ordered newest-created-first.
	ListPolls(ctx context.Context) ([]poll.Poll, error)

	// UpdatePoll loads the poll, applies mutate to it and persists the
	// result atomically. If mutate returns an error the poll is left
	// unchanged and the error is returned verbatim. Returns the updated
	// poll on success.
	UpdatePoll(ctx context.Context, id string, mutate func(*poll.Poll) error) (poll.Poll, error)

	// DeletePoll permanently removes the poll and all its votes.
	DeletePoll(ctx context.Context, id string) error
}

// UserStore owns user accounts. Email and username are unique; CreateUser
// returns ErrConflict when either is already taken.
type UserStore interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id string) (User, error)

	// GetUserByLogin resolves login against the email first (lowercased),
	// then the username.
	GetUserByLogin(ctx context.Context, login string) (User, error)
}

// Store bundles the two collections every deployment carries.
type Store interface {
	PollStore
	UserStore
}
