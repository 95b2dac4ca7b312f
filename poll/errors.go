// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "errors"

var (
	// ErrInvalidInput marks malformed or missing fields on create/rename.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOption is returned when a vote names an option that does
	// not belong to the poll. No mutation occurs.
	ErrInvalidOption = errors.New("option does not belong to poll")

	// ErrNoCreator is returned for rename/delete on a poll that was
	// created without a creator. Such polls are permanently locked.
	ErrNoCreator = errors.New("poll has no creator assigned")

	// ErrNotCreator is returned when the requester is not the creator.
	ErrNotCreator = errors.New("requester is not the poll creator")

	// ErrVotingStarted is returned for rename once any vote exists,
	// anonymous votes included. The title lock is permanent.
	ErrVotingStarted = errors.New("voting has already started")
)
