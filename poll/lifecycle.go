// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateSpec carries the inputs for New. Creator is optional; the zero Voter
// produces an anonymous poll that can never be renamed or deleted.
type CreateSpec struct {
	Title         string
	Description   string
	ImageURL      string
	AllowMultiple bool
	Options       []string
	Creator       Voter
}

// New validates spec and builds a poll with a fresh id, fresh option ids and
// an empty vote set. Duplicate option texts are allowed and kept as separate
// options. Returns ErrInvalidInput when the title is empty, fewer than two
// options are given, or an option text is blank.
func New(spec CreateSpec, now time.Time) (Poll, error) {
	if strings.TrimSpace(spec.Title) == "" || len(spec.Options) < 2 {
		return Poll{}, ErrInvalidInput
	}

	options := make([]Option, 0, len(spec.Options))
	for _, text := range spec.Options {
		if strings.TrimSpace(text) == "" {
			return Poll{}, ErrInvalidInput
		}
		options = append(options, Option{
			ID:   uuid.NewString(),
			Text: text,
		})
	}

	return Poll{
		ID:            uuid.NewString(),
		Title:         spec.Title,
		Description:   spec.Description,
		ImageURL:      spec.ImageURL,
		AllowMultiple: spec.AllowMultiple,
		Creator:       spec.Creator,
		CreatedAt:     now,
		Options:       options,
		Votes:         []Vote{},
	}, nil
}

// Rename replaces the poll title. Checks run in a fixed order and the first
// failing one determines the error: creator assigned, requester is creator,
// no votes cast yet, new title non-empty. On success only the title changes.
func (p *Poll) Rename(newTitle string, requester Voter) error {
	if p.Creator.Anonymous() {
		return ErrNoCreator
	}
	if requester.ID != p.Creator.ID {
		return ErrNotCreator
	}
	if len(p.Votes) > 0 {
		return ErrVotingStarted
	}
	if strings.TrimSpace(newTitle) == "" {
		return ErrInvalidInput
	}
	p.Title = newTitle
	return nil
}

// AuthorizeDelete reports whether requester may delete the poll. Deletion is
// allowed in any vote state, but only for the creator.
func (p Poll) AuthorizeDelete(requester Voter) error {
	if p.Creator.Anonymous() {
		return ErrNoCreator
	}
	if requester.ID != p.Creator.ID {
		return ErrNotCreator
	}
	return nil
}
