// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"slices"
	"time"
)

// Voter identifies who cast a vote or issued a request. The zero value is
// the anonymous voter.
type Voter struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Anonymous reports whether the voter carries no identity.
func (v Voter) Anonymous() bool {
	return v.ID == ""
}

// Option is one selectable choice on a poll, fixed at creation.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Vote links a voter (possibly anonymous) to a chosen option. At is the
// timestamp of the last mutation of this record, not necessarily its creation.
type Vote struct {
	OptionID string    `json:"option_id"`
	At       time.Time `json:"at"`
	By       Voter     `json:"by,omitzero"`
}

// Poll is a titled question with at least two fixed options and an
// accumulating set of votes. Votes must only be mutated through ApplyVote,
// and Title only through Rename.
type Poll struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	AllowMultiple bool      `json:"allow_multiple"`
	Creator       Voter     `json:"creator,omitzero"`
	CreatedAt     time.Time `json:"created_at"`
	Options       []Option  `json:"options"`
	Votes         []Vote    `json:"-"`
}

// HasOption reports whether id names an option of this poll.
func (p Poll) HasOption(id string) bool {
	for _, o := range p.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// alias the stored vote set.
func (p Poll) Clone() Poll {
	p.Options = slices.Clone(p.Options)
	p.Votes = slices.Clone(p.Votes)
	return p
}
