// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"slices"
	"time"
)

// Outcome tags what ApplyVote did to the vote set.
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeReplaced Outcome = "replaced"
	OutcomeRemoved  Outcome = "removed"
)

// ApplyVote computes the vote set that results from voter choosing optionID
// on p. It is a pure function: p is not modified, and the returned slice is
// independent of p.Votes. The caller is responsible for persisting the result
// atomically.
//
// Semantics by branch:
//   - anonymous voter: always appends a new record, never deduplicated.
//   - single-choice poll, identified voter: an existing vote by the same
//     voter (on any option) is redirected to optionID; otherwise a new
//     record is appended.
//   - multiple-choice poll, identified voter: an existing vote by the same
//     voter on the same option is removed (toggle-off); otherwise a new
//     record is appended.
//
// A single-choice replace does not check that the prior option still exists;
// it is being overwritten either way.
func ApplyVote(p Poll, optionID string, voter Voter, now time.Time) ([]Vote, Outcome, error) {
	if !p.HasOption(optionID) {
		return nil, "", ErrInvalidOption
	}

	votes := slices.Clone(p.Votes)

	if voter.Anonymous() {
		votes = append(votes, Vote{OptionID: optionID, At: now})
		return votes, OutcomeAdded, nil
	}

	if !p.AllowMultiple {
		for i := range votes {
			if votes[i].By.ID == voter.ID {
				votes[i].OptionID = optionID
				votes[i].At = now
				return votes, OutcomeReplaced, nil
			}
		}
		votes = append(votes, Vote{OptionID: optionID, At: now, By: voter})
		return votes, OutcomeAdded, nil
	}

	for i := range votes {
		if votes[i].By.ID == voter.ID && votes[i].OptionID == optionID {
			votes = slices.Delete(votes, i, i+1)
			return votes, OutcomeRemoved, nil
		}
	}
	votes = append(votes, Vote{OptionID: optionID, At: now, By: voter})
	return votes, OutcomeAdded, nil
}

// Tally derives per-option counts from the poll's vote set. Every option
// starts at zero; votes referencing an unknown option are skipped rather
// than failing. Counts are always recomputed, never stored.
func Tally(p Poll) map[string]int {
	counts := make(map[string]int, len(p.Options))
	for _, o := range p.Options {
		counts[o.ID] = 0
	}
	for _, v := range p.Votes {
		if _, known := counts[v.OptionID]; known {
			counts[v.OptionID]++
		}
	}
	return counts
}
