// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

// Store keeps polls and users in process memory. All methods are safe for
// concurrent use; the store mutex makes every UpdatePoll a serialized
// read-mutate-write, which is the atomicity the store contract requires.
type Store struct {
	mu    sync.RWMutex
	polls map[string]poll.Poll
	users map[string]store.User
}

// New returns an empty store.
func New() *Store {
	return &Store{
		polls: make(map[string]poll.Poll),
		users: make(map[string]store.User),
	}
}

func (s *Store) CreatePoll(ctx context.Context, p poll.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.polls[p.ID]; exists {
		return store.ErrConflict
	}
	s.polls[p.ID] = p.Clone()
	return nil
}

func (s *Store) GetPoll(ctx context.Context, id string) (poll.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.polls[id]
	if !ok {
		return poll.Poll{}, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Store) ListPolls(ctx context.Context) ([]poll.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	polls := make([]poll.Poll, 0, len(s.polls))
	for _, p := range s.polls {
		polls = append(polls, p.Clone())
	}
	sort.Slice(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return polls[i].ID < polls[j].ID
	})
	return polls, nil
}

func (s *Store) UpdatePoll(ctx context.Context, id string, mutate func(*poll.Poll) error) (poll.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.polls[id]
	if !ok {
		return poll.Poll{}, store.ErrNotFound
	}
	updated := stored.Clone()
	if err := mutate(&updated); err != nil {
		return poll.Poll{}, err
	}
	s.polls[id] = updated.Clone()
	return updated, nil
}

func (s *Store) DeletePoll(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.polls, id)
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return store.ErrConflict
		}
	}
	if _, exists := s.users[u.ID]; exists {
		return store.ErrConflict
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, login) {
			return u, nil
		}
	}
	for _, u := range s.users {
		if u.Username == login {
			return u, nil
		}
	}
	return store.User{}, store.ErrNotFound
}
