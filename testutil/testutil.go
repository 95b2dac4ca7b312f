// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
	"github.com/pollbox/pollbox/store/memory"
)

// GetTestConfig returns a standard test configuration backed by the memory
// store driver.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        3000,
		StoreDriver: cliparse.DriverMemory,
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	}
}

// NewTestStore returns a fresh empty memory store.
func NewTestStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.New()
}

// CreateTestUser registers a user directly in the store and returns it with
// a valid bearer token.
func CreateTestUser(t *testing.T, st store.UserStore, cfg cliparse.Config, username string) (store.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user := store.User{
		ID:           uuid.NewString(),
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := st.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.NewToken(user.ID, user.Email, user.Username, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to mint test token: %v", err)
	}
	return user, token
}

// CreateTestPoll builds and stores a poll and returns it. creator may be the
// zero Voter for an anonymous poll.
func CreateTestPoll(t *testing.T, st store.PollStore, creator poll.Voter, allowMultiple bool, options ...string) poll.Poll {
	t.Helper()

	p, err := poll.New(poll.CreateSpec{
		Title:         "Test Poll",
		Description:   "A test poll",
		AllowMultiple: allowMultiple,
		Options:       options,
		Creator:       creator,
	}, time.Now())
	if err != nil {
		t.Fatalf("Failed to build test poll: %v", err)
	}
	if err := st.CreatePoll(context.Background(), p); err != nil {
		t.Fatalf("Failed to store test poll: %v", err)
	}
	return p
}

// CastTestVote applies a vote through the store's atomic update path.
func CastTestVote(t *testing.T, st store.PollStore, pollID, optionID string, voter poll.Voter) {
	t.Helper()

	_, err := st.UpdatePoll(context.Background(), pollID, func(p *poll.Poll) error {
		votes, _, err := poll.ApplyVote(*p, optionID, voter, time.Now())
		if err != nil {
			return err
		}
		p.Votes = votes
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
