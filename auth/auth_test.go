// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("u1", "alice@example.com", "alice", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "u1" {
		t.Errorf("expected subject u1, got %q", claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", claims.Email)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %q", claims.Username)
	}
}

func TestParseTokenRejections(t *testing.T) {
	good, err := NewToken("u1", "alice@example.com", "alice", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	expired, err := NewToken("u1", "alice@example.com", "alice", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	noSubject, err := NewToken("", "alice@example.com", "alice", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", good, "other-secret"},
		{"garbage", "not-a-token", "test-secret"},
		{"empty", "", "test-secret"},
		{"expired", expired, "test-secret"},
		{"missing subject", noSubject, "test-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.raw, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"no header", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"bare token", "abc.def.ghi", ""},
		{"trailing space", "Bearer abc ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
