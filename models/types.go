package models

import (
	"time"

	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	// avatar_url with image_url kept as a legacy alias
	AvatarURL string `json:"avatar_url"`
	ImageURL  string `json:"image_url"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

type CreatePollRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	AllowMultiple bool      `json:"allow_multiple"`
	Options       []string  `json:"options"`
	Creator       *VoterRef `json:"creator,omitempty"`
}

type RenamePollRequest struct {
	Title string `json:"title"`
}

type CastVoteRequest struct {
	OptionID string    `json:"option_id"`
	By       *VoterRef `json:"by,omitempty"`
}

// VoterRef carries an explicit identity supplied in a request body, used by
// non-authenticated voting flows.
type VoterRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Response types

type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type MeResponse struct {
	User PublicUser `json:"user"`
}

type PollResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	ImageURL      string         `json:"image_url"`
	AllowMultiple bool           `json:"allow_multiple"`
	CreatedAt     time.Time      `json:"created_at"`
	Creator       *VoterRef      `json:"creator"`
	Options       []poll.Option  `json:"options"`
	Counts        map[string]int `json:"counts"`
}

type CastVoteResponse struct {
	Outcome string         `json:"outcome"`
	Counts  map[string]int `json:"counts"`
}

type ResultsResponse struct {
	ID     string         `json:"id"`
	Counts map[string]int `json:"counts"`
}

type DeletePollResponse struct {
	OK bool `json:"ok"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Builders

// NewPublicUser strips credentials from a stored user.
func NewPublicUser(u store.User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

// NewPollResponse renders a poll with live counts. Votes themselves are
// never exposed, only the derived tally.
func NewPollResponse(p poll.Poll) PollResponse {
	resp := PollResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		AllowMultiple: p.AllowMultiple,
		CreatedAt:     p.CreatedAt,
		Options:       p.Options,
		Counts:        poll.Tally(p),
	}
	if !p.Creator.Anonymous() {
		resp.Creator = &VoterRef{ID: p.Creator.ID, Username: p.Creator.Username}
	}
	return resp
}
