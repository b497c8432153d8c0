package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a class session reachable through its join code.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	JoinCount    int64     `json:"join_count"`
	LastJoinedAt time.Time `json:"last_joined_at"`
}

// IsExpired returns true if the session has expired at the given time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
