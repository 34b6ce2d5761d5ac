package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionIDLayout formats session identifiers as YYYYMMDD_HHMMSS
	SessionIDLayout = "20060102_150405"

	MinRating = 1
	MaxRating = 5
)

// Session holds one client's support conversation.
// Transcript is append-only until Reset.
type Session struct {
	ID         string    `json:"session_id"`
	Transcript []Message `json:"transcript"`
	Rating     *int      `json:"satisfaction_rating"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSession creates an empty session whose ID is derived from now
func NewSession(now time.Time) *Session {
	return &Session{
		ID:         now.Format(SessionIDLayout),
		Transcript: []Message{},
		CreatedAt:  now,
	}
}

// Append adds a message to the end of the transcript. Content is not validated.
func (s *Session) Append(role MessageRole, content string) Message {
	msg := NewMessage(role, content)
	s.Transcript = append(s.Transcript, msg)
	return msg
}

// SetRating records the satisfaction rating. The first value wins until Reset.
func (s *Session) SetRating(value int) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}
	if s.Rating != nil {
		return ErrRatingAlreadySet
	}
	s.Rating = &value
	return nil
}

// Reset discards all state and returns a brand new session
func (s *Session) Reset(now time.Time) *Session {
	return NewSession(now)
}

// MessageCount returns the transcript length
func (s *Session) MessageCount() int {
	return len(s.Transcript)
}

// ShouldPromptRating reports whether the rating prompt is shown:
// at least threshold messages and no rating yet.
func (s *Session) ShouldPromptRating(threshold int) bool {
	return len(s.Transcript) >= threshold && s.Rating == nil
}

// Clone returns a deep copy safe to hand out of the registry lock
func (s *Session) Clone() *Session {
	c := &Session{
		ID:         s.ID,
		Transcript: make([]Message, len(s.Transcript)),
		CreatedAt:  s.CreatedAt,
	}
	copy(c.Transcript, s.Transcript)
	if s.Rating != nil {
		r := *s.Rating
		c.Rating = &r
	}
	return c
}

// SessionRepository defines the interface for per-client session storage.
// Update serializes mutations per handle; fn returns the session to store.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) (uuid.UUID, error)
	Get(ctx context.Context, handle uuid.UUID) (*Session, error)
	Update(ctx context.Context, handle uuid.UUID, fn func(*Session) (*Session, error)) (*Session, error)
	Delete(ctx context.Context, handle uuid.UUID) error
	Count(ctx context.Context) int
}
