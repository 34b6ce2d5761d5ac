package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrRatingAlreadySet      = errors.New("satisfaction rating already set")
	ErrInvalidRating         = errors.New("satisfaction rating must be between 1 and 5")
	ErrProviderNotConfigured = errors.New("model provider is not configured")
	ErrUnknownTopic          = errors.New("unknown quick topic")
)

// CompletionError wraps any failure of the single model call
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion via %s failed: %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
