package entity

import (
	"errors"
	"time"
)

var (
	// ErrMissingAPIKey means no provider credential was supplied. Detected
	// before any network activity.
	ErrMissingAPIKey = errors.New("api key is not set")

	// ErrProvider covers every failure of the generation provider: transport,
	// auth, quota, malformed or empty responses.
	ErrProvider = errors.New("generation provider error")

	ErrNoIntegrableNotes = errors.New("no notes available to integrate")
)

// IntegrationResult is the outcome of merging a collection's notes through
// the generation provider. It is never persisted.
type IntegrationResult struct {
	IntegratedContent string
	NoteCount         int
	CreatedAt         time.Time
}
