// Package storage provides abstractions for the tournament's backend collaborators.
package storage

import (
	"context"

	"github.com/mmynk/catchboard/internal/models"
)

// Store defines the document store used by the tournament.
// It holds two top-level collections: participants (keyed by name) and
// fish (keyed by models.FishKey). Enumeration order is whatever the backend
// returns naturally and is not guaranteed to be stable.
type Store interface {
	// ListParticipants returns every participant document.
	ListParticipants(ctx context.Context) ([]models.Participant, error)

	// PutParticipant writes a participant document keyed by its name.
	// An existing document with the same name is overwritten.
	PutParticipant(ctx context.Context, p models.Participant) error

	// ListFish returns every fish submission document.
	ListFish(ctx context.Context) ([]models.FishSubmission, error)

	// PutFish writes a fish submission under key. An existing document with the
	// same key is overwritten (last write wins).
	PutFish(ctx context.Context, key string, f models.FishSubmission) error

	// Close releases any resources held by the store.
	Close() error
}

// ObjectStore stores uploaded files.
type ObjectStore interface {
	// Upload stores data under key with the given content type.
	Upload(ctx context.Context, key, contentType string, data []byte) error

	// DownloadURL resolves key to a durable URL that can be embedded in a page.
	DownloadURL(ctx context.Context, key string) (string, error)
}
