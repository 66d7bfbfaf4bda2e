package storage

import (
	"context"

	"github.com/iudanet/docsync/internal/models"
)

//go:generate moq -out store_mock.go . LocalStore

// LocalStore defines the local document store every adapter synchronizes
// against. Implementations must keep tombstones (soft-deleted documents)
// so merge passes can propagate deletions.
type LocalStore interface {
	// ListAll returns every document, including tombstones.
	ListAll(ctx context.Context) ([]*models.Document, error)

	// Get retrieves a document by ID.
	// Returns ErrDocumentNotFound if the document doesn't exist.
	Get(ctx context.Context, id string) (*models.Document, error)

	// Put stores or overwrites a document.
	Put(ctx context.Context, doc *models.Document) error
}
