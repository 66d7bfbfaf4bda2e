// Package remote defines the contract every document-level remote backend
// implements. Transport detail (verbs, headers, auth scheme) lives in the
// backend-specific subpackages.
package remote

import (
	"context"

	"github.com/iudanet/docsync/internal/models"
)

//go:generate moq -out remote_mock.go . Backend

// Backend is a remote document store reachable over some transport.
// Adapters that lack a native replication engine reconcile against this
// interface document by document.
type Backend interface {
	// Ping performs the connection handshake: it verifies that the
	// endpoint is reachable and the credentials are accepted.
	Ping(ctx context.Context) error

	// List returns the listing projection of every remote document,
	// including tombstones where the backend preserves them.
	List(ctx context.Context) ([]models.DocumentInfo, error)

	// Get retrieves a full document by ID.
	Get(ctx context.Context, id string) (*models.Document, error)

	// Put stores or overwrites a document.
	Put(ctx context.Context, doc *models.Document) error
}
