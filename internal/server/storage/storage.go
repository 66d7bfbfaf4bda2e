// Package storage defines the persistence interfaces of the reference
// document server.
package storage

import (
	"context"
	"time"

	"github.com/iudanet/docsync/internal/models"
)

// Client is a registered API client allowed to exchange its credentials
// for an access token.
type Client struct {
	CreatedAt  time.Time // registration time
	ID         string    // public client identifier
	SecretHash string    // bcrypt hash of the client secret
}

// DocumentStorage persists documents grouped into folders. Folders are
// implicit: they exist as soon as the first document is written into them.
type DocumentStorage interface {
	// SaveDocument creates or overwrites a document inside a folder.
	SaveDocument(ctx context.Context, folderID string, doc *models.Document) error

	// GetDocument retrieves a document by folder and ID, tombstones
	// included. Returns ErrDocumentNotFound if it doesn't exist.
	GetDocument(ctx context.Context, folderID, id string) (*models.Document, error)

	// ListDocuments returns the listing projection of every document in
	// a folder, including tombstones. Returns an empty slice for an
	// unknown folder.
	ListDocuments(ctx context.Context, folderID string) ([]models.DocumentInfo, error)

	// CountDocuments returns the number of documents in a folder.
	CountDocuments(ctx context.Context, folderID string) (int, error)
}

// ClientStorage persists registered API clients.
type ClientStorage interface {
	// CreateClient registers a new client.
	// Returns ErrClientAlreadyExists when the ID is taken.
	CreateClient(ctx context.Context, client *Client) error

	// GetClient retrieves a client by ID.
	// Returns ErrClientNotFound if it doesn't exist.
	GetClient(ctx context.Context, clientID string) (*Client, error)
}
