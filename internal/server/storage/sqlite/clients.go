package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/docsync/internal/server/storage"
)

// CreateClient registers a new API client.
// Returns ErrClientAlreadyExists when the ID is taken.
func (s *Storage) CreateClient(ctx context.Context, client *storage.Client) error {
	query := `
		INSERT INTO clients (id, secret_hash, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		client.ID,
		client.SecretHash,
		client.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrClientAlreadyExists
		}

		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetClient retrieves a client by ID.
// Returns ErrClientNotFound if the client doesn't exist.
func (s *Storage) GetClient(ctx context.Context, clientID string) (*storage.Client, error) {
	query := `
		SELECT id, secret_hash, created_at
		FROM clients
		WHERE id = ?
	`

	client := &storage.Client{}

	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
		&client.SecretHash,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrClientNotFound
		}

		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	client.CreatedAt = unixToTime(createdAt)

	return client, nil
}
