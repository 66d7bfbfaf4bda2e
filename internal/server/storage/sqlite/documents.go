package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/server/storage"
)

// SaveDocument creates or overwrites a document inside a folder. The
// server does not compare revision markers: ordering is the client-side
// merge policy, the server is just the store of record.
func (s *Storage) SaveDocument(ctx context.Context, folderID string, doc *models.Document) error {
	query := `
		INSERT INTO documents (folder_id, id, rev, data, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (folder_id, id) DO UPDATE SET
			rev = excluded.rev,
			data = excluded.data,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at
	`

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	updatedAt := doc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		folderID,
		doc.ID,
		doc.Rev,
		[]byte(doc.Data),
		boolToInt(doc.Deleted),
		createdAt.Unix(),
		updatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// GetDocument retrieves a document by folder and ID, tombstones included.
// Returns ErrDocumentNotFound if the document doesn't exist.
func (s *Storage) GetDocument(ctx context.Context, folderID, id string) (*models.Document, error) {
	query := `
		SELECT id, rev, data, deleted, created_at, updated_at
		FROM documents
		WHERE folder_id = ? AND id = ?
	`

	doc := &models.Document{}

	var deleted int
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, folderID, id).Scan(
		&doc.ID,
		&doc.Rev,
		&doc.Data,
		&deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Deleted = intToBool(deleted)
	doc.CreatedAt = unixToTime(createdAt)
	doc.UpdatedAt = unixToTime(updatedAt)

	return doc, nil
}

// ListDocuments returns the listing projection of every document in a
// folder, including tombstones.
func (s *Storage) ListDocuments(ctx context.Context, folderID string) ([]models.DocumentInfo, error) {
	query := `
		SELECT id, rev, deleted
		FROM documents
		WHERE folder_id = ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	infos := make([]models.DocumentInfo, 0)

	for rows.Next() {
		var info models.DocumentInfo
		var deleted int

		if err := rows.Scan(&info.ID, &info.Rev, &deleted); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		info.Deleted = intToBool(deleted)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return infos, nil
}

// CountDocuments returns the number of documents in a folder.
func (s *Storage) CountDocuments(ctx context.Context, folderID string) (int, error) {
	query := `SELECT COUNT(*) FROM documents WHERE folder_id = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, folderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0)
}
