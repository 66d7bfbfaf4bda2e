// Package boltdb provides a BoltDB-backed implementation of the local
// document store.
package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/storage"
)

var (
	// documentsBucket stores synchronized documents keyed by ID
	documentsBucket = []byte("documents")
)

// Store is the BoltDB local document store.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) the BoltDB database at dbPath and prepares the
// documents bucket.
func New(ctx context.Context, dbPath string) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	store := &Store{db: db}

	if err := store.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(documentsBucket); err != nil {
			return fmt.Errorf("failed to create documents bucket: %w", err)
		}
		return nil
	})
}

// Put stores or overwrites a document keyed by its ID.
func (s *Store) Put(ctx context.Context, doc *models.Document) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(documentsBucket)
		if bucket == nil {
			return storage.ErrStorageClosed
		}

		if err := bucket.Put([]byte(doc.ID), data); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc *models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(documentsBucket)
		if bucket == nil {
			return storage.ErrDocumentNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrDocumentNotFound
		}

		doc = &models.Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListAll returns every stored document, including tombstones. Merge
// passes need the tombstones to propagate deletions.
func (s *Store) ListAll(ctx context.Context) ([]*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var docs []*models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(documentsBucket)
		if bucket == nil {
			// No bucket yet - empty store
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var doc models.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			docs = append(docs, &doc)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// Delete marks a document as deleted (soft delete) and bumps its revision
// marker so the tombstone wins the next merge pass.
func (s *Store) Delete(ctx context.Context, id, rev string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(documentsBucket)
		if bucket == nil {
			return storage.ErrDocumentNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrDocumentNotFound
		}

		var doc models.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}

		doc.Deleted = true
		doc.Rev = rev

		updated, err := json.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("failed to marshal tombstone: %w", err)
		}

		if err := bucket.Put([]byte(id), updated); err != nil {
			return fmt.Errorf("failed to save tombstone: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}
