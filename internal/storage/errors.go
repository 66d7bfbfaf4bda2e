package storage

import "errors"

// Common local storage errors
var (
	// ErrDocumentNotFound indicates that the document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
