package storage

import "errors"

// Common storage errors
var (
	// ErrDocumentNotFound indicates that the document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrClientNotFound indicates that the API client was not found
	ErrClientNotFound = errors.New("client not found")

	// ErrClientAlreadyExists indicates that a client with this ID is
	// already registered
	ErrClientAlreadyExists = errors.New("client already exists")
)
