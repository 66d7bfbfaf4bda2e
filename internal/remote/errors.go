package remote

import "errors"

// Common remote backend errors
var (
	// ErrNotFound indicates that the remote document does not exist
	ErrNotFound = errors.New("remote document not found")
)
