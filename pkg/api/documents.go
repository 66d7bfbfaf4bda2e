// Package api holds the wire types of the document HTTP protocol spoken by
// the token-based drive backends and the reference server.
package api

import (
	"encoding/json"
	"time"
)

// Document represents one document on the wire
type Document struct {
	CreatedAt time.Time       `json:"created_at"`     // creation time (informational)
	UpdatedAt time.Time       `json:"updated_at"`     // last modification time (informational)
	ID        string          `json:"id"`             // unique document identifier
	Rev       string          `json:"rev"`            // opaque revision marker
	Data      json.RawMessage `json:"data,omitempty"` // document payload
	Deleted   bool            `json:"deleted"`        // tombstone flag
}

// DocumentInfo is the listing projection of a document
type DocumentInfo struct {
	ID      string `json:"id"`
	Rev     string `json:"rev"`
	Deleted bool   `json:"deleted"`
}

// ListDocumentsResponse is returned by the document listing endpoint
type ListDocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

// PutDocumentResponse acknowledges a stored document
type PutDocumentResponse struct {
	ID  string `json:"id"`
	Rev string `json:"rev"`
}
