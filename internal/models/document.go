package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Document is the unit of synchronization. Both the local store and every
// remote backend exchange documents in this shape.
type Document struct {
	CreatedAt time.Time       `json:"created_at"` // CreatedAt creation time (informational)
	UpdatedAt time.Time       `json:"updated_at"` // UpdatedAt last modification time (informational)
	ID        string          `json:"id"`         // ID unique document identifier (UUID)
	Rev       string          `json:"rev"`        // Rev opaque revision marker, compared lexicographically
	Data      json.RawMessage `json:"data"`       // Data document payload
	Deleted   bool            `json:"deleted"`    // Deleted tombstone flag (soft delete)
}

// DocumentInfo is the listing projection of a document: enough to decide
// merge direction without fetching the payload.
type DocumentInfo struct {
	ID      string `json:"id"`
	Rev     string `json:"rev"`
	Deleted bool   `json:"deleted"`
}

// Info returns the listing projection of the document.
func (d *Document) Info() DocumentInfo {
	return DocumentInfo{ID: d.ID, Rev: d.Rev, Deleted: d.Deleted}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	data := make(json.RawMessage, len(d.Data))
	copy(data, d.Data)

	return &Document{
		ID:        d.ID,
		Rev:       d.Rev,
		Data:      data,
		Deleted:   d.Deleted,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CompareRevs orders two revision markers. Markers are opaque strings and
// the ordering is plain lexicographic: an empty marker sorts before any
// non-empty one, and "10" sorts before "9". Returns -1, 0 or 1.
func CompareRevs(a, b string) int {
	return strings.Compare(a, b)
}

// RevNewerThan reports whether marker a is strictly newer than marker b
// under the lexicographic ordering used by the merge pass. A document with
// an empty marker never wins against one that has a marker.
func RevNewerThan(a, b string) bool {
	return CompareRevs(a, b) > 0
}
