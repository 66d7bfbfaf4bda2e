// Package replication defines the contract of the external bidirectional
// replication engine consumed by the couch and hosted adapters. The engine
// itself performs the document transfer and conflict bookkeeping; this
// package only shapes its lifecycle and event stream.
package replication

import (
	"context"

	"github.com/iudanet/docsync/internal/storage"
)

//go:generate moq -out replication_mock.go . Engine Session Handle

// Target describes the remote replication endpoint for one session.
type Target struct {
	URL      string // endpoint base URL
	Database string // remote database or module path
	Username string // basic-auth user, empty for token auth
	Password string
	Token    string // bearer token, empty for basic auth
}

// Options configures one replication pass.
type Options struct {
	// Filter restricts replication to documents matching the given
	// backend-specific filter expression. Empty means everything.
	Filter string
}

// EventKind identifies an event emitted by a replication handle.
type EventKind string

const (
	EventChange   EventKind = "change"   // progress counters updated
	EventPaused   EventKind = "paused"   // replication is waiting (caught up or backing off)
	EventActive   EventKind = "active"   // replication resumed transferring
	EventComplete EventKind = "complete" // pass finished successfully
	EventDenied   EventKind = "denied"   // remote rejected a document write
	EventError    EventKind = "error"    // pass failed
)

// Event is one lifecycle notification from a replication handle.
// DocumentsRead and DocumentsWritten carry the cumulative counters of the
// pass and are meaningful for change events; Err is set for denied and
// error events.
type Event struct {
	Kind             EventKind
	DocumentsRead    int64
	DocumentsWritten int64
	Err              error
}

// Session is an ephemeral remote handle opened for one connected session.
// It must be closed when the adapter disconnects or stops.
type Session interface {
	Close() error
}

// Handle represents one in-flight replication pass.
type Handle interface {
	// Events returns the handle's event stream. The engine closes the
	// channel after a terminal event (complete, error).
	Events() <-chan Event

	// Cancel requests cancellation of the in-flight pass. Safe to call
	// more than once.
	Cancel()
}

// Engine is the external replication engine.
type Engine interface {
	// Open validates the target and returns an ephemeral session handle.
	Open(ctx context.Context, target Target) (Session, error)

	// Replicate starts one bidirectional pass between the local store and
	// the opened session.
	Replicate(ctx context.Context, store storage.LocalStore, session Session, opts Options) (Handle, error)
}
