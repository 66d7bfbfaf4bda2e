package sync

import (
	"context"
	"errors"

	"github.com/iudanet/docsync/internal/storage"
)

// Precondition errors: returned synchronously to the caller, never
// captured into the adapter status.
var (
	// ErrNotConnected is returned by StartSync when no successful Connect
	// preceded it.
	ErrNotConnected = errors.New("adapter is not connected")

	// ErrSyncInProgress is returned by StartSync when a pass is already
	// running on this adapter.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// Adapter is the uniform sync contract every backend variant implements.
// Callers can swap backends without changing behavior.
type Adapter interface {
	// StartSync runs one synchronization pass against the local store,
	// blocking until the pass reaches a terminal status, then arms the
	// auto-sync scheduler if the connected config requests it. Returns
	// ErrNotConnected before a successful Connect and ErrSyncInProgress
	// while another pass runs.
	StartSync(ctx context.Context, store storage.LocalStore) error

	// StopSync cancels the scheduler and any in-flight pass and resets
	// the adapter to idle. Always safe to call.
	StopSync()

	// SyncStatus returns an independent status snapshot.
	SyncStatus() Status

	// AddEventListener registers a listener for one event type. Multiple
	// listeners per type are permitted and fire in registration order.
	AddEventListener(eventType EventType, fn Listener) ListenerID

	// RemoveEventListener removes a previously registered listener.
	RemoveEventListener(eventType EventType, id ListenerID)
}
