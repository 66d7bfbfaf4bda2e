// Package sync implements the adapter core shared by every backend
// variant: the lifecycle state machine, the event dispatcher, the
// progress estimator, the merge pass and the auto-sync scheduler.
package sync

import "fmt"

// State is the adapter lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateConnected  State = "connected"
	StateSyncing    State = "syncing"
	StatePaused     State = "paused"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

// SyncError is the structured error captured in the adapter status when a
// connection or sync pass fails.
type SyncError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *SyncError) Error() string {
	if e.Details == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// newSyncError builds a SyncError from a short message and a wrapped cause.
func newSyncError(message string, cause error) *SyncError {
	se := &SyncError{Message: message}
	if cause != nil {
		se.Details = cause.Error()
	}

	return se
}

// Status is a point-in-time snapshot of an adapter's sync condition.
// Progress is set only while the state is syncing or completed; Err is set
// only in the error state. Adapters hand out copies, never the value they
// mutate internally.
type Status struct {
	State    State      `json:"state"`
	Progress *int       `json:"progress,omitempty"`
	Err      *SyncError `json:"error,omitempty"`
}

// Clone returns an independent copy of the status.
func (s Status) Clone() Status {
	out := Status{State: s.State}

	if s.Progress != nil {
		p := *s.Progress
		out.Progress = &p
	}

	if s.Err != nil {
		e := *s.Err
		out.Err = &e
	}

	return out
}
