package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/iudanet/docsync/internal/replication"
	"github.com/iudanet/docsync/internal/storage"
)

// replica is the shared runner for adapters backed by the external
// bidirectional replication engine. It owns the ephemeral session handle
// opened at Connect and the cancellable handle of the in-flight pass.
type replica struct {
	*core

	engine replication.Engine

	sessionMu stdsync.Mutex
	session   replication.Session
	handle    replication.Handle
	target    replication.Target
	interval  time.Duration

	// stopping is set by StopSync before the handle is cancelled, so the
	// pass can tell a user-initiated stop from the engine giving up
	// mid-pass regardless of how the teardown interleaves.
	stopping bool
}

func newReplica(engine replication.Engine, c *core) *replica {
	return &replica{core: c, engine: engine}
}

// open establishes the replication session for one connected session,
// closing whatever the previous Connect left behind.
func (r *replica) open(ctx context.Context, target replication.Target, interval time.Duration) bool {
	r.closeSession()

	session, err := r.engine.Open(ctx, target)
	if err != nil {
		r.failConnect("opening replication session failed", err)
		return false
	}

	r.sessionMu.Lock()
	r.session = session
	r.target = target
	r.interval = interval
	r.stopping = false
	r.sessionMu.Unlock()

	r.completeConnect()

	return true
}

// StartSync runs one replication pass, consuming the handle's event
// stream until a terminal event, then arms the auto-sync scheduler if the
// connected config requested one.
func (r *replica) StartSync(ctx context.Context, store storage.LocalStore) error {
	if err := r.beginSync(); err != nil {
		return err
	}

	if err := r.runPass(ctx, store); err != nil {
		return err
	}

	r.sessionMu.Lock()
	interval := r.interval
	r.sessionMu.Unlock()

	r.armScheduler(interval, func() {
		r.scheduledPass(store)
	})

	return nil
}

// StopSync cancels the in-flight replication handle, closes the session
// and resets the adapter to idle.
func (r *replica) StopSync() {
	r.sessionMu.Lock()
	handle := r.handle
	r.handle = nil
	r.stopping = true
	r.sessionMu.Unlock()

	if handle != nil {
		handle.Cancel()
	}

	r.closeSession()
	r.stop()
}

func (r *replica) closeSession() {
	r.sessionMu.Lock()
	session := r.session
	r.session = nil
	r.sessionMu.Unlock()

	if session == nil {
		return
	}

	if err := session.Close(); err != nil {
		r.logger.Warn("closing replication session failed", "error", err)
	}
}

func (r *replica) runPass(ctx context.Context, store storage.LocalStore) error {
	r.sessionMu.Lock()
	session := r.session
	r.sessionMu.Unlock()

	if session == nil {
		r.failSync("no replication session", ErrNotConnected)
		return ErrNotConnected
	}

	handle, err := r.engine.Replicate(ctx, store, session, replication.Options{})
	if err != nil {
		r.failSync("starting replication failed", err)
		return err
	}

	r.sessionMu.Lock()
	r.handle = handle
	r.sessionMu.Unlock()

	defer func() {
		r.sessionMu.Lock()
		if r.handle == handle {
			r.handle = nil
		}
		r.sessionMu.Unlock()
	}()

	for ev := range handle.Events() {
		switch ev.Kind {
		case replication.EventChange:
			r.reportCounters(ev.DocumentsRead, ev.DocumentsWritten)
		case replication.EventPaused:
			r.pauseSync()
		case replication.EventActive:
			r.resumeSync()
		case replication.EventComplete:
			r.completeSync()
			return nil
		case replication.EventDenied, replication.EventError:
			cause := ev.Err
			if cause == nil {
				cause = fmt.Errorf("replication reported %s", ev.Kind)
			}

			r.failSync("replication failed", cause)

			return cause
		}
	}

	// The stream closed without a terminal event. If StopSync requested
	// the cancellation there is nothing to report; anything else is the
	// engine giving up mid-pass.
	r.sessionMu.Lock()
	stopped := r.stopping
	r.sessionMu.Unlock()

	if stopped {
		return nil
	}

	err = fmt.Errorf("replication ended without completing")
	r.failSync("replication interrupted", err)

	return err
}

func (r *replica) scheduledPass(store storage.LocalStore) {
	if err := r.beginSync(); err != nil {
		r.logger.Debug("skipping scheduled sync pass", "reason", err)
		return
	}

	_ = r.runPass(context.Background(), store)
}
