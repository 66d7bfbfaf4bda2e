package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/iudanet/docsync/internal/remote"
	"github.com/iudanet/docsync/internal/storage"
)

// reconciler is the shared runner for adapters without a native
// replication engine. It drives explicit merge passes against a
// remote.Backend and owns the per-session backend handle.
type reconciler struct {
	*core

	sessionMu stdsync.Mutex
	backend   remote.Backend
	interval  time.Duration
}

func newReconciler(c *core) *reconciler {
	return &reconciler{core: c}
}

// handshake pings the backend and, on success, installs it as the current
// session. Used by Connect after config validation; a reconnect replaces
// the prior backend wholesale.
func (r *reconciler) handshake(ctx context.Context, backend remote.Backend, interval time.Duration) bool {
	if err := backend.Ping(ctx); err != nil {
		r.failConnect("handshake failed", err)
		return false
	}

	r.sessionMu.Lock()
	r.backend = backend
	r.interval = interval
	r.sessionMu.Unlock()

	r.completeConnect()

	return true
}

// StartSync runs one reconciliation pass, blocking until it reaches a
// terminal status, then arms the auto-sync scheduler if the connected
// config requested one.
func (r *reconciler) StartSync(ctx context.Context, store storage.LocalStore) error {
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

// StopSync disarms the scheduler, discards the session backend and resets
// the adapter to idle. A merge pass already inside its fetch/apply loop
// runs to completion; its final status update is informational.
func (r *reconciler) StopSync() {
	r.sessionMu.Lock()
	r.backend = nil
	r.interval = 0
	r.sessionMu.Unlock()

	r.stop()
}

func (r *reconciler) runPass(ctx context.Context, store storage.LocalStore) error {
	r.sessionMu.Lock()
	backend := r.backend
	r.sessionMu.Unlock()

	if backend == nil {
		r.failSync("no remote session", ErrNotConnected)
		return ErrNotConnected
	}

	res, err := reconcile(ctx, backend, store, r.reportCheckpoint)
	if err != nil {
		r.failSync("reconciliation failed", err)
		return err
	}

	r.logger.Info("reconciliation pass finished",
		"pulled", res.Pulled,
		"pushed", res.Pushed,
		"unchanged", res.Unchanged)

	r.completeSync()

	return nil
}

// scheduledPass is the ticker callback. A busy adapter or one stopped
// between ticks is skipped, not an error.
func (r *reconciler) scheduledPass(store storage.LocalStore) {
	if err := r.beginSync(); err != nil {
		r.logger.Debug("skipping scheduled sync pass", "reason", err)
		return
	}

	_ = r.runPass(context.Background(), store)
}
