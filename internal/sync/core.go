package sync

import (
	"log/slog"
	stdsync "sync"
	"time"
)

// core carries the lifecycle state machine shared by every adapter
// variant: the status value, the event dispatcher, the busy-flag guard
// that serializes overlapping passes, and the auto-sync scheduler. The
// variants embed it and drive the transitions.
type core struct {
	mu        stdsync.Mutex
	logger    *slog.Logger
	events    *dispatcher
	status    Status
	connected bool
	busy      bool
	sched     *scheduler
}

func newCore(logger *slog.Logger) *core {
	return &core{
		logger: logger,
		events: newDispatcher(logger),
		status: Status{State: StateIdle},
	}
}

// SyncStatus returns an independent snapshot of the adapter status.
func (c *core) SyncStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status.Clone()
}

// AddEventListener registers a listener for one event type.
func (c *core) AddEventListener(eventType EventType, fn Listener) ListenerID {
	return c.events.add(eventType, fn)
}

// RemoveEventListener removes a previously registered listener.
func (c *core) RemoveEventListener(eventType EventType, id ListenerID) {
	c.events.remove(eventType, id)
}

// setStatus replaces the status wholesale and returns a snapshot for
// dispatching outside the lock.
func (c *core) setStatus(status Status) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status

	return c.status.Clone()
}

// beginConnect moves the adapter to connecting. A reconnect replaces the
// prior session: the scheduler is disarmed and the connected flag drops
// until the handshake succeeds.
func (c *core) beginConnect() {
	c.mu.Lock()
	c.connected = false
	sched := c.sched
	c.sched = nil
	c.status = Status{State: StateConnecting}
	c.mu.Unlock()

	if sched != nil {
		sched.stop()
	}
}

// completeConnect marks the handshake successful.
func (c *core) completeConnect() {
	c.mu.Lock()
	c.connected = true
	c.status = Status{State: StateConnected}
	snap := c.status.Clone()
	c.mu.Unlock()

	c.logger.Info("adapter connected")
	c.events.dispatch(Event{Type: EventConnected, Status: snap})
}

// failConnect captures a connection error into the status and dispatches
// connection-error. The adapter stays reusable: a later Connect may
// succeed.
func (c *core) failConnect(message string, cause error) {
	se := newSyncError(message, cause)

	c.mu.Lock()
	c.connected = false
	c.status = Status{State: StateError, Err: se}
	snap := c.status.Clone()
	c.mu.Unlock()

	c.logger.Warn("adapter connection failed", "error", se.Error())
	c.events.dispatch(Event{Type: EventConnectionError, Status: snap, Err: snap.Err})
}

// beginSync claims the busy flag and moves the adapter to syncing. It
// returns ErrNotConnected or ErrSyncInProgress without touching the
// status; the caller decides whether a busy adapter is an error (manual
// call) or a skip (scheduled tick).
func (c *core) beginSync() error {
	c.mu.Lock()

	if !c.connected {
		c.mu.Unlock()
		return ErrNotConnected
	}

	if c.busy {
		c.mu.Unlock()
		return ErrSyncInProgress
	}

	c.busy = true
	c.status = Status{State: StateSyncing}
	snap := c.status.Clone()
	c.mu.Unlock()

	c.events.dispatch(Event{Type: EventSyncStarted, Status: snap})

	return nil
}

// reportCounters maps the cumulative read/write counters of a pass to an
// estimated progress percentage.
func (c *core) reportCounters(documentsRead, documentsWritten int64) {
	p := estimateProgress(documentsRead, documentsWritten)
	snap := c.setStatus(Status{State: StateSyncing, Progress: &p})

	c.events.dispatch(Event{
		Type:             EventSyncProgress,
		Status:           snap,
		DocumentsRead:    documentsRead,
		DocumentsWritten: documentsWritten,
	})
}

// reportCheckpoint sets a fixed progress percentage for passes whose
// document counts are not known in advance.
func (c *core) reportCheckpoint(progress int) {
	snap := c.setStatus(Status{State: StateSyncing, Progress: &progress})
	c.events.dispatch(Event{Type: EventSyncProgress, Status: snap})
}

// pauseSync marks a replication pass as waiting.
func (c *core) pauseSync() {
	snap := c.setStatus(Status{State: StatePaused})
	c.events.dispatch(Event{Type: EventSyncPaused, Status: snap})
}

// resumeSync marks a paused replication pass as transferring again.
func (c *core) resumeSync() {
	snap := c.setStatus(Status{State: StateSyncing})
	c.events.dispatch(Event{Type: EventSyncActive, Status: snap})
}

// completeSync releases the busy flag and marks the pass completed with
// progress 100. The explicit completion signal is the only place progress
// reaches 100.
func (c *core) completeSync() {
	p := 100

	c.mu.Lock()
	c.busy = false
	c.status = Status{State: StateCompleted, Progress: &p}
	snap := c.status.Clone()
	c.mu.Unlock()

	c.logger.Info("sync pass completed")
	c.events.dispatch(Event{Type: EventSyncCompleted, Status: snap})
}

// failSync releases the busy flag, captures the error into the status and
// dispatches sync-error. An armed scheduler keeps ticking.
func (c *core) failSync(message string, cause error) {
	se := newSyncError(message, cause)

	c.mu.Lock()
	c.busy = false
	c.status = Status{State: StateError, Err: se}
	snap := c.status.Clone()
	c.mu.Unlock()

	c.logger.Warn("sync pass failed", "error", se.Error())
	c.events.dispatch(Event{Type: EventSyncError, Status: snap, Err: snap.Err})
}

// armScheduler starts the auto-sync ticker after a successful pass. A
// non-positive interval or an already armed scheduler is a no-op.
func (c *core) armScheduler(interval time.Duration, pass func()) {
	if interval <= 0 {
		return
	}

	c.mu.Lock()
	if c.sched != nil {
		c.mu.Unlock()
		return
	}

	s := newScheduler(interval, c.logger)
	c.sched = s
	c.mu.Unlock()

	s.start(pass)
}

// stop disarms the scheduler, drops the connected flag and resets the
// status to idle. sync-stopped is dispatched only when the adapter was not
// already idle, so repeated calls stay silent.
func (c *core) stop() {
	c.mu.Lock()
	wasIdle := c.status.State == StateIdle
	sched := c.sched
	c.sched = nil
	c.connected = false
	c.busy = false
	c.status = Status{State: StateIdle}
	snap := c.status.Clone()
	c.mu.Unlock()

	if sched != nil {
		sched.stop()
	}

	if !wasIdle {
		c.logger.Info("sync stopped")
		c.events.dispatch(Event{Type: EventSyncStopped, Status: snap})
	}
}
