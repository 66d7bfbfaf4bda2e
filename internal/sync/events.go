package sync

import (
	"log/slog"
	stdsync "sync"
)

// EventType names one kind of adapter lifecycle event. The set is closed:
// adapters never dispatch event types outside this list.
type EventType string

const (
	EventConnected       EventType = "connected"
	EventConnectionError EventType = "connection-error"
	EventSyncStarted     EventType = "sync-started"
	EventSyncProgress    EventType = "sync-progress"
	EventSyncPaused      EventType = "sync-paused"
	EventSyncActive      EventType = "sync-active"
	EventSyncCompleted   EventType = "sync-completed"
	EventSyncError       EventType = "sync-error"
	EventSyncStopped     EventType = "sync-stopped"
)

// Event is one adapter notification. It is constructed per dispatch and
// never reused; Status is already a snapshot.
type Event struct {
	Type             EventType
	Status           Status
	Err              *SyncError
	DocumentsRead    int64
	DocumentsWritten int64
}

// Listener receives dispatched events. A panicking listener is recovered
// and logged; it never affects sibling listeners or the dispatching
// adapter.
type Listener func(Event)

// ListenerID identifies one registered listener for removal.
type ListenerID int64

type registration struct {
	id ListenerID
	fn Listener
}

// dispatcher is the per-adapter registry of event listeners. Dispatch is
// synchronous and ordered: listeners fire in registration order before
// dispatch returns.
type dispatcher struct {
	mu        stdsync.Mutex
	logger    *slog.Logger
	listeners map[EventType][]registration
	nextID    ListenerID
}

func newDispatcher(logger *slog.Logger) *dispatcher {
	return &dispatcher{
		logger:    logger,
		listeners: make(map[EventType][]registration),
	}
}

func (d *dispatcher) add(eventType EventType, fn Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners[eventType] = append(d.listeners[eventType], registration{id: id, fn: fn})

	return id
}

func (d *dispatcher) remove(eventType EventType, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.listeners[eventType]
	for i, reg := range regs {
		if reg.id == id {
			d.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

func (d *dispatcher) dispatch(ev Event) {
	d.mu.Lock()
	regs := make([]registration, len(d.listeners[ev.Type]))
	copy(regs, d.listeners[ev.Type])
	d.mu.Unlock()

	for _, reg := range regs {
		d.invoke(reg, ev)
	}
}

// invoke runs one listener, recovering a panic so the remaining listeners
// and the caller of dispatch are unaffected.
func (d *dispatcher) invoke(reg registration, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event listener panicked",
				"event", ev.Type,
				"listener_id", reg.id,
				"panic", r)
		}
	}()

	reg.fn(ev)
}
