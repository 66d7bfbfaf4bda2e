package sync

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherOrderAndRemoval(t *testing.T) {
	d := newDispatcher(testLogger())

	var order []string

	d.add(EventSyncStarted, func(Event) { order = append(order, "first") })
	secondID := d.add(EventSyncStarted, func(Event) { order = append(order, "second") })
	d.add(EventSyncStarted, func(Event) { order = append(order, "third") })

	d.dispatch(Event{Type: EventSyncStarted})
	assert.Equal(t, []string{"first", "second", "third"}, order)

	order = nil
	d.remove(EventSyncStarted, secondID)

	d.dispatch(Event{Type: EventSyncStarted})
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	d := newDispatcher(testLogger())

	called := false
	d.add(EventSyncCompleted, func(Event) { called = true })

	d.dispatch(Event{Type: EventSyncError})
	assert.False(t, called)
}

func TestDispatcherRecoversPanickingListener(t *testing.T) {
	d := newDispatcher(testLogger())

	var calls []string

	d.add(EventSyncStarted, func(Event) {
		calls = append(calls, "throwing")
		panic("listener blew up")
	})
	d.add(EventSyncStarted, func(Event) { calls = append(calls, "well-behaved") })

	assert.NotPanics(t, func() {
		d.dispatch(Event{Type: EventSyncStarted})
	})
	assert.Equal(t, []string{"throwing", "well-behaved"}, calls)
}

func TestDispatcherRemoveUnknownID(t *testing.T) {
	d := newDispatcher(testLogger())

	called := false
	d.add(EventConnected, func(Event) { called = true })

	d.remove(EventConnected, ListenerID(999))
	d.remove(EventSyncError, ListenerID(1))

	d.dispatch(Event{Type: EventConnected})
	assert.True(t, called)
}

func TestStatusCloneIsIndependent(t *testing.T) {
	p := 42
	s := Status{State: StateSyncing, Progress: &p, Err: &SyncError{Message: "m"}}

	c := s.Clone()
	*c.Progress = 7
	c.Err.Message = "changed"

	assert.Equal(t, 42, *s.Progress)
	assert.Equal(t, "m", s.Err.Message)
}
