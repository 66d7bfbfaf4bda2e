package sync

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/remote"
)

// eventRecorder collects dispatched events for assertions.
type eventRecorder struct {
	mu     stdsync.Mutex
	events []Event
}

func (r *eventRecorder) listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, ev)
}

func (r *eventRecorder) count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}

	return n
}

func (r *eventRecorder) last(t EventType) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}

	return Event{}, false
}

var allEventTypes = []EventType{
	EventConnected, EventConnectionError,
	EventSyncStarted, EventSyncProgress, EventSyncPaused, EventSyncActive,
	EventSyncCompleted, EventSyncError, EventSyncStopped,
}

func recordAll(a Adapter, r *eventRecorder) {
	for _, t := range allEventTypes {
		a.AddEventListener(t, r.listen)
	}
}

func newTestWebDAVAdapter(backend remote.Backend) *WebDAVAdapter {
	a := NewWebDAVAdapter(testLogger())
	a.dial = func(WebDAVConfig) remote.Backend { return backend }

	return a
}

func validWebDAVConfig() WebDAVConfig {
	return WebDAVConfig{URL: "https://dav.example.com/docs", Username: "alice", Password: "secret"}
}

func TestWebDAVHappyPath(t *testing.T) {
	backend := fakeBackend(doc("a", "1", `{"v":1}`))
	a := newTestWebDAVAdapter(backend)

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	assert.Equal(t, StateConnected, a.SyncStatus().State)
	assert.Equal(t, 1, rec.count(EventConnected))

	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	status := a.SyncStatus()
	assert.Equal(t, StateCompleted, status.State)
	require.NotNil(t, status.Progress)
	assert.Equal(t, 100, *status.Progress)

	assert.Equal(t, 1, rec.count(EventSyncStarted))
	assert.Equal(t, 1, rec.count(EventSyncCompleted))
	assert.Equal(t, 2, rec.count(EventSyncProgress), "one per checkpoint")
}

func TestWebDAVConnectBadConfig(t *testing.T) {
	a := newTestWebDAVAdapter(fakeBackend())

	rec := &eventRecorder{}
	recordAll(a, rec)

	ok := a.Connect(context.Background(), WebDAVConfig{URL: "not-a-url"})
	require.False(t, ok)

	status := a.SyncStatus()
	assert.Equal(t, StateError, status.State)
	require.NotNil(t, status.Err)
	assert.NotEmpty(t, status.Err.Message)

	ev, found := rec.last(EventConnectionError)
	require.True(t, found)
	require.NotNil(t, ev.Err)
	assert.Equal(t, status.Err.Message, ev.Err.Message)
}

func TestWebDAVConnectHandshakeFailure(t *testing.T) {
	backend := fakeBackend()
	backend.PingFunc = func(ctx context.Context) error { return remote.ErrNotFound }

	a := newTestWebDAVAdapter(backend)

	assert.False(t, a.Connect(context.Background(), validWebDAVConfig()))
	assert.Equal(t, StateError, a.SyncStatus().State)
}

func TestStartSyncBeforeConnect(t *testing.T) {
	a := newTestWebDAVAdapter(fakeBackend())

	err := a.StartSync(context.Background(), fakeStore())
	require.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, StateIdle, a.SyncStatus().State, "precondition failure must not touch the status")
}

func TestStartSyncWhileBusy(t *testing.T) {
	release := make(chan struct{})
	backend := fakeBackend()
	backend.ListFunc = func(ctx context.Context) ([]models.DocumentInfo, error) {
		<-release
		return nil, nil
	}

	a := newTestWebDAVAdapter(backend)
	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))

	done := make(chan error, 1)
	go func() {
		done <- a.StartSync(context.Background(), fakeStore())
	}()

	assert.Eventually(t, func() bool {
		return len(backend.ListCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	err := a.StartSync(context.Background(), fakeStore())
	require.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateCompleted, a.SyncStatus().State)
}

func TestStopSyncIdempotent(t *testing.T) {
	a := newTestWebDAVAdapter(fakeBackend())

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	a.StopSync()
	assert.Equal(t, StateIdle, a.SyncStatus().State)
	assert.Nil(t, a.SyncStatus().Progress)

	a.StopSync()
	assert.Equal(t, StateIdle, a.SyncStatus().State)

	assert.Equal(t, 1, rec.count(EventSyncStopped), "stopped event fires only on the actual transition")
}

func TestStopSyncRequiresReconnect(t *testing.T) {
	a := newTestWebDAVAdapter(fakeBackend())

	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	a.StopSync()

	err := a.StartSync(context.Background(), fakeStore())
	assert.ErrorIs(t, err, ErrNotConnected)

	// The adapter stays reusable.
	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	assert.NoError(t, a.StartSync(context.Background(), fakeStore()))
}

func TestAutoSyncScheduler(t *testing.T) {
	backend := fakeBackend()
	a := newTestWebDAVAdapter(backend)

	cfg := validWebDAVConfig()
	cfg.AutoSyncInterval = 20 * time.Millisecond

	require.True(t, a.Connect(context.Background(), cfg))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	initial := len(backend.ListCalls())
	assert.GreaterOrEqual(t, initial, 1)

	assert.Eventually(t, func() bool {
		return len(backend.ListCalls()) >= initial+2
	}, 2*time.Second, 5*time.Millisecond, "scheduler must keep triggering passes")

	a.StopSync()
	after := len(backend.ListCalls())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, len(backend.ListCalls()), "no passes after StopSync")
}

func TestAutoSyncKeepsTickingAfterFailure(t *testing.T) {
	fail := make(chan struct{})
	backend := fakeBackend()
	innerList := backend.ListFunc
	backend.ListFunc = func(ctx context.Context) ([]models.DocumentInfo, error) {
		select {
		case <-fail:
			return nil, remote.ErrNotFound
		default:
			return innerList(ctx)
		}
	}

	a := newTestWebDAVAdapter(backend)

	rec := &eventRecorder{}
	recordAll(a, rec)

	cfg := validWebDAVConfig()
	cfg.AutoSyncInterval = 20 * time.Millisecond

	require.True(t, a.Connect(context.Background(), cfg))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	close(fail)

	assert.Eventually(t, func() bool {
		return rec.count(EventSyncError) >= 2
	}, 2*time.Second, 5*time.Millisecond, "failures must not stop the scheduler")

	a.StopSync()
}

func TestListenerIsolation(t *testing.T) {
	a := newTestWebDAVAdapter(fakeBackend())

	var wellBehavedCalled bool
	a.AddEventListener(EventConnected, func(Event) { panic("listener exploded") })
	a.AddEventListener(EventConnected, func(Event) { wellBehavedCalled = true })

	assert.NotPanics(t, func() {
		require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	})
	assert.True(t, wellBehavedCalled)
}

func TestReconnectReplacesBackend(t *testing.T) {
	first := fakeBackend()
	second := fakeBackend()

	a := NewWebDAVAdapter(testLogger())
	backends := []remote.Backend{first, second}
	a.dial = func(WebDAVConfig) remote.Backend {
		b := backends[0]
		backends = backends[1:]
		return b
	}

	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))

	require.NoError(t, a.StartSync(context.Background(), fakeStore()))
	assert.Empty(t, first.ListCalls())
	assert.Len(t, second.ListCalls(), 1)
}

func TestSyncErrorCapturedAndRecoverable(t *testing.T) {
	backend := fakeBackend()
	backend.ListFunc = func(ctx context.Context) ([]models.DocumentInfo, error) {
		return nil, remote.ErrNotFound
	}

	a := newTestWebDAVAdapter(backend)

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	require.Error(t, a.StartSync(context.Background(), fakeStore()))

	status := a.SyncStatus()
	assert.Equal(t, StateError, status.State)
	require.NotNil(t, status.Err)
	assert.NotEmpty(t, status.Err.Message)
	assert.Equal(t, 1, rec.count(EventSyncError))

	// Reconnect and retry after the backend recovers.
	backend.ListFunc = func(ctx context.Context) ([]models.DocumentInfo, error) { return nil, nil }
	require.True(t, a.Connect(context.Background(), validWebDAVConfig()))
	assert.NoError(t, a.StartSync(context.Background(), fakeStore()))
}

func newTestDriveAdapter(backend remote.Backend) *DriveAdapter {
	a := NewDriveAdapter(testLogger())
	a.dial = func(DriveConfig) remote.Backend { return backend }

	return a
}

func TestDriveConnectValidation(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  DriveConfig
		ok   bool
	}{
		{
			"valid opaque token",
			DriveConfig{Endpoint: "https://drive.example.com", AccessToken: "opaque-token", FolderID: "f1"},
			true,
		},
		{
			"missing token",
			DriveConfig{Endpoint: "https://drive.example.com", FolderID: "f1"},
			false,
		},
		{
			"missing folder",
			DriveConfig{Endpoint: "https://drive.example.com", AccessToken: "tok"},
			false,
		},
		{
			"bad endpoint",
			DriveConfig{Endpoint: "nope", AccessToken: "tok", FolderID: "f1"},
			false,
		},
		{
			"expired jwt token",
			DriveConfig{Endpoint: "https://drive.example.com", AccessToken: expired, FolderID: "f1"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestDriveAdapter(fakeBackend())

			ok := a.Connect(context.Background(), tt.cfg)
			assert.Equal(t, tt.ok, ok)

			if !tt.ok {
				status := a.SyncStatus()
				assert.Equal(t, StateError, status.State)
				require.NotNil(t, status.Err)
				assert.NotEmpty(t, status.Err.Message)
			}
		})
	}
}

func TestDriveHappyPath(t *testing.T) {
	backend := fakeBackend(doc("a", "1", `{}`))
	a := newTestDriveAdapter(backend)

	cfg := DriveConfig{Endpoint: "https://drive.example.com", AccessToken: "tok", FolderID: "f1"}
	require.True(t, a.Connect(context.Background(), cfg))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	assert.Equal(t, StateCompleted, a.SyncStatus().State)
	assert.Len(t, backend.GetCalls(), 1)
}
