package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/discovery"
	"github.com/iudanet/docsync/internal/replication"
	"github.com/iudanet/docsync/internal/storage"
)

// scriptedHandle emits the given events in order, then closes the stream.
func scriptedHandle(events ...replication.Event) *replication.HandleMock {
	ch := make(chan replication.Event)

	go func() {
		defer close(ch)
		for _, ev := range events {
			ch <- ev
		}
	}()

	return &replication.HandleMock{
		EventsFunc: func() <-chan replication.Event { return ch },
		CancelFunc: func() {},
	}
}

func testEngine(handle replication.Handle) *replication.EngineMock {
	return &replication.EngineMock{
		OpenFunc: func(ctx context.Context, target replication.Target) (replication.Session, error) {
			return &replication.SessionMock{CloseFunc: func() error { return nil }}, nil
		},
		ReplicateFunc: func(ctx context.Context, store storage.LocalStore, session replication.Session, opts replication.Options) (replication.Handle, error) {
			return handle, nil
		},
	}
}

func validCouchConfig() CouchConfig {
	return CouchConfig{URL: "https://couch.example.com", Database: "docs", Username: "alice", Password: "secret"}
}

func TestCouchConnectOpensSession(t *testing.T) {
	engine := testEngine(nil)
	a := NewCouchAdapter(engine, testLogger())

	require.True(t, a.Connect(context.Background(), validCouchConfig()))
	assert.Equal(t, StateConnected, a.SyncStatus().State)

	require.Len(t, engine.OpenCalls(), 1)
	target := engine.OpenCalls()[0].Target
	assert.Equal(t, "https://couch.example.com", target.URL)
	assert.Equal(t, "docs", target.Database)
	assert.Equal(t, "alice", target.Username)
}

func TestCouchConnectBadConfig(t *testing.T) {
	engine := testEngine(nil)
	a := NewCouchAdapter(engine, testLogger())

	assert.False(t, a.Connect(context.Background(), CouchConfig{URL: "not-a-url", Database: "docs"}))
	assert.Equal(t, StateError, a.SyncStatus().State)
	assert.Empty(t, engine.OpenCalls(), "validation failure must not reach the engine")
}

func TestCouchConnectOpenFailure(t *testing.T) {
	engine := testEngine(nil)
	engine.OpenFunc = func(ctx context.Context, target replication.Target) (replication.Session, error) {
		return nil, fmt.Errorf("unreachable")
	}

	a := NewCouchAdapter(engine, testLogger())

	assert.False(t, a.Connect(context.Background(), validCouchConfig()))

	status := a.SyncStatus()
	assert.Equal(t, StateError, status.State)
	require.NotNil(t, status.Err)
	assert.Contains(t, status.Err.Details, "unreachable")
}

func TestCouchReplicationPass(t *testing.T) {
	handle := scriptedHandle(
		replication.Event{Kind: replication.EventChange, DocumentsRead: 10, DocumentsWritten: 10},
		replication.Event{Kind: replication.EventPaused},
		replication.Event{Kind: replication.EventActive},
		replication.Event{Kind: replication.EventChange, DocumentsRead: 5, DocumentsWritten: 15},
		replication.Event{Kind: replication.EventComplete},
	)

	a := NewCouchAdapter(testEngine(handle), testLogger())

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validCouchConfig()))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))

	status := a.SyncStatus()
	assert.Equal(t, StateCompleted, status.State)
	require.NotNil(t, status.Progress)
	assert.Equal(t, 100, *status.Progress)

	assert.Equal(t, 1, rec.count(EventSyncPaused))
	assert.Equal(t, 1, rec.count(EventSyncActive))
	assert.Equal(t, 1, rec.count(EventSyncCompleted))

	ev, found := rec.last(EventSyncProgress)
	require.True(t, found)
	require.NotNil(t, ev.Status.Progress)
	assert.Equal(t, 75, *ev.Status.Progress)
	assert.Equal(t, int64(5), ev.DocumentsRead)
	assert.Equal(t, int64(15), ev.DocumentsWritten)
}

func TestCouchReplicationError(t *testing.T) {
	handle := scriptedHandle(
		replication.Event{Kind: replication.EventChange, DocumentsRead: 1, DocumentsWritten: 1},
		replication.Event{Kind: replication.EventError, Err: fmt.Errorf("remote hung up")},
	)

	a := NewCouchAdapter(testEngine(handle), testLogger())

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validCouchConfig()))
	require.Error(t, a.StartSync(context.Background(), fakeStore()))

	status := a.SyncStatus()
	assert.Equal(t, StateError, status.State)
	require.NotNil(t, status.Err)
	assert.Contains(t, status.Err.Details, "remote hung up")
	assert.Equal(t, 1, rec.count(EventSyncError))
}

func TestCouchReplicationDenied(t *testing.T) {
	handle := scriptedHandle(
		replication.Event{Kind: replication.EventDenied, Err: fmt.Errorf("write rejected")},
	)

	a := NewCouchAdapter(testEngine(handle), testLogger())

	require.True(t, a.Connect(context.Background(), validCouchConfig()))
	require.Error(t, a.StartSync(context.Background(), fakeStore()))
	assert.Equal(t, StateError, a.SyncStatus().State)
}

func TestCouchStopCancelsHandleAndClosesSession(t *testing.T) {
	ch := make(chan replication.Event)

	var cancelOnce stdsync.Once
	handle := &replication.HandleMock{
		EventsFunc: func() <-chan replication.Event { return ch },
		CancelFunc: func() { cancelOnce.Do(func() { close(ch) }) },
	}

	session := &replication.SessionMock{CloseFunc: func() error { return nil }}
	engine := testEngine(handle)
	engine.OpenFunc = func(ctx context.Context, target replication.Target) (replication.Session, error) {
		return session, nil
	}

	a := NewCouchAdapter(engine, testLogger())
	require.True(t, a.Connect(context.Background(), validCouchConfig()))

	done := make(chan error, 1)
	go func() {
		done <- a.StartSync(context.Background(), fakeStore())
	}()

	assert.Eventually(t, func() bool {
		return len(handle.EventsCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	a.StopSync()

	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, a.SyncStatus().State)
	assert.GreaterOrEqual(t, len(handle.CancelCalls()), 1)
	assert.Len(t, session.CloseCalls(), 1)
}

func TestCouchStopDuringSlowTeardownReportsNoError(t *testing.T) {
	ch := make(chan replication.Event)

	var cancelOnce stdsync.Once
	handle := &replication.HandleMock{
		EventsFunc: func() <-chan replication.Event { return ch },
		CancelFunc: func() { cancelOnce.Do(func() { close(ch) }) },
	}

	// A slow Close keeps the status at syncing while the pass already
	// observes the closed stream.
	session := &replication.SessionMock{CloseFunc: func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	}}
	engine := testEngine(handle)
	engine.OpenFunc = func(ctx context.Context, target replication.Target) (replication.Session, error) {
		return session, nil
	}

	a := NewCouchAdapter(engine, testLogger())

	rec := &eventRecorder{}
	recordAll(a, rec)

	require.True(t, a.Connect(context.Background(), validCouchConfig()))

	done := make(chan error, 1)
	go func() {
		done <- a.StartSync(context.Background(), fakeStore())
	}()

	assert.Eventually(t, func() bool {
		return len(handle.EventsCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	a.StopSync()

	require.NoError(t, <-done, "a user-initiated stop must not surface as a pass failure")
	assert.Equal(t, StateIdle, a.SyncStatus().State)
	assert.Zero(t, rec.count(EventSyncError), "a user-initiated stop must not dispatch sync-error")
}

func TestCouchStreamEndsWithoutTerminalEvent(t *testing.T) {
	handle := scriptedHandle() // closes immediately

	a := NewCouchAdapter(testEngine(handle), testLogger())

	require.True(t, a.Connect(context.Background(), validCouchConfig()))
	require.Error(t, a.StartSync(context.Background(), fakeStore()))
	assert.Equal(t, StateError, a.SyncStatus().State)
}

func validHostedConfig() HostedConfig {
	return HostedConfig{
		Address:      "notes@provider.example",
		ClientID:     "client-1",
		ClientSecret: "shhh",
		Module:       "notes",
	}
}

func testResolver() *discovery.ResolverMock {
	return &discovery.ResolverMock{
		ResolveFunc: func(ctx context.Context, address string) (*discovery.Descriptor, error) {
			return &discovery.Descriptor{
				Server:       "https://backend.provider.example/",
				BasePath:     "/u/notes",
				AuthEndpoint: "https://auth.provider.example/token",
			}, nil
		},
	}
}

func TestHostedConnectResolvesAndExchanges(t *testing.T) {
	engine := testEngine(nil)
	resolver := testResolver()
	tokens := &discovery.TokenSourceMock{
		ExchangeFunc: func(ctx context.Context, desc *discovery.Descriptor, creds discovery.Credentials) (string, error) {
			return "tok-123", nil
		},
	}

	a := NewHostedAdapter(engine, resolver, tokens, testLogger())

	require.True(t, a.Connect(context.Background(), validHostedConfig()))
	assert.Equal(t, StateConnected, a.SyncStatus().State)

	require.Len(t, resolver.ResolveCalls(), 1)
	assert.Equal(t, "notes@provider.example", resolver.ResolveCalls()[0].Address)

	require.Len(t, tokens.ExchangeCalls(), 1)
	assert.Equal(t, "client-1", tokens.ExchangeCalls()[0].Creds.ClientID)

	require.Len(t, engine.OpenCalls(), 1)
	target := engine.OpenCalls()[0].Target
	assert.Equal(t, "https://backend.provider.example/u/notes", target.URL)
	assert.Equal(t, "notes", target.Database)
	assert.Equal(t, "tok-123", target.Token)
}

func TestHostedConnectWithSuppliedToken(t *testing.T) {
	engine := testEngine(nil)
	tokens := &discovery.TokenSourceMock{}

	a := NewHostedAdapter(engine, testResolver(), tokens, testLogger())

	cfg := validHostedConfig()
	cfg.Token = "pre-issued"

	require.True(t, a.Connect(context.Background(), cfg))
	assert.Empty(t, tokens.ExchangeCalls(), "a supplied token skips the exchange")
	assert.Equal(t, "pre-issued", engine.OpenCalls()[0].Target.Token)
}

func TestHostedConnectBadAddress(t *testing.T) {
	resolver := testResolver()
	a := NewHostedAdapter(testEngine(nil), resolver, &discovery.TokenSourceMock{}, testLogger())

	cfg := validHostedConfig()
	cfg.Address = "no-separator"

	assert.False(t, a.Connect(context.Background(), cfg))
	assert.Empty(t, resolver.ResolveCalls())
}

func TestHostedConnectResolveFailure(t *testing.T) {
	resolver := &discovery.ResolverMock{
		ResolveFunc: func(ctx context.Context, address string) (*discovery.Descriptor, error) {
			return nil, fmt.Errorf("no such account")
		},
	}

	a := NewHostedAdapter(testEngine(nil), resolver, &discovery.TokenSourceMock{}, testLogger())

	rec := &eventRecorder{}
	recordAll(a, rec)

	assert.False(t, a.Connect(context.Background(), validHostedConfig()))
	assert.Equal(t, StateError, a.SyncStatus().State)
	assert.Equal(t, 1, rec.count(EventConnectionError))
}

func TestHostedReplicationPass(t *testing.T) {
	handle := scriptedHandle(
		replication.Event{Kind: replication.EventChange, DocumentsRead: 2, DocumentsWritten: 2},
		replication.Event{Kind: replication.EventComplete},
	)

	a := NewHostedAdapter(testEngine(handle), testResolver(), &discovery.TokenSourceMock{}, testLogger())

	cfg := validHostedConfig()
	cfg.Token = "tok"

	require.True(t, a.Connect(context.Background(), cfg))
	require.NoError(t, a.StartSync(context.Background(), fakeStore()))
	assert.Equal(t, StateCompleted, a.SyncStatus().State)
}
