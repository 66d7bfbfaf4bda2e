package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/docsync/internal/sync"
)

// runWatch connects the adapter, runs a first pass and then lets the
// auto-sync scheduler keep the store converged until the context is
// cancelled (SIGINT in the entrypoint).
func (c *Cli) runWatch(ctx context.Context) error {
	if c.connect == nil {
		return fmt.Errorf("no backend configured. Use --backend to select one")
	}

	c.io.Println("=== Watch Mode ===")
	c.io.Println()

	adapter, err := c.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	ids := map[sync.EventType]sync.ListenerID{
		sync.EventSyncStarted: adapter.AddEventListener(sync.EventSyncStarted, func(ev sync.Event) {
			c.io.Println("sync pass started")
		}),
		sync.EventSyncCompleted: adapter.AddEventListener(sync.EventSyncCompleted, func(ev sync.Event) {
			c.io.Println("sync pass completed")
		}),
		sync.EventSyncError: adapter.AddEventListener(sync.EventSyncError, func(ev sync.Event) {
			c.io.Printf("sync pass failed: %s\n", ev.Err.Error())
		}),
		sync.EventSyncPaused: adapter.AddEventListener(sync.EventSyncPaused, func(ev sync.Event) {
			c.io.Println("replication paused, waiting for changes")
		}),
		sync.EventSyncActive: adapter.AddEventListener(sync.EventSyncActive, func(ev sync.Event) {
			c.io.Println("replication active")
		}),
	}
	defer func() {
		for eventType, id := range ids {
			adapter.RemoveEventListener(eventType, id)
		}
	}()

	if err := adapter.StartSync(ctx, c.store); err != nil {
		adapter.StopSync()
		return fmt.Errorf("initial synchronization failed: %w", err)
	}

	c.io.Println("Watching for changes. Press Ctrl+C to stop.")

	<-ctx.Done()

	adapter.StopSync()
	c.io.Println()
	c.io.Println("Stopped.")

	return nil
}
