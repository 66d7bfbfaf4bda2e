package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/docsync/internal/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	if c.connect == nil {
		return fmt.Errorf("no backend configured. Use --backend to select one")
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	adapter, err := c.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer adapter.StopSync()

	progressID := adapter.AddEventListener(sync.EventSyncProgress, func(ev sync.Event) {
		if ev.Status.Progress != nil {
			c.io.Printf("  progress: %d%%\n", *ev.Status.Progress)
		}
	})
	defer adapter.RemoveEventListener(sync.EventSyncProgress, progressID)

	c.io.Println("Starting synchronization...")

	if err := adapter.StartSync(ctx, c.store); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")

	return nil
}
