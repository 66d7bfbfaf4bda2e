package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/docsync/internal/models"
)

// runDelete soft-deletes a document: the tombstone keeps the ID with a
// fresh revision marker so the next sync pass propagates the deletion.
func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing document ID. Usage: docsync delete <id>")
	}

	doc, err := c.store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Deleted {
		return fmt.Errorf("document %s is already deleted", doc.ID)
	}

	doc.Deleted = true
	doc.Rev = models.NewRev()
	doc.UpdatedAt = time.Now().UTC()

	if err := c.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	c.io.Printf("✓ Document %s deleted.\n", doc.ID)
	c.io.Println("Note: Run 'docsync sync' to propagate the deletion to the remote.")

	return nil
}
