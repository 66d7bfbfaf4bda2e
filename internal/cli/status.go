package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Local Store Status ===")
	c.io.Println()

	docs, err := c.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	active := 0
	tombstones := 0
	for _, doc := range docs {
		if doc.Deleted {
			tombstones++
		} else {
			active++
		}
	}

	c.io.Printf("Documents:  %d\n", active)
	c.io.Printf("Tombstones: %d\n", tombstones)
	c.io.Printf("Total:      %d\n", len(docs))

	return nil
}
