package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing document ID. Usage: docsync get <id>")
	}

	doc, err := c.store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Deleted {
		return fmt.Errorf("document %s is deleted", doc.ID)
	}

	c.io.Println("=== Document ===")
	c.io.Println()
	c.io.Printf("ID:      %s\n", doc.ID)
	c.io.Printf("Rev:     %s\n", doc.Rev)
	c.io.Printf("Created: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	c.io.Printf("Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	c.io.Println()

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc.Data, "", "  "); err != nil {
		c.io.Printf("Data: %s\n", string(doc.Data))
		return nil
	}
	c.io.Printf("Data:\n%s\n", pretty.String())

	return nil
}
