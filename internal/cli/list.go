package cli

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	c.io.Println("=== Local Documents ===")
	c.io.Println()

	docs, err := c.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	shown := 0
	for _, doc := range docs {
		if doc.Deleted {
			continue
		}

		var payload notePayload
		title := "(unreadable payload)"
		if err := json.Unmarshal(doc.Data, &payload); err == nil && payload.Title != "" {
			title = payload.Title
		}

		shown++
		c.io.Printf("%d. %s\n", shown, title)
		c.io.Printf("   ID:      %s\n", doc.ID)
		c.io.Printf("   Rev:     %s\n", doc.Rev)
		c.io.Printf("   Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
		c.io.Println()
	}

	if shown == 0 {
		c.io.Println("No documents found.")
		c.io.Println()
		c.io.Println("Use 'docsync add' to add your first document.")
		return nil
	}

	c.io.Printf("Found %d document(s).\n", shown)

	return nil
}
