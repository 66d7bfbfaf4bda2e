package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iudanet/docsync/internal/models"
)

// notePayload is the document body the interactive commands work with.
// Synchronization itself treats payloads as opaque JSON.
type notePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	syncFlag := false
	for _, arg := range args {
		if arg == "--sync" {
			syncFlag = true
			break
		}
	}

	c.io.Println("=== Add Document ===")
	c.io.Println()

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	body, err := c.io.ReadInput("Body: ")
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	data, err := json.Marshal(notePayload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	now := time.Now().UTC()
	doc := &models.Document{
		ID:        uuid.NewString(),
		Rev:       models.NewRev(),
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.store.Put(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Document added successfully!")
	c.io.Printf("ID:    %s\n", doc.ID)
	c.io.Printf("Title: %s\n", title)
	c.io.Println()

	if syncFlag {
		c.io.Println("Syncing with remote...")
		return c.runSync(ctx)
	}

	c.io.Println("Note: Document is stored locally. Run 'docsync sync' to sync with the remote.")

	return nil
}
