package sync

import (
	"context"
	"fmt"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/remote"
	"github.com/iudanet/docsync/internal/storage"
)

// Progress checkpoints for the merge pass. Document counts are unknown
// before listing, so progress is reported at fixed points instead of
// per document.
const (
	checkpointRemoteListed = 25
	checkpointLocalListed  = 50
)

// mergeResult summarizes one reconciliation pass.
type mergeResult struct {
	Pulled    int // documents overwritten/created locally from the remote
	Pushed    int // documents written to the remote from the local store
	Unchanged int // documents already converged (equal markers)
}

// reconcile runs one explicit two-way reconciliation pass between the
// local store and a remote backend. The policy is last-writer-wins by
// lexicographic revision-marker ordering: whichever side's marker sorts
// greater is applied unconditionally, and equal markers mean the document
// is already converged. Tombstones participate like any other document so
// deletions propagate.
func reconcile(ctx context.Context, backend remote.Backend, store storage.LocalStore, checkpoint func(int)) (mergeResult, error) {
	var res mergeResult

	remoteInfos, err := backend.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list remote documents: %w", err)
	}

	checkpoint(checkpointRemoteListed)

	localDocs, err := store.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("list local documents: %w", err)
	}

	checkpoint(checkpointLocalListed)

	locals := make(map[string]*models.Document, len(localDocs))
	for _, doc := range localDocs {
		locals[doc.ID] = doc
	}

	remotes := make(map[string]models.DocumentInfo, len(remoteInfos))

	// Remote-wins branch: missing locally, local marker absent, or the
	// remote marker sorts greater.
	for _, info := range remoteInfos {
		remotes[info.ID] = info

		local, ok := locals[info.ID]
		if !ok || local.Rev == "" || models.RevNewerThan(info.Rev, local.Rev) {
			doc, err := backend.Get(ctx, info.ID)
			if err != nil {
				return res, fmt.Errorf("get remote document %s: %w", info.ID, err)
			}

			if err := store.Put(ctx, doc); err != nil {
				return res, fmt.Errorf("store document %s: %w", info.ID, err)
			}

			res.Pulled++

			continue
		}

		if !models.RevNewerThan(local.Rev, info.Rev) {
			res.Unchanged++
		}
	}

	// Local-wins branch: missing remotely or the local marker sorts
	// greater.
	for _, local := range localDocs {
		info, ok := remotes[local.ID]
		if ok && !models.RevNewerThan(local.Rev, info.Rev) {
			continue
		}

		if err := backend.Put(ctx, local); err != nil {
			return res, fmt.Errorf("push document %s: %w", local.ID, err)
		}

		res.Pushed++
	}

	return res, nil
}
