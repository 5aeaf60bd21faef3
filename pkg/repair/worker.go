package repair

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// Worker applies queued repair tasks against the metadata store.
type Worker struct {
	Metadata metadata.Writer
	Logger   *slog.Logger
}

// NewWorker creates a Worker.
func NewWorker(m metadata.Writer, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{Metadata: m, Logger: logger}
}

// Process retries the metadata write described by the task. Returning an
// error makes the queue redeliver the message, which is the retry loop.
func (w *Worker) Process(ctx context.Context, task *models.RepairTask) error {
	switch task.Kind {
	case models.RepairUpsert:
		if task.Record == nil {
			return fmt.Errorf("repair task %s: upsert task has no record", task.ID)
		}
		if _, err := w.Metadata.UpsertListing(ctx, task.Record); err != nil {
			return fmt.Errorf("repair task %s: %w", task.ID, err)
		}

	case models.RepairMarkSold:
		_, err := w.Metadata.MarkSold(ctx, task.ListingID, task.Buyer)
		if errors.Is(err, metadata.ErrNotFound) {
			// The creation-gap case: no metadata record ever landed for
			// this id. The chain's sold flag is authoritative at
			// reconciliation time, so retrying is pointless; drop the task.
			w.Logger.Warn("dropping markSold repair, no metadata record", "listing_id", task.ListingID, "task", task.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("repair task %s: %w", task.ID, err)
		}

	default:
		return fmt.Errorf("repair task %s: unknown kind %q", task.ID, task.Kind)
	}

	w.Logger.Info("metadata repair applied", "listing_id", task.ListingID, "kind", task.Kind, "task", task.ID)
	return nil
}
