// Package market drives the two-phase writes that keep the chain and the
// metadata store consistent without a shared transaction. Each orchestrated
// write is a documented sequence: chain submit, confirmation wait, then an
// idempotent metadata write whose failure leaves a recoverable
// "chain succeeded, metadata pending" state rather than a fatal error.
package market

import (
	"log/slog"

	"github.com/chris/onchain-marketplace/pkg/ledger"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/repair"
)

// Orchestrator holds the collaborators for both write paths.
type Orchestrator struct {
	Ledger   ledger.Client
	Metadata metadata.Store

	// Repair enqueues failed post-confirmation metadata writes for
	// asynchronous retry. Optional; when nil the caller retries manually.
	Repair repair.Scheduler

	Logger *slog.Logger
}

// New creates an Orchestrator.
func New(l ledger.Client, m metadata.Store, r repair.Scheduler, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Ledger: l, Metadata: m, Repair: r, Logger: logger}
}
