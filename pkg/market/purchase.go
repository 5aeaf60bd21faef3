package market

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/google/uuid"

	"github.com/chris/onchain-marketplace/pkg/ledger"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// PurchaseResult reports a purchase outcome.
type PurchaseResult struct {
	ListingID uint64 `json:"listingId"`
	Buyer     string `json:"buyer"`
	TxHash    string `json:"txHash"`
	Price     string `json:"price"`
}

// PurchaseListing runs the two-phase sale: read the authoritative price, pay
// exactly that amount on chain, wait for confirmation, then mark the metadata
// record sold. A revert (already sold, wrong amount) surfaces as an
// ExecutionError and no metadata write is attempted. A markSold failure after
// confirmation is the recoverable gap: the chain's sold=true already wins at
// reconciliation time, and the idempotent markSold is retried via the repair
// queue.
func (o *Orchestrator) PurchaseListing(ctx context.Context, signer *bind.TransactOpts, id uint64) (*PurchaseResult, error) {
	if signer == nil {
		return nil, &ValidationError{Field: "signer", Reason: "a signing identity is required"}
	}
	if id == 0 {
		return nil, &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}

	chain, err := o.Ledger.GetListing(ctx, id)
	if err != nil {
		return nil, &SubmissionError{Op: "purchaseListing", Err: err}
	}
	if chain.Name == "" {
		return nil, &ValidationError{Field: "id", Reason: "listing does not exist"}
	}
	if chain.Sold {
		return nil, &ValidationError{Field: "id", Reason: "listing is already sold"}
	}

	tx, err := o.Ledger.PurchaseListing(ctx, signer, id, chain.Price)
	if err != nil {
		return nil, &SubmissionError{Op: "purchaseListing", Err: err}
	}
	txHash := tx.Hash().Hex()
	o.Logger.Info("purchaseListing submitted", "id", id, "tx", txHash, "buyer", signer.From.Hex())

	if _, err := o.Ledger.WaitForConfirmation(ctx, tx); err != nil {
		if errors.Is(err, ledger.ErrReverted) {
			return nil, &ExecutionError{Op: "purchaseListing", ListingID: id, TxHash: txHash, Err: err}
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &ConfirmationTimeoutError{Op: "purchaseListing", TxHash: txHash, Err: err}
		}
		return nil, &SubmissionError{Op: "purchaseListing", Err: err}
	}

	buyer := signer.From.Hex()
	result := &PurchaseResult{ListingID: id, Buyer: buyer, TxHash: txHash, Price: chain.Price.String()}

	if _, err := o.Metadata.MarkSold(ctx, id, buyer); err != nil {
		enqueued := o.enqueueRepair(ctx, &models.RepairTask{
			ID:        uuid.New().String(),
			Kind:      models.RepairMarkSold,
			ListingID: id,
			Buyer:     buyer,
			TxHash:    txHash,
			CreatedAt: time.Now(),
		})
		return result, &MetadataWriteError{ListingID: id, TxHash: txHash, Enqueued: enqueued, Err: err}
	}

	o.Logger.Info("listing purchased", "id", id, "tx", txHash, "buyer", buyer)
	return result, nil
}
