package market

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/google/uuid"

	"github.com/chris/onchain-marketplace/pkg/ledger"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// CreateListingInput is the caller-supplied part of a new listing. Price is
// in the chain's smallest currency unit. Exactly one of ImageData/ImageURL is
// kept; when both are set the inline data wins.
type CreateListingInput struct {
	Name        string
	Description string
	Price       *big.Int
	ImageData   string
	ImageURL    string
}

// CreateListingResult reports a creation outcome. ListingID and TxHash are
// set whenever the chain phase confirmed, including on partial success.
type CreateListingResult struct {
	ListingID uint64                 `json:"listingId"`
	TxHash    string                 `json:"txHash"`
	Record    *models.MetadataRecord `json:"record,omitempty"`
}

// CreateListing runs the two-phase creation: submit the chain transaction,
// wait for confirmation, derive the assigned id, then upsert the metadata
// record. A metadata failure after confirmation returns both a result
// carrying the assigned id and a MetadataWriteError; the listing is already
// permanently visible on chain and the reconciler falls back to chain fields
// until the idempotent upsert is retried.
func (o *Orchestrator) CreateListing(ctx context.Context, signer *bind.TransactOpts, in CreateListingInput) (*CreateListingResult, error) {
	if err := validateCreate(signer, in); err != nil {
		return nil, err
	}
	if in.ImageData != "" {
		in.ImageURL = ""
	}

	tx, err := o.Ledger.CreateListing(ctx, signer, in.Name, in.Description, in.Price)
	if err != nil {
		return nil, &SubmissionError{Op: "createListing", Err: err}
	}
	txHash := tx.Hash().Hex()
	o.Logger.Info("createListing submitted", "tx", txHash, "seller", signer.From.Hex())

	receipt, err := o.Ledger.WaitForConfirmation(ctx, tx)
	if err != nil {
		if errors.Is(err, ledger.ErrReverted) {
			return nil, &ExecutionError{Op: "createListing", TxHash: txHash, Err: err}
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &ConfirmationTimeoutError{Op: "createListing", TxHash: txHash, Err: err}
		}
		return nil, &SubmissionError{Op: "createListing", Err: err}
	}

	id, err := o.Ledger.CreatedListingID(receipt)
	if errors.Is(err, ledger.ErrNoCreationEvent) {
		// Count fallback. Only correct when no other creation confirmed
		// between our receipt and this read; the event path above is why
		// this is rarely exercised.
		id, err = o.Ledger.GetListingCount(ctx)
	}
	if err != nil {
		return &CreateListingResult{TxHash: txHash},
			&IDDerivationError{TxHash: txHash, Err: err}
	}

	rec := &models.MetadataRecord{
		ListingID:    id,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price.String(),
		Seller:       signer.From.Hex(),
		ImageData:    in.ImageData,
		ImageURL:     in.ImageURL,
		MetadataHash: txHash,
	}

	stored, err := o.Metadata.UpsertListing(ctx, rec)
	if err != nil {
		enqueued := o.enqueueRepair(ctx, &models.RepairTask{
			ID:        uuid.New().String(),
			Kind:      models.RepairUpsert,
			ListingID: id,
			Record:    rec,
			TxHash:    txHash,
			CreatedAt: time.Now(),
		})
		return &CreateListingResult{ListingID: id, TxHash: txHash},
			&MetadataWriteError{ListingID: id, TxHash: txHash, Enqueued: enqueued, Err: err}
	}

	o.Logger.Info("listing created", "id", id, "tx", txHash)
	return &CreateListingResult{ListingID: id, TxHash: txHash, Record: stored}, nil
}

func validateCreate(signer *bind.TransactOpts, in CreateListingInput) error {
	if signer == nil {
		return &ValidationError{Field: "signer", Reason: "a signing identity is required"}
	}
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if in.Price == nil || in.Price.Sign() <= 0 {
		return &ValidationError{Field: "price", Reason: "must be a positive amount in base units"}
	}
	if in.ImageData == "" && in.ImageURL == "" {
		return &ValidationError{Field: "image", Reason: "image data or an image URL is required"}
	}
	return nil
}

// enqueueRepair best-effort queues a repair task; a queue failure downgrades
// the recovery to manual retry but never masks the original error.
func (o *Orchestrator) enqueueRepair(ctx context.Context, task *models.RepairTask) bool {
	if o.Repair == nil {
		return false
	}
	if err := o.Repair.ScheduleRepair(ctx, task); err != nil {
		o.Logger.Error("failed to enqueue metadata repair", "listing_id", task.ListingID, "kind", task.Kind, "error", err)
		return false
	}
	o.Logger.Info("metadata repair enqueued", "listing_id", task.ListingID, "kind", task.Kind)
	return true
}
