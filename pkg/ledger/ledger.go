package ledger

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chris/onchain-marketplace/pkg/models"
)

// ErrReverted is returned after a confirmation wait when the transaction was
// mined but its execution reverted. Chain state is unchanged in that case.
var ErrReverted = errors.New("transaction reverted")

// ErrNoCreationEvent is returned when a confirmed creation receipt carries no
// ListingCreated log. Callers may fall back to reading the listing count.
var ErrNoCreationEvent = errors.New("no ListingCreated event in receipt")

// Reader defines the read side of the on-chain Marketplace contract.
type Reader interface {
	// GetListing reads the listing record at the given id. A record with an
	// empty name means the slot was never used.
	GetListing(ctx context.Context, id uint64) (*models.ChainListing, error)

	// GetListingCount returns the total number of ids ever assigned.
	GetListingCount(ctx context.Context) (uint64, error)
}

// Writer defines the mutating side of the Marketplace contract. Submission and
// confirmation are separate steps: Transact-style calls return a pending
// transaction, and WaitForConfirmation blocks until it is mined or the context
// expires.
type Writer interface {
	// CreateListing submits a createListing transaction signed by the given
	// identity. Price is in the chain's smallest currency unit.
	CreateListing(ctx context.Context, signer *bind.TransactOpts, name, description string, price *big.Int) (*types.Transaction, error)

	// PurchaseListing submits a purchaseListing transaction paying exactly
	// the given amount.
	PurchaseListing(ctx context.Context, signer *bind.TransactOpts, id uint64, payment *big.Int) (*types.Transaction, error)

	// WaitForConfirmation blocks until the transaction is mined. It returns
	// ErrReverted (with the receipt) when execution reverted, and the
	// context's error when the caller's deadline expires first.
	WaitForConfirmation(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

	// CreatedListingID recovers the listing id assigned by a confirmed
	// createListing transaction from its ListingCreated event. Returns
	// ErrNoCreationEvent when the receipt has no such log.
	CreatedListingID(receipt *types.Receipt) (uint64, error)
}

// Client combines read and write access to the ledger.
type Client interface {
	Reader
	Writer
}
