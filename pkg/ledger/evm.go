package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/chris/onchain-marketplace/pkg/models"
)

// marketplaceABI mirrors the deployed Marketplace contract surface.
const marketplaceABI = `[
	{"type":"function","name":"createListing","stateMutability":"nonpayable","inputs":[{"name":"_name","type":"string"},{"name":"_description","type":"string"},{"name":"_price","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"purchaseListing","stateMutability":"payable","inputs":[{"name":"_id","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getListing","stateMutability":"view","inputs":[{"name":"_id","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"},{"name":"name","type":"string"},{"name":"description","type":"string"},{"name":"price","type":"uint256"},{"name":"seller","type":"address"},{"name":"buyer","type":"address"},{"name":"sold","type":"bool"}]},
	{"type":"function","name":"getListingCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"ListingCreated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true},{"name":"name","type":"string","indexed":false},{"name":"price","type":"uint256","indexed":false},{"name":"seller","type":"address","indexed":true}]},
	{"type":"event","name":"ListingPurchased","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true},{"name":"buyer","type":"address","indexed":true},{"name":"seller","type":"address","indexed":true},{"name":"price","type":"uint256","indexed":false}]}
]`

// EVMClient implements Client against an EVM JSON-RPC endpoint.
type EVMClient struct {
	backend  *ethclient.Client
	contract *bind.BoundContract
	abi      abi.ABI
}

// Make sure we conform to the interface
var _ Client = (*EVMClient)(nil)

// Dial connects to the JSON-RPC endpoint and binds the Marketplace contract
// at the given address.
func Dial(rpcURL string, contractAddr common.Address) (*EVMClient, error) {
	parsed, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse marketplace ABI: %w", err)
	}

	backend, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC endpoint: %w", err)
	}

	return &EVMClient{
		backend:  backend,
		contract: bind.NewBoundContract(contractAddr, parsed, backend, backend, backend),
		abi:      parsed,
	}, nil
}

// NewSigner builds a signing identity from a hex-encoded private key.
// The result is passed explicitly into every mutating call; the client holds
// no ambient wallet state.
func NewSigner(privateKeyHex string, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}

	return signer, nil
}

// CreateListing submits a createListing transaction.
func (c *EVMClient) CreateListing(ctx context.Context, signer *bind.TransactOpts, name, description string, price *big.Int) (*types.Transaction, error) {
	opts := *signer
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "createListing", name, description, price)
	if err != nil {
		return nil, fmt.Errorf("failed to submit createListing: %w", err)
	}

	return tx, nil
}

// PurchaseListing submits a purchaseListing transaction carrying the payment
// as the transaction value.
func (c *EVMClient) PurchaseListing(ctx context.Context, signer *bind.TransactOpts, id uint64, payment *big.Int) (*types.Transaction, error) {
	opts := *signer
	opts.Context = ctx
	opts.Value = payment

	tx, err := c.contract.Transact(&opts, "purchaseListing", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to submit purchaseListing: %w", err)
	}

	return tx, nil
}

// WaitForConfirmation blocks until the transaction is mined or ctx expires.
// Callers own the timeout: a context error here means the outcome is unknown,
// not that the transaction failed, so resubmission is never safe to automate.
func (c *EVMClient) WaitForConfirmation(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s: %w", tx.Hash().Hex(), ErrReverted)
	}

	return receipt, nil
}

// CreatedListingID extracts the assigned listing id from the ListingCreated
// event in a confirmed creation receipt.
func (c *EVMClient) CreatedListingID(receipt *types.Receipt) (uint64, error) {
	return CreatedListingID(c.abi, receipt)
}

// CreatedListingID is the receipt-only id derivation shared by the EVM client
// and its tests. The id is the event's first indexed topic.
func CreatedListingID(contractABI abi.ABI, receipt *types.Receipt) (uint64, error) {
	event, ok := contractABI.Events["ListingCreated"]
	if !ok {
		return 0, fmt.Errorf("ABI has no ListingCreated event")
	}

	for _, lg := range receipt.Logs {
		if len(lg.Topics) < 2 || lg.Topics[0] != event.ID {
			continue
		}
		return new(big.Int).SetBytes(lg.Topics[1].Bytes()).Uint64(), nil
	}

	return 0, ErrNoCreationEvent
}

// MarketplaceABI returns the parsed contract ABI.
func MarketplaceABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(marketplaceABI))
}

// GetListing reads a single listing record from the contract.
func (c *EVMClient) GetListing(ctx context.Context, id uint64) (*models.ChainListing, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getListing", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read listing %d: %w", id, err)
	}
	if len(out) != 7 {
		return nil, fmt.Errorf("getListing %d: unexpected return arity %d", id, len(out))
	}

	return &models.ChainListing{
		ID:          out[0].(*big.Int).Uint64(),
		Name:        out[1].(string),
		Description: out[2].(string),
		Price:       out[3].(*big.Int),
		Seller:      out[4].(common.Address),
		Buyer:       out[5].(common.Address),
		Sold:        out[6].(bool),
	}, nil
}

// GetListingCount reads the total number of ids ever assigned.
func (c *EVMClient) GetListingCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getListingCount")
	if err != nil {
		return 0, fmt.Errorf("failed to read listing count: %w", err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("getListingCount: unexpected return arity %d", len(out))
	}

	return out[0].(*big.Int).Uint64(), nil
}
