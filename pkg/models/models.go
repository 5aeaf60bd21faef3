package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ChainListing is a listing record as the Marketplace contract stores it.
// The chain copy of id, price, seller, buyer and sold is authoritative;
// name and description also live here as an immutable fallback copy.
type ChainListing struct {
	ID          uint64
	Name        string
	Description string
	Price       *big.Int
	Seller      common.Address
	Buyer       common.Address
	Sold        bool
}

// HasBuyer reports whether the chain record carries a real buyer.
// The contract leaves buyer at the zero address until a sale completes.
func (c *ChainListing) HasBuyer() bool {
	return c.Buyer != (common.Address{})
}

// MetadataRecord is the off-chain metadata document keyed by listing id.
// It includes dynamodbav tags for marshalling.
type MetadataRecord struct {
	ListingID    uint64    `dynamodbav:"listing_id" json:"listingId"`
	Name         string    `dynamodbav:"name" json:"name"`
	Description  string    `dynamodbav:"description" json:"description"`
	Price        string    `dynamodbav:"price" json:"price"`
	Seller       string    `dynamodbav:"seller" json:"seller"`
	Buyer        string    `dynamodbav:"buyer,omitempty" json:"buyer,omitempty"`
	Sold         bool      `dynamodbav:"sold" json:"sold"`
	ImageData    string    `dynamodbav:"image_data,omitempty" json:"imageData,omitempty"`
	ImageURL     string    `dynamodbav:"image_url,omitempty" json:"imageUrl,omitempty"`
	MetadataHash string    `dynamodbav:"metadata_hash,omitempty" json:"metadataHash,omitempty"`
	CreatedAt    time.Time `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updatedAt"`
	GSI1PK       string    `dynamodbav:"gsi1pk" json:"-"`
}

// Listing is the reconciled view of a single marketplace item, merged from
// the chain record and the metadata document.
type Listing struct {
	ListingID    uint64 `json:"listingId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Seller       string `json:"seller"`
	Buyer        string `json:"buyer,omitempty"`
	Sold         bool   `json:"sold"`
	ImageData    string `json:"imageData,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	MetadataHash string `json:"metadataHash,omitempty"`

	// Partial marks a listing built from metadata alone because the
	// per-id chain read failed during the scan.
	Partial bool `json:"partial,omitempty"`
}

// RepairKind identifies which metadata write a repair task retries.
type RepairKind string

const (
	RepairUpsert   RepairKind = "UPSERT_METADATA"
	RepairMarkSold RepairKind = "MARK_SOLD"
)

// RepairTask is one queued retry of a metadata write that failed after its
// chain transaction had already confirmed. Both write kinds are idempotent
// by listing id, so a task can be re-delivered safely.
type RepairTask struct {
	ID        string          `json:"id"`
	Kind      RepairKind      `json:"kind"`
	ListingID uint64          `json:"listing_id"`
	Buyer     string          `json:"buyer,omitempty"`
	Record    *MetadataRecord `json:"record,omitempty"`
	TxHash    string          `json:"tx_hash,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
