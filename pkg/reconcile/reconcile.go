// Package reconcile merges the chain's authoritative listing records with the
// off-chain metadata store into one consistent view. The chain owns identity,
// price, seller, buyer and the sold flag; the metadata store owns presentation
// fields and may hold fresher name/description copies.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/chris/onchain-marketplace/pkg/ledger"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// ErrNotFound is returned by ReconcileOne when the id has no chain record.
var ErrNotFound = errors.New("listing not found")

// defaultConcurrency bounds the parallel per-id chain reads during a scan.
const defaultConcurrency = 8

// Engine produces the merged listing view.
type Engine struct {
	Ledger   ledger.Reader
	Metadata metadata.Reader

	// Concurrency bounds parallel chain reads; defaults to defaultConcurrency.
	Concurrency int
}

// New creates a new Engine.
func New(l ledger.Reader, m metadata.Reader) *Engine {
	return &Engine{Ledger: l, Metadata: m}
}

// Result is a full reconciliation outcome. Listings are in ascending id
// order. FailedIDs lists ids whose chain read failed; such an id also appears
// in Listings (marked Partial) when a metadata record could stand in.
type Result struct {
	Listings  []models.Listing `json:"listings"`
	FailedIDs []uint64         `json:"failedIds,omitempty"`
}

// Reconcile scans ids 1..count and merges each visible chain record with its
// metadata. A metadata snapshot failure aborts the whole scan; per-id chain
// read failures only degrade it. Cancelling ctx discards all partial work.
func (e *Engine) Reconcile(ctx context.Context) (*Result, error) {
	count, err := e.Ledger.GetListingCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing count: %w", err)
	}

	records, err := e.Metadata.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot metadata store: %w", err)
	}
	byID := make(map[uint64]*models.MetadataRecord, len(records))
	for i := range records {
		byID[records[i].ListingID] = &records[i]
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	// Slots are indexed by listing id; each goroutine owns exactly one slot,
	// so no locking is needed. Output order comes from the slot order, not
	// from call completion order.
	slots := make([]*models.Listing, count+1)
	failed := make([]bool, count+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for id := uint64(1); id <= count; id++ {
		g.Go(func() error {
			chain, err := e.Ledger.GetListing(gctx, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed[id] = true
				if meta, ok := byID[id]; ok {
					l := metadataOnly(meta)
					slots[id] = &l
				}
				return nil
			}

			// An empty name means the slot was never used.
			if chain.Name == "" {
				return nil
			}

			l := Merge(chain, byID[id])
			slots[id] = &l
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for id := uint64(1); id <= count; id++ {
		if slots[id] != nil {
			result.Listings = append(result.Listings, *slots[id])
		}
		if failed[id] {
			result.FailedIDs = append(result.FailedIDs, id)
		}
	}
	sort.Slice(result.FailedIDs, func(i, j int) bool { return result.FailedIDs[i] < result.FailedIDs[j] })

	return result, nil
}

// ReconcileOne merges a single listing. This is the explicit "reconcile now"
// call after an orchestrator reports success.
func (e *Engine) ReconcileOne(ctx context.Context, id uint64) (*models.Listing, error) {
	chain, err := e.Ledger.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing %d: %w", id, err)
	}
	if chain.Name == "" {
		return nil, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}

	meta, err := e.Metadata.GetListing(ctx, id)
	if err != nil && !errors.Is(err, metadata.ErrNotFound) {
		return nil, fmt.Errorf("failed to read metadata for listing %d: %w", id, err)
	}

	l := Merge(chain, meta)
	return &l, nil
}

// Merge builds the reconciled listing. Chain fields win wherever both sides
// have a value, except the two documented staleness windows: a sold/buyer
// already recorded off-chain surfaces before a stale chain read catches up,
// and name/description prefer the editable metadata copy.
func Merge(chain *models.ChainListing, meta *models.MetadataRecord) models.Listing {
	l := models.Listing{
		ListingID: chain.ID,
		Name:      chain.Name,
		Price:     chain.Price.String(),
		Seller:    chain.Seller.Hex(),
		Sold:      chain.Sold,
	}
	l.Description = chain.Description

	if chain.HasBuyer() {
		l.Buyer = chain.Buyer.Hex()
	}

	if meta == nil {
		return l
	}

	if meta.Name != "" {
		l.Name = meta.Name
	}
	if meta.Description != "" {
		l.Description = meta.Description
	}
	if l.Buyer == "" && meta.Buyer != "" {
		l.Buyer = meta.Buyer
	}
	// The chain's sold=true is authoritative; metadata's sold=true covers the
	// window between a confirmed purchase and the next chain read.
	l.Sold = chain.Sold || meta.Sold

	l.ImageData = meta.ImageData
	l.ImageURL = meta.ImageURL
	l.MetadataHash = meta.MetadataHash

	return l
}

// metadataOnly builds the partial stand-in served when the chain read for an
// id failed but a metadata record exists.
func metadataOnly(meta *models.MetadataRecord) models.Listing {
	return models.Listing{
		ListingID:    meta.ListingID,
		Name:         meta.Name,
		Description:  meta.Description,
		Price:        meta.Price,
		Seller:       meta.Seller,
		Buyer:        meta.Buyer,
		Sold:         meta.Sold,
		ImageData:    meta.ImageData,
		ImageURL:     meta.ImageURL,
		MetadataHash: meta.MetadataHash,
		Partial:      true,
	}
}
