package reconcile

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	ledgermocks "github.com/chris/onchain-marketplace/pkg/ledger/mocks"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	metadatamocks "github.com/chris/onchain-marketplace/pkg/metadata/mocks"
	"github.com/chris/onchain-marketplace/pkg/models"
)

var (
	seller = common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")
	buyer  = common.HexToAddress("0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")
)

func chainListing(id uint64, name string) *models.ChainListing {
	return &models.ChainListing{
		ID:          id,
		Name:        name,
		Description: "chain description",
		Price:       big.NewInt(1000),
		Seller:      seller,
	}
}

func TestReconcile(t *testing.T) {
	t.Run("Merges Chain And Metadata", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(3), nil)
		mockMeta.On("ListListings", mock.Anything).Return([]models.MetadataRecord{
			{ListingID: 3, Name: "Brass Compass", Description: "edited", ImageURL: "https://example.com/3.png"},
			{ListingID: 1, Name: "Vintage Camera", ImageData: "data:image/png;base64,AAAA"},
		}, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)
		mockLedger.On("GetListing", mock.Anything, uint64(2)).Return(chainListing(2, "chain only"), nil)
		mockLedger.On("GetListing", mock.Anything, uint64(3)).Return(chainListing(3, "compass"), nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Listings, 3)
		assert.Empty(t, result.FailedIDs)

		// Ascending id order regardless of read completion order.
		assert.Equal(t, uint64(1), result.Listings[0].ListingID)
		assert.Equal(t, uint64(2), result.Listings[1].ListingID)
		assert.Equal(t, uint64(3), result.Listings[2].ListingID)

		// Metadata name wins; chain copy fills in when metadata has none.
		assert.Equal(t, "Vintage Camera", result.Listings[0].Name)
		assert.Equal(t, "chain only", result.Listings[1].Name)
		assert.Equal(t, "edited", result.Listings[2].Description)
		assert.Equal(t, "https://example.com/3.png", result.Listings[2].ImageURL)

		// Chain price and seller are authoritative everywhere.
		assert.Equal(t, "1000", result.Listings[0].Price)
		assert.Equal(t, seller.Hex(), result.Listings[0].Seller)
		mockLedger.AssertExpectations(t)
		mockMeta.AssertExpectations(t)
	})

	t.Run("Unsold Listing Has No Buyer", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(1), nil)
		mockMeta.On("ListListings", mock.Anything).Return(nil, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Listings, 1)
		assert.Empty(t, result.Listings[0].Buyer)
		assert.False(t, result.Listings[0].Sold)
	})

	t.Run("Metadata Sold Surfaces Before Chain Catches Up", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(1), nil)
		mockMeta.On("ListListings", mock.Anything).Return([]models.MetadataRecord{
			{ListingID: 1, Name: "Vintage Camera", Sold: true, Buyer: buyer.Hex()},
		}, nil)
		// Stale chain read: still unsold.
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Listings, 1)
		assert.True(t, result.Listings[0].Sold)
		assert.Equal(t, buyer.Hex(), result.Listings[0].Buyer)
	})

	t.Run("Chain Buyer Wins", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		sold := chainListing(1, "camera")
		sold.Sold = true
		sold.Buyer = buyer

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(1), nil)
		mockMeta.On("ListListings", mock.Anything).Return([]models.MetadataRecord{
			{ListingID: 1, Name: "Vintage Camera", Sold: true, Buyer: "0x0000000000000000000000000000000000000bad"},
		}, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(sold, nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, buyer.Hex(), result.Listings[0].Buyer)
	})

	t.Run("Skips Unused Slots", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(2), nil)
		mockMeta.On("ListListings", mock.Anything).Return(nil, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(&models.ChainListing{ID: 1, Price: big.NewInt(0)}, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(2)).Return(chainListing(2, "camera"), nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Listings, 1)
		assert.Equal(t, uint64(2), result.Listings[0].ListingID)
	})

	t.Run("Chain Read Failure Degrades To Partial", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(3), nil)
		mockMeta.On("ListListings", mock.Anything).Return([]models.MetadataRecord{
			{ListingID: 2, Name: "Brass Compass", Price: "500", Seller: seller.Hex()},
		}, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)
		mockLedger.On("GetListing", mock.Anything, uint64(2)).Return(nil, errors.New("rpc timeout"))
		mockLedger.On("GetListing", mock.Anything, uint64(3)).Return(nil, errors.New("rpc timeout"))

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []uint64{2, 3}, result.FailedIDs)

		// Id 2 has a metadata stand-in; id 3 has nothing to serve.
		assert.Len(t, result.Listings, 2)
		assert.Equal(t, uint64(2), result.Listings[1].ListingID)
		assert.True(t, result.Listings[1].Partial)
		assert.Equal(t, "Brass Compass", result.Listings[1].Name)
		assert.False(t, result.Listings[0].Partial)
	})

	t.Run("Count Read Failure Aborts", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(0), errors.New("rpc down"))

		_, err := engine.Reconcile(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read listing count")
		mockMeta.AssertNotCalled(t, "ListListings")
	})

	t.Run("Metadata Snapshot Failure Aborts", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(2), nil)
		mockMeta.On("ListListings", mock.Anything).Return(nil, errors.New("dynamodb unavailable"))

		_, err := engine.Reconcile(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to snapshot metadata store")
		mockLedger.AssertNotCalled(t, "GetListing")
	})

	t.Run("Cancellation Discards Partial Work", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)
		engine.Concurrency = 1

		ctx, cancel := context.WithCancel(context.Background())

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(5), nil)
		mockMeta.On("ListListings", mock.Anything).Return(nil, nil)
		mockLedger.On("GetListing", mock.Anything, uint64(1)).Run(func(args mock.Arguments) {
			cancel()
		}).Return(nil, context.Canceled)
		mockLedger.On("GetListing", mock.Anything, mock.Anything).Maybe().Return(nil, context.Canceled)

		result, err := engine.Reconcile(ctx)

		assert.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})

	t.Run("Empty Ledger", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListingCount", mock.Anything).Return(uint64(0), nil)
		mockMeta.On("ListListings", mock.Anything).Return(nil, nil)

		result, err := engine.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, result.Listings)
		assert.Empty(t, result.FailedIDs)
	})
}

func TestReconcileOne(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)
		mockMeta.On("GetListing", mock.Anything, uint64(1)).Return(&models.MetadataRecord{
			ListingID: 1, Name: "Vintage Camera", ImageData: "data:image/png;base64,AAAA",
		}, nil)

		listing, err := engine.ReconcileOne(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Vintage Camera", listing.Name)
		assert.Equal(t, "data:image/png;base64,AAAA", listing.ImageData)
	})

	t.Run("Missing Metadata Is Tolerated", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(chainListing(1, "camera"), nil)
		mockMeta.On("GetListing", mock.Anything, uint64(1)).Return(nil, metadata.ErrNotFound)

		listing, err := engine.ReconcileOne(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "camera", listing.Name)
	})

	t.Run("Unused Slot Is Not Found", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListing", mock.Anything, uint64(9)).Return(&models.ChainListing{ID: 9, Price: big.NewInt(0)}, nil)

		_, err := engine.ReconcileOne(context.Background(), 9)

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		mockMeta.AssertNotCalled(t, "GetListing")
	})

	t.Run("Chain Read Fails", func(t *testing.T) {
		mockLedger := new(ledgermocks.Client)
		mockMeta := new(metadatamocks.Store)
		engine := New(mockLedger, mockMeta)

		mockLedger.On("GetListing", mock.Anything, uint64(1)).Return(nil, errors.New("rpc timeout"))

		_, err := engine.ReconcileOne(context.Background(), 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read listing 1")
	})
}
