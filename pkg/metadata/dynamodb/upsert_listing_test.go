package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/metadata/dynamodb/mocks"
	"github.com/chris/onchain-marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpsertListing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := &models.MetadataRecord{
		ListingID:   1,
		Name:        "Vintage Camera",
		Description: "A working film camera",
		Price:       "1000000000000000000",
		Seller:      "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1",
		ImageData:   "data:image/png;base64,AAAA",
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings", Now: func() time.Time { return now }}

		stored := *rec
		stored.CreatedAt = now
		stored.UpdatedAt = now
		storedAV, _ := attributevalue.MarshalMap(stored)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{Attributes: storedAV}, nil)

		result, err := store.UpsertListing(context.Background(), rec)

		assert.NoError(t, err)
		assert.Equal(t, rec.Name, result.Name)
		assert.Equal(t, now, result.CreatedAt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Writes Only One Image Variant", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings", Now: func() time.Time { return now }}

		urlRec := *rec
		urlRec.ImageData = ""
		urlRec.ImageURL = "https://example.com/camera.png"

		storedAV, _ := attributevalue.MarshalMap(urlRec)
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			expr := *input.UpdateExpression
			return assert.Contains(t, expr, "image_url = :image_url") &&
				assert.Contains(t, expr, "REMOVE image_data")
		})).Return(&dynamodb.UpdateItemOutput{Attributes: storedAV}, nil)

		result, err := store.UpsertListing(context.Background(), &urlRec)

		assert.NoError(t, err)
		assert.Equal(t, urlRec.ImageURL, result.ImageURL)
		mockClient.AssertExpectations(t)
	})

	t.Run("Preserves Sold Flag", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings", Now: func() time.Time { return now }}

		// A record that was marked sold before the re-upsert keeps its flag.
		stored := *rec
		stored.Sold = true
		stored.Buyer = "0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"
		storedAV, _ := attributevalue.MarshalMap(stored)
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return assert.Contains(t, *input.UpdateExpression, "sold = if_not_exists(sold, :not_sold)")
		})).Return(&dynamodb.UpdateItemOutput{Attributes: storedAV}, nil)

		result, err := store.UpsertListing(context.Background(), rec)

		assert.NoError(t, err)
		assert.True(t, result.Sold)
		assert.Equal(t, stored.Buyer, result.Buyer)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Field", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		bad := *rec
		bad.Description = ""

		_, err := store.UpsertListing(context.Background(), &bad)

		assert.Error(t, err)
		assert.ErrorIs(t, err, metadata.ErrMissingField)
		mockClient.AssertNotCalled(t, "UpdateItem")
	})

	t.Run("Missing Image", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		bad := *rec
		bad.ImageData = ""
		bad.ImageURL = ""

		_, err := store.UpsertListing(context.Background(), &bad)

		assert.Error(t, err)
		assert.ErrorIs(t, err, metadata.ErrMissingImage)
		mockClient.AssertNotCalled(t, "UpdateItem")
	})

	t.Run("Invalid Listing ID", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		bad := *rec
		bad.ListingID = 0

		_, err := store.UpsertListing(context.Background(), &bad)

		assert.Error(t, err)
		assert.ErrorIs(t, err, metadata.ErrInvalidListingID)
		mockClient.AssertNotCalled(t, "UpdateItem")
	})

	t.Run("UpdateItem Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings", Now: func() time.Time { return now }}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("update item failed"))

		_, err := store.UpsertListing(context.Background(), rec)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert listing metadata")
		mockClient.AssertExpectations(t)
	})
}
