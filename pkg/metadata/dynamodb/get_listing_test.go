package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/metadata/dynamodb/mocks"
	"github.com/chris/onchain-marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetListing(t *testing.T) {
	rec := &models.MetadataRecord{
		ListingID:   3,
		Name:        "Vintage Camera",
		Description: "A working film camera",
		Price:       "1000000000000000000",
		Seller:      "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1",
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		recAV, _ := attributevalue.MarshalMap(rec)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recAV}, nil)

		result, err := store.GetListing(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, rec.ListingID, result.ListingID)
		assert.Equal(t, rec.Name, result.Name)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetListing(context.Background(), 3)

		assert.Error(t, err)
		assert.ErrorIs(t, err, metadata.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("GetItem Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TableName: "listings"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		_, err := store.GetListing(context.Background(), 3)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get listing metadata")
		mockClient.AssertExpectations(t)
	})
}
