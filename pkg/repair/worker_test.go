package repair

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chris/onchain-marketplace/pkg/metadata"
	metadatamocks "github.com/chris/onchain-marketplace/pkg/metadata/mocks"
	"github.com/chris/onchain-marketplace/pkg/models"
)

func TestProcess(t *testing.T) {
	buyer := "0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"

	t.Run("Upsert Task", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		rec := &models.MetadataRecord{ListingID: 4, Name: "Vintage Camera"}
		mockMeta.On("UpsertListing", mock.Anything, rec).Return(rec, nil)

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:        uuid.New().String(),
			Kind:      models.RepairUpsert,
			ListingID: 4,
			Record:    rec,
		})

		assert.NoError(t, err)
		mockMeta.AssertExpectations(t)
	})

	t.Run("Upsert Task Without Record", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:   uuid.New().String(),
			Kind: models.RepairUpsert,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "has no record")
		mockMeta.AssertNotCalled(t, "UpsertListing")
	})

	t.Run("Upsert Fails Again", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		rec := &models.MetadataRecord{ListingID: 4, Name: "Vintage Camera"}
		mockMeta.On("UpsertListing", mock.Anything, rec).Return(nil, errors.New("dynamodb unavailable"))

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:     uuid.New().String(),
			Kind:   models.RepairUpsert,
			Record: rec,
		})

		// The error makes the queue redeliver the task.
		assert.Error(t, err)
	})

	t.Run("MarkSold Task", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		mockMeta.On("MarkSold", mock.Anything, uint64(2), buyer).Return(&models.MetadataRecord{ListingID: 2, Sold: true}, nil)

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:        uuid.New().String(),
			Kind:      models.RepairMarkSold,
			ListingID: 2,
			Buyer:     buyer,
		})

		assert.NoError(t, err)
		mockMeta.AssertExpectations(t)
	})

	t.Run("MarkSold Without Record Is Dropped", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		mockMeta.On("MarkSold", mock.Anything, uint64(2), buyer).Return(nil, metadata.ErrNotFound)

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:        uuid.New().String(),
			Kind:      models.RepairMarkSold,
			ListingID: 2,
			Buyer:     buyer,
		})

		// No redelivery: the chain already records the sale.
		assert.NoError(t, err)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		mockMeta := new(metadatamocks.Store)
		worker := NewWorker(mockMeta, nil)

		err := worker.Process(context.Background(), &models.RepairTask{
			ID:   uuid.New().String(),
			Kind: models.RepairKind("REPAINT"),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kind")
	})
}
