package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chris/onchain-marketplace/pkg/models"
)

func TestValidateUpsert(t *testing.T) {
	valid := func() *models.MetadataRecord {
		return &models.MetadataRecord{
			ListingID:   1,
			Name:        "Vintage Camera",
			Description: "A working film camera",
			Price:       "1000",
			Seller:      "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1",
			ImageData:   "data:image/png;base64,AAAA",
		}
	}

	t.Run("Valid Record", func(t *testing.T) {
		assert.NoError(t, ValidateUpsert(valid()))
	})

	t.Run("Image URL Alone Is Enough", func(t *testing.T) {
		rec := valid()
		rec.ImageData = ""
		rec.ImageURL = "https://example.com/camera.png"

		assert.NoError(t, ValidateUpsert(rec))
	})

	t.Run("Zero Listing ID", func(t *testing.T) {
		rec := valid()
		rec.ListingID = 0

		assert.ErrorIs(t, ValidateUpsert(rec), ErrInvalidListingID)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		for _, tc := range []struct {
			field  string
			mutate func(*models.MetadataRecord)
		}{
			{"name", func(r *models.MetadataRecord) { r.Name = "" }},
			{"description", func(r *models.MetadataRecord) { r.Description = "" }},
			{"price", func(r *models.MetadataRecord) { r.Price = "" }},
			{"seller", func(r *models.MetadataRecord) { r.Seller = "" }},
		} {
			t.Run(tc.field, func(t *testing.T) {
				rec := valid()
				tc.mutate(rec)

				err := ValidateUpsert(rec)
				assert.ErrorIs(t, err, ErrMissingField)
				assert.Contains(t, err.Error(), tc.field)
			})
		}
	})

	t.Run("No Image At All", func(t *testing.T) {
		rec := valid()
		rec.ImageData = ""
		rec.ImageURL = ""

		assert.ErrorIs(t, ValidateUpsert(rec), ErrMissingImage)
	})
}
