package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/onchain-marketplace/pkg/models"
)

// ErrNotFound is returned when no metadata record exists for a listing id.
var ErrNotFound = errors.New("listing metadata not found")

// ErrMissingField is returned when an upsert omits a required display field.
var ErrMissingField = errors.New("missing required metadata field")

// ErrMissingImage is returned when an upsert carries neither inline image data nor an image URL.
var ErrMissingImage = errors.New("image data or image URL is required")

// ErrInvalidListingID is returned when a listing id is zero.
var ErrInvalidListingID = errors.New("listing id must be a positive integer")

// Reader defines the read side of the metadata store.
type Reader interface {
	// GetListing retrieves the metadata record for a listing id.
	GetListing(ctx context.Context, id uint64) (*models.MetadataRecord, error)

	// ListListings retrieves all metadata records, newest first.
	ListListings(ctx context.Context) ([]models.MetadataRecord, error)
}

// Writer defines the mutating side of the metadata store. Both writes are
// idempotent by listing id so a retry after a partial failure is always safe.
type Writer interface {
	// UpsertListing creates or replaces the metadata record for
	// rec.ListingID and returns the stored record.
	UpsertListing(ctx context.Context, rec *models.MetadataRecord) (*models.MetadataRecord, error)

	// MarkSold flags the record as sold and records the buyer. Returns
	// ErrNotFound when no record exists for the id.
	MarkSold(ctx context.Context, id uint64, buyer string) (*models.MetadataRecord, error)
}

// Admin defines the destructive administrative surface. It is intended for
// non-production resets only and must sit behind an explicit opt-in guard.
type Admin interface {
	// ClearAll deletes every metadata record. Irreversible. This clears the
	// off-chain cache only; the chain itself cannot be cleared, so this is
	// cache invalidation, not listing deletion.
	ClearAll(ctx context.Context) error
}

// Store combines all metadata store operations.
type Store interface {
	Reader
	Writer
	Admin
}

// ValidateUpsert rejects an upsert request missing any required display field
// or carrying no image at all.
func ValidateUpsert(rec *models.MetadataRecord) error {
	if rec.ListingID == 0 {
		return ErrInvalidListingID
	}

	for _, f := range []struct{ name, value string }{
		{"name", rec.Name},
		{"description", rec.Description},
		{"price", rec.Price},
		{"seller", rec.Seller},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if rec.ImageData == "" && rec.ImageURL == "" {
		return ErrMissingImage
	}

	return nil
}
