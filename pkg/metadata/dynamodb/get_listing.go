package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// GetListing retrieves the metadata record for a listing id.
func (s *Store) GetListing(ctx context.Context, id uint64) (*models.MetadataRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]uint64{"listing_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing metadata: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("listing %d: %w", id, metadata.ErrNotFound)
	}

	var rec models.MetadataRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata record: %w", err)
	}

	return &rec, nil
}
