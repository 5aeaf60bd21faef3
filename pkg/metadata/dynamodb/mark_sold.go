package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// MarkSold flags the record as sold and records the buyer. The condition on
// the key makes a missing record a distinct ErrNotFound instead of creating
// a half-empty one. Re-applying the same buyer is a no-op, so the SQS repair
// path can deliver the same task more than once.
func (s *Store) MarkSold(ctx context.Context, id uint64, buyer string) (*models.MetadataRecord, error) {
	if id == 0 {
		return nil, metadata.ErrInvalidListingID
	}

	key, err := attributevalue.MarshalMap(map[string]uint64{"listing_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing id: %w", err)
	}

	nowAV, err := attributevalue.Marshal(s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.TableName),
		Key:                 key,
		UpdateExpression:    aws.String("SET sold = :sold, buyer = :buyer, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(listing_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sold":  &types.AttributeValueMemberBOOL{Value: true},
			":buyer": &types.AttributeValueMemberS{Value: buyer},
			":now":   nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("listing %d: %w", id, metadata.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to mark listing %d sold: %w", id, err)
	}

	var rec models.MetadataRecord
	if err := attributevalue.UnmarshalMap(result.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored record: %w", err)
	}

	return &rec, nil
}
