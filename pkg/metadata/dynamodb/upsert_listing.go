package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
)

// UpsertListing creates or replaces the metadata record for rec.ListingID.
// Only the presentation fields are written; sold and buyer are owned by
// MarkSold and survive re-upserts, which keeps the operation idempotent and
// safe as the recovery path after a partial creation.
func (s *Store) UpsertListing(ctx context.Context, rec *models.MetadataRecord) (*models.MetadataRecord, error) {
	if err := metadata.ValidateUpsert(rec); err != nil {
		return nil, err
	}

	key, err := attributevalue.MarshalMap(map[string]uint64{"listing_id": rec.ListingID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing id: %w", err)
	}

	now := s.now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	sets := []string{
		"#name = :name",
		"description = :description",
		"price = :price",
		"seller = :seller",
		"gsi1pk = :pk",
		"updated_at = :now",
		"created_at = if_not_exists(created_at, :now)",
		"sold = if_not_exists(sold, :not_sold)",
	}
	values := map[string]types.AttributeValue{
		":name":        &types.AttributeValueMemberS{Value: rec.Name},
		":description": &types.AttributeValueMemberS{Value: rec.Description},
		":price":       &types.AttributeValueMemberS{Value: rec.Price},
		":seller":      &types.AttributeValueMemberS{Value: rec.Seller},
		":pk":          &types.AttributeValueMemberS{Value: listingsPartition},
		":now":         nowAV,
		":not_sold":    &types.AttributeValueMemberBOOL{Value: false},
	}

	// Exactly one image variant is stored; the other is removed so a
	// re-upsert that switches variants does not leave both behind.
	var removes []string
	if rec.ImageData != "" {
		sets = append(sets, "image_data = :image_data")
		values[":image_data"] = &types.AttributeValueMemberS{Value: rec.ImageData}
		removes = append(removes, "image_url")
	} else {
		sets = append(sets, "image_url = :image_url")
		values[":image_url"] = &types.AttributeValueMemberS{Value: rec.ImageURL}
		removes = append(removes, "image_data")
	}

	if rec.MetadataHash != "" {
		sets = append(sets, "metadata_hash = :metadata_hash")
		values[":metadata_hash"] = &types.AttributeValueMemberS{Value: rec.MetadataHash}
	}

	expr := "SET " + strings.Join(sets, ", ") + " REMOVE " + strings.Join(removes, ", ")

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       key,
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  map[string]string{"#name": "name"},
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert listing metadata: %w", err)
	}

	var stored models.MetadataRecord
	if err := attributevalue.UnmarshalMap(result.Attributes, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored record: %w", err)
	}

	return &stored, nil
}
