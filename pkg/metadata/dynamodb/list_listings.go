package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/onchain-marketplace/pkg/models"
)

// ListListings retrieves all metadata records, newest first. Records share
// one GSI partition keyed on creation time, so the index order is the output
// order and pagination just follows LastEvaluatedKey.
func (s *Store) ListListings(ctx context.Context) ([]models.MetadataRecord, error) {
	var records []models.MetadataRecord
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.TableName),
			IndexName:              aws.String(listingsGSI),
			KeyConditionExpression: aws.String("gsi1pk = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: listingsPartition},
			},
			ScanIndexForward:  aws.Bool(false), // newest first
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query listing metadata: %w", err)
		}

		var page []models.MetadataRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata records: %w", err)
		}
		records = append(records, page...)

		if result.LastEvaluatedKey == nil {
			return records, nil
		}
		startKey = result.LastEvaluatedKey
	}
}
