package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// batchWriteMax is the DynamoDB BatchWriteItem request limit.
	batchWriteMax = 25

	// batchDeleteAttempts bounds re-submission of unprocessed deletes.
	batchDeleteAttempts = 5
)

// ClearAll deletes every metadata record. This is the administrative cache
// reset for test environments; nothing on the chain is touched.
func (s *Store) ClearAll(ctx context.Context) error {
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(s.TableName),
			ProjectionExpression: aws.String("listing_id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return fmt.Errorf("failed to scan metadata table: %w", err)
		}

		for start := 0; start < len(result.Items); start += batchWriteMax {
			end := start + batchWriteMax
			if end > len(result.Items) {
				end = len(result.Items)
			}

			writes := make([]types.WriteRequest, 0, end-start)
			for _, item := range result.Items[start:end] {
				writes = append(writes, types.WriteRequest{
					DeleteRequest: &types.DeleteRequest{
						Key: map[string]types.AttributeValue{"listing_id": item["listing_id"]},
					},
				})
			}

			if err := s.batchDelete(ctx, writes); err != nil {
				return err
			}
		}

		if result.LastEvaluatedKey == nil {
			return nil
		}
		startKey = result.LastEvaluatedKey
	}
}

// batchDelete submits one delete batch and re-submits whatever comes back in
// UnprocessedItems. BatchWriteItem can succeed while processing only part of
// the batch, so a nil error alone does not mean the deletes landed.
func (s *Store) batchDelete(ctx context.Context, writes []types.WriteRequest) error {
	for attempt := 0; attempt < batchDeleteAttempts; attempt++ {
		result, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.TableName: writes},
		})
		if err != nil {
			return fmt.Errorf("failed to delete metadata batch: %w", err)
		}

		writes = result.UnprocessedItems[s.TableName]
		if len(writes) == 0 {
			return nil
		}
	}

	return fmt.Errorf("%d metadata deletes left unprocessed after %d attempts", len(writes), batchDeleteAttempts)
}
