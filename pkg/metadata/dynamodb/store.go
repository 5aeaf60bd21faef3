package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/chris/onchain-marketplace/pkg/metadata"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
// Tests mock this interface instead of the concrete client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

const (
	// listingsGSI orders all records under one partition by creation time,
	// giving ListListings its newest-first order without a table scan.
	listingsGSI       = "gsi1pk-created_at-index"
	listingsPartition = "LISTING_METADATA"
)

// Store implements the metadata.Store interface using AWS DynamoDB.
type Store struct {
	Client    DynamoDBAPI
	TableName string

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// New creates a new Store.
func New(client DynamoDBAPI, tableName string) *Store {
	return &Store{
		Client:    client,
		TableName: tableName,
		Now:       time.Now,
	}
}

// Make sure we conform to the interface
var _ metadata.Store = (*Store)(nil)

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
