package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/chris/onchain-marketplace/pkg/metadata/dynamodb"
	"github.com/chris/onchain-marketplace/pkg/models"
	"github.com/chris/onchain-marketplace/pkg/repair"
)

var worker *repair.Worker

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	metadataTable := os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME")
	if metadataTable == "" {
		log.Fatal("DYNAMODB_LISTINGS_TABLE_NAME environment variable not set")
	}

	store := dynamodb.New(awsdynamodb.NewFromConfig(cfg), metadataTable)
	worker = repair.NewWorker(store, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// HandleRequest processes SQS messages and retries the metadata writes they
// describe. Returning an error makes SQS redeliver the batch, which is the
// retry loop; tasks are idempotent by listing id so redelivery is safe.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing repair message %s", message.MessageId)

		var task models.RepairTask
		if err := json.Unmarshal([]byte(message.Body), &task); err != nil {
			log.Printf("ERROR: failed to unmarshal repair task from SQS message %s: %v", message.MessageId, err)
			return err
		}

		if err := worker.Process(ctx, &task); err != nil {
			log.Printf("ERROR: failed to apply repair task %s: %v", task.ID, err)
			return err
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
