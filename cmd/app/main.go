package main

import (
	"context"
	"log"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/chris/onchain-marketplace/pkg/handlers"
	"github.com/chris/onchain-marketplace/pkg/ledger"
	"github.com/chris/onchain-marketplace/pkg/market"
	"github.com/chris/onchain-marketplace/pkg/metadata/dynamodb"
	"github.com/chris/onchain-marketplace/pkg/middleware"
	"github.com/chris/onchain-marketplace/pkg/reconcile"
	"github.com/chris/onchain-marketplace/pkg/repair"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rpcURL := os.Getenv("LEDGER_RPC_URL")
	contractAddr := os.Getenv("MARKETPLACE_CONTRACT_ADDRESS")
	privateKey := os.Getenv("SIGNER_PRIVATE_KEY")
	chainIDRaw := os.Getenv("CHAIN_ID")
	if rpcURL == "" || contractAddr == "" || privateKey == "" || chainIDRaw == "" {
		log.Fatal("LEDGER_RPC_URL, MARKETPLACE_CONTRACT_ADDRESS, SIGNER_PRIVATE_KEY and CHAIN_ID must be set")
	}

	chainID, ok := new(big.Int).SetString(chainIDRaw, 10)
	if !ok {
		log.Fatalf("CHAIN_ID is not a valid integer: %s", chainIDRaw)
	}

	ledgerClient, err := ledger.Dial(rpcURL, common.HexToAddress(contractAddr))
	if err != nil {
		log.Fatalf("failed to connect to the ledger: %v", err)
	}

	signer, err := ledger.NewSigner(privateKey, chainID)
	if err != nil {
		log.Fatalf("failed to build signing identity: %v", err)
	}

	// AWS Session
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	metadataTable := os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME")
	if metadataTable == "" {
		log.Fatal("DYNAMODB_LISTINGS_TABLE_NAME environment variable not set")
	}
	store := dynamodb.New(awsdynamodb.NewFromConfig(cfg), metadataTable)

	// SQS repair queue is optional; without it recovery is manual retry.
	var repairScheduler repair.Scheduler
	if queueURL := os.Getenv("SQS_REPAIR_QUEUE_URL"); queueURL != "" {
		repairScheduler = repair.NewSQSScheduler(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_REPAIR_QUEUE_URL not set, metadata repair queue disabled")
	}

	orchestrator := market.New(ledgerClient, store, repairScheduler, logger)
	engine := reconcile.New(ledgerClient, store)

	handler := handlers.NewApiHandler(engine, orchestrator, store, signer)
	handler.AllowAdminClear = strings.EqualFold(os.Getenv("ADMIN_CLEAR_ENABLED"), "true")

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Mount("/", handler.Routes())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
