package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/go-chi/chi/v5"

	"github.com/chris/onchain-marketplace/pkg/market"
	"github.com/chris/onchain-marketplace/pkg/metadata"
	"github.com/chris/onchain-marketplace/pkg/models"
	"github.com/chris/onchain-marketplace/pkg/reconcile"
)

// Reconciler is the engine surface the handlers need.
type Reconciler interface {
	Reconcile(ctx context.Context) (*reconcile.Result, error)
	ReconcileOne(ctx context.Context, id uint64) (*models.Listing, error)
}

// Marketplace is the orchestrator surface the handlers need.
type Marketplace interface {
	CreateListing(ctx context.Context, signer *bind.TransactOpts, in market.CreateListingInput) (*market.CreateListingResult, error)
	PurchaseListing(ctx context.Context, signer *bind.TransactOpts, id uint64) (*market.PurchaseResult, error)
}

// ApiHandler serves the marketplace HTTP API.
// It holds our application's dependencies: the reconciliation engine, the two
// orchestrators, the metadata store and the server's signing identity.
type ApiHandler struct {
	Engine   Reconciler
	Market   Marketplace
	Metadata metadata.Store

	// Signer is the identity passed explicitly into each orchestrator call.
	Signer *bind.TransactOpts

	// AllowAdminClear gates the destructive metadata reset; off by default.
	AllowAdminClear bool
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(engine Reconciler, mkt Marketplace, store metadata.Store, signer *bind.TransactOpts) *ApiHandler {
	return &ApiHandler{Engine: engine, Market: mkt, Metadata: store, Signer: signer}
}

// Routes mounts all marketplace endpoints.
func (h *ApiHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/listings", h.ListListings)
	r.Get("/listings/{id}", h.GetListing)
	r.Post("/listings", h.CreateListing)
	r.Post("/listings/{id}/purchase", h.PurchaseListing)
	r.Post("/listings/{id}/metadata", h.UpsertMetadata)
	r.Patch("/listings/{id}/sold", h.MarkSold)
	r.Delete("/admin/listings", h.ClearMetadata)
	return r
}

// ListListings serves the reconciled view of every listing.
func (h *ApiHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	result, err := h.Engine.Reconcile(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to reconcile listings: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetListing serves one reconciled listing.
func (h *ApiHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.Engine.ReconcileOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to reconcile listing: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

type createListingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // base units, decimal string
	ImageData   string `json:"imageData,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type partialSuccessResponse struct {
	// ListingID is omitted when the chain confirmed but the id could not be
	// derived; the tx hash is then the only handle on the listing.
	ListingID       uint64 `json:"listingId,omitempty"`
	TxHash          string `json:"txHash"`
	MetadataPending bool   `json:"metadataPending"`
	RepairEnqueued  bool   `json:"repairEnqueued"`
	Error           string `json:"error"`
}

// CreateListing runs the listing-creation orchestrator.
func (h *ApiHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	price, ok := new(big.Int).SetString(req.Price, 10)
	if !ok {
		http.Error(w, "price must be a base-unit integer string", http.StatusBadRequest)
		return
	}

	result, err := h.Market.CreateListing(r.Context(), h.Signer, market.CreateListingInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageData:   req.ImageData,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		// The listing confirmed but its id is unknown; there is no id to
		// retry against, so the response carries only the tx hash.
		var ide *market.IDDerivationError
		if errors.As(err, &ide) {
			writeJSON(w, http.StatusCreated, partialSuccessResponse{
				TxHash:          ide.TxHash,
				MetadataPending: true,
				Error:           ide.Err.Error(),
			})
			return
		}
		// A metadata failure after chain confirmation is still a created
		// listing; report it as a partial success carrying the assigned id.
		var mwe *market.MetadataWriteError
		if errors.As(err, &mwe) {
			writeJSON(w, http.StatusCreated, partialSuccessResponse{
				ListingID:       mwe.ListingID,
				TxHash:          mwe.TxHash,
				MetadataPending: true,
				RepairEnqueued:  mwe.Enqueued,
				Error:           mwe.Err.Error(),
			})
			return
		}
		writeOrchestrationError(w, err, "Failed to create listing")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// PurchaseListing runs the purchase orchestrator.
func (h *ApiHandler) PurchaseListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Market.PurchaseListing(r.Context(), h.Signer, id)
	if err != nil {
		var mwe *market.MetadataWriteError
		if errors.As(err, &mwe) {
			writeJSON(w, http.StatusOK, partialSuccessResponse{
				ListingID:       mwe.ListingID,
				TxHash:          mwe.TxHash,
				MetadataPending: true,
				RepairEnqueued:  mwe.Enqueued,
				Error:           mwe.Err.Error(),
			})
			return
		}
		writeOrchestrationError(w, err, "Failed to purchase listing")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type upsertMetadataRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Seller       string `json:"seller"`
	ImageData    string `json:"imageData,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	MetadataHash string `json:"metadataHash,omitempty"`
}

// UpsertMetadata is the direct idempotent metadata write. It exists as the
// manual recovery path after a partial creation: the same payload can be
// replayed until it lands.
func (h *ApiHandler) UpsertMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req upsertMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	stored, err := h.Metadata.UpsertListing(r.Context(), &models.MetadataRecord{
		ListingID:    id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Seller:       req.Seller,
		ImageData:    req.ImageData,
		ImageURL:     req.ImageURL,
		MetadataHash: req.MetadataHash,
	})
	if err != nil {
		if errors.Is(err, metadata.ErrMissingField) || errors.Is(err, metadata.ErrMissingImage) || errors.Is(err, metadata.ErrInvalidListingID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to upsert metadata: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

type markSoldRequest struct {
	Buyer string `json:"buyer"`
}

// MarkSold is the direct sale-flag write on the metadata store.
func (h *ApiHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req markSoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Buyer == "" {
		http.Error(w, "buyer is required", http.StatusBadRequest)
		return
	}

	rec, err := h.Metadata.MarkSold(r.Context(), id, req.Buyer)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			http.Error(w, "Listing metadata not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to mark listing sold: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// ClearMetadata wipes the metadata store. Guarded: real deployments must not
// expose this without the explicit opt-in.
func (h *ApiHandler) ClearMetadata(w http.ResponseWriter, r *http.Request) {
	if !h.AllowAdminClear {
		http.Error(w, "Administrative clear is disabled", http.StatusForbidden)
		return
	}

	if err := h.Metadata.ClearAll(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to clear metadata: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All listing metadata cleared"})
}

func pathID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("listing id must be a positive integer")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// writeOrchestrationError maps the orchestration error taxonomy onto HTTP
// status codes.
func writeOrchestrationError(w http.ResponseWriter, err error, prefix string) {
	var validationErr *market.ValidationError
	var submissionErr *market.SubmissionError
	var executionErr *market.ExecutionError
	var timeoutErr *market.ConfirmationTimeoutError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &executionErr):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusConflict)
	case errors.As(err, &timeoutErr):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusGatewayTimeout)
	case errors.As(err, &submissionErr):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusBadGateway)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusInternalServerError)
	}
}
