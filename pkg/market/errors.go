package market

import "fmt"

// ValidationError reports malformed input rejected before anything was
// submitted to either store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SubmissionError reports that the ledger rejected the call before execution.
// No state changed anywhere.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s submission failed: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ExecutionError reports a transaction that confirmed but reverted. Chain
// state is unchanged and no metadata write was attempted.
type ExecutionError struct {
	Op        string
	ListingID uint64
	TxHash    string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s reverted (listing %d, tx %s): %v", e.Op, e.ListingID, e.TxHash, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ConfirmationTimeoutError reports that the confirmation wait hit the
// caller's deadline. The transaction may still confirm later, so resubmitting
// risks a duplicate listing or purchase and is never done automatically.
type ConfirmationTimeoutError struct {
	Op     string
	TxHash string
	Err    error
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("%s confirmation timed out (tx %s, outcome unknown): %v", e.Op, e.TxHash, e.Err)
}

func (e *ConfirmationTimeoutError) Unwrap() error { return e.Err }

// IDDerivationError reports a creation whose chain transaction confirmed but
// whose assigned id could not be recovered, from the receipt event or the
// count fallback. No metadata was written, and an id-keyed retry is not
// possible until the id is re-derived from the transaction hash.
type IDDerivationError struct {
	TxHash string
	Err    error
}

func (e *IDDerivationError) Error() string {
	return fmt.Sprintf("could not derive listing id for confirmed tx %s: %v", e.TxHash, e.Err)
}

func (e *IDDerivationError) Unwrap() error { return e.Err }

// MetadataWriteError reports a partial success: the chain phase confirmed but
// the metadata write failed. It carries the assigned listing id so the caller
// can retry just the idempotent metadata write. Enqueued reports whether a
// repair task was queued for asynchronous retry.
type MetadataWriteError struct {
	ListingID uint64
	TxHash    string
	Enqueued  bool
	Err       error
}

func (e *MetadataWriteError) Error() string {
	return fmt.Sprintf("metadata write failed for listing %d (chain tx %s confirmed): %v", e.ListingID, e.TxHash, e.Err)
}

func (e *MetadataWriteError) Unwrap() error { return e.Err }
