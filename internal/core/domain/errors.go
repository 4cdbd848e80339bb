package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates a required setting is absent.
	// Surfaced at startup; never retried.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrUnsupportedType indicates a blob whose extension no normaliser
	// handles. Such blobs are skipped, not failed.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrSourceUnavailable indicates a container list or download
	// failure. Propagated to the caller for retry.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrModelCall indicates an embedding, completion or judge call
	// failed. Propagated; no fallback answer is fabricated.
	ErrModelCall = errors.New("model call failed")

	// ErrIndexWrite indicates a search index upsert or delete failed.
	// The document's state record is not advanced, so retry is safe.
	ErrIndexWrite = errors.New("index write failed")
)
