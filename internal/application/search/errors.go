package search

import "errors"

// ErrInvalidRequest marks malformed client input (non-numeric pagination,
// inverted price range). Not retryable; the caller must fix the request.
var ErrInvalidRequest = errors.New("invalid search request")

// ErrStorage marks a failed or timed-out query execution. Transient; safe to
// retry with backoff.
var ErrStorage = errors.New("listing storage unavailable")
