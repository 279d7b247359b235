// ABOUTME: Domain-level sentinel errors for the flyer ingestion pipeline
// ABOUTME: These errors are used with errors.Is() and errors.As() for error type checking
package domain

import (
	"errors"
	"fmt"
)

// Flyer-related errors
var (
	// ErrNoRenderableContent indicates the tile grid resolved to zero tiles
	ErrNoRenderableContent = errors.New("flyer has no renderable content")

	// ErrNoTilesFetched indicates every tile of a stitched tier failed to download
	ErrNoTilesFetched = errors.New("no tiles fetched")

	// ErrNoPages indicates rendering produced nothing to upload
	ErrNoPages = errors.New("no pages rendered")
)

// External service errors
var (
	// ErrMetadataUnavailable indicates the upstream flyer listing could not be read
	ErrMetadataUnavailable = errors.New("flyer metadata unavailable")

	// ErrUnexpectedStatus indicates a non-2xx response from an upstream service
	ErrUnexpectedStatus = errors.New("unexpected upstream status")

	// ErrUploadFailed indicates image hosting rejected an upload after all retries
	ErrUploadFailed = errors.New("page upload failed")

	// ErrModelUnavailable indicates the extraction model could not be reached
	ErrModelUnavailable = errors.New("extraction model unavailable")

	// ErrModelOverloaded indicates the extraction model returned 429
	ErrModelOverloaded = errors.New("extraction model overloaded")
)

// Validation errors
var (
	// ErrInvalidZipCode indicates a ZIP that is not five digits after sanitizing
	ErrInvalidZipCode = errors.New("invalid zip code")

	// ErrInvalidDeal indicates an extracted deal failed validation
	ErrInvalidDeal = errors.New("invalid deal")
)

// Job tracking errors
var (
	// ErrJobNotFound indicates no status is recorded for the requested job or ZIP
	ErrJobNotFound = errors.New("job not found")
)

// DecodeError is returned when a model response does not contain a decodable
// JSON array of deals. Callers treat it as "zero deals for this page".
type DecodeError struct {
	Reason  string
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode model output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode model output: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
