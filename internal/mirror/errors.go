package mirror

import (
	"errors"
	"fmt"
)

var (
	// ErrFatalFetch marks a failed root document fetch. The run stops.
	ErrFatalFetch = errors.New("fatal fetch error")
	// ErrExtract marks a document that could not be parsed.
	ErrExtract = errors.New("extraction failed")
	// ErrWrite marks a filesystem failure while preparing the output root or
	// writing the serialized document.
	ErrWrite = errors.New("write failed")
)

// FetchError wraps the network failure of the root document fetch.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFatalFetch, e.Err} }

// AssetDownloadError records a single asset that could not be fetched or
// written. It never aborts a run.
type AssetDownloadError struct {
	URL       string
	LocalPath string
	Err       error
}

func (e *AssetDownloadError) Error() string {
	return fmt.Sprintf("download %s -> %s: %v", e.URL, e.LocalPath, e.Err)
}

func (e *AssetDownloadError) Unwrap() error { return e.Err }
