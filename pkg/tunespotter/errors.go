package tunespotter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeFormat reports a time spec that is not MM:SS or HH:MM:SS.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidRange reports an end before start, or a start beyond the
	// media duration.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrExtractionFailed reports that every sample window failed
	// extraction. It is distinct from an empty success so callers can tell
	// "tool unavailable" from "no music found".
	ErrExtractionFailed = errors.New("all sample windows failed extraction")

	// ErrMissingCredential reports an unconfigured recognition credential.
	// This is a configuration error, not a recognition failure.
	ErrMissingCredential = errors.New("recognition API token not configured")
)

// RetrievalKind classifies failures of the media retrieval collaborator.
type RetrievalKind int

const (
	RetrievalNetworkError RetrievalKind = iota
	RetrievalUnsupportedSource
	RetrievalNoStreamFound
)

func (k RetrievalKind) String() string {
	switch k {
	case RetrievalNetworkError:
		return "network error"
	case RetrievalUnsupportedSource:
		return "unsupported source"
	case RetrievalNoStreamFound:
		return "no stream found"
	default:
		return "unknown"
	}
}

// RetrievalError wraps a media retrieval failure with its classification.
type RetrievalError struct {
	Kind RetrievalKind
	URL  string
	Err  error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("media retrieval (%s) for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// NewRetrievalError builds a classified retrieval error.
func NewRetrievalError(kind RetrievalKind, url string, err error) *RetrievalError {
	return &RetrievalError{Kind: kind, URL: url, Err: err}
}
