package tunespotter

import "context"

// Service is the public surface of the recognition core.
type Service interface {
	// RecognizeClip identifies an uploaded audio clip directly, without
	// any sampling.
	RecognizeClip(ctx context.Context, data []byte, filename string) (*RecognitionVerdict, error)

	// RecognizeURL samples a remote media source and aggregates the
	// per-window recognition outcomes into one verdict. startSpec and
	// endSpec are optional MM:SS / HH:MM:SS strings.
	RecognizeURL(ctx context.Context, url, startSpec, endSpec string, broadSampling bool) (*RecognitionVerdict, error)

	// ExtractURL cuts a single audio segment from a remote media source
	// and returns it together with the probed media metadata.
	ExtractURL(ctx context.Context, url, startSpec, endSpec string) (*AudioSegment, *MediaReference, error)
}

// MediaFetcher is the media retrieval collaborator.
type MediaFetcher interface {
	// Probe resolves URL metadata without downloading the media.
	Probe(ctx context.Context, url string) (*MediaReference, error)

	// Open obtains the media audio once; windows are then cut from the
	// returned source. Failures are reported as *RetrievalError.
	Open(ctx context.Context, url string) (MediaSource, error)
}

// MediaSource is one downloaded media item, valid for the lifetime of a
// single request.
type MediaSource interface {
	// Cut returns the audio bytes for [startSec, startSec+lengthSec).
	Cut(ctx context.Context, startSec, lengthSec int) ([]byte, error)

	// Close releases the local copy.
	Close() error
}

// Recognizer is the fingerprint recognition collaborator. A nil error with
// Matched=false is an explicit no-match verdict; an error covers transport
// or service failures, including a missing credential.
type Recognizer interface {
	Identify(ctx context.Context, audio []byte, filename string) (*Identification, error)
}

// Logger is the minimal logging surface the core depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
