package tunespotter

import "time"

// OutcomeStatus is the terminal state of a recognition attempt.
type OutcomeStatus string

const (
	StatusSuccess  OutcomeStatus = "success"
	StatusNotFound OutcomeStatus = "not_found"
	StatusError    OutcomeStatus = "error"
)

// NominalConfidence is assigned to every successful identification. The
// recognition service reports no calibrated score, so this is an estimate,
// not a true probability.
const NominalConfidence = 0.85

// MediaReference describes a remote media item, obtained once per request
// from the retrieval collaborator's metadata probe.
type MediaReference struct {
	SourceURL        string // Original media URL
	Title            string // Media title as reported by the source
	TotalDurationSec int    // Full media length in seconds
}

// TimeRange is a user-supplied span within the media. EndSec is only
// meaningful when HasEnd is set.
type TimeRange struct {
	StartSec int
	EndSec   int
	HasEnd   bool
}

// SampleWindow is one contiguous span selected for independent sampling.
// Index is assigned at selection time, ascending by start, and is the
// canonical tie-break key for aggregation. It must never be derived from
// completion order.
type SampleWindow struct {
	Index     int
	StartSec  int
	LengthSec int
}

// AudioSegment is the audio payload obtained for one window. It is owned by
// the pipeline invocation that created it and discarded after dispatch.
type AudioSegment struct {
	Window   SampleWindow
	Data     []byte
	Filename string
}

// Identification is the raw result from the recognition collaborator.
type Identification struct {
	Matched     bool // false means an explicit no-match response
	Title       string
	Artist      string
	Album       string
	ReleaseDate string
}

// RecognitionOutcome is the normalized result of recognizing one segment.
type RecognitionOutcome struct {
	WindowIndex int
	Status      OutcomeStatus
	Title       string
	Artist      string
	Album       string
	ReleaseDate string
	Confidence  float64
	ErrMessage  string
}

// RecognitionVerdict is the single aggregated result returned to the
// caller. It is created once per request and never mutated afterward.
type RecognitionVerdict struct {
	ID                string
	Status            OutcomeStatus
	Title             string
	Artist            string
	Album             string
	ReleaseDate       string
	Confidence        float64
	Message           string
	SegmentsAttempted int
	SegmentsSucceeded int
	Timestamp         time.Time
}
