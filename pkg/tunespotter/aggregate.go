package tunespotter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Aggregate reduces all per-window outcomes to a single verdict.
// segmentsAttempted is the total number of windows selected, including
// windows that failed extraction and therefore produced no outcome.
//
// Selection is a deterministic reduction: the Success outcome with the
// highest confidence wins, and an exact tie goes to the smallest window
// index (earliest in the media), regardless of which segment finished
// recognition first.
func Aggregate(outcomes []RecognitionOutcome, segmentsAttempted int) *RecognitionVerdict {
	succeeded := 0
	var best *RecognitionOutcome
	for i := range outcomes {
		o := &outcomes[i]
		if o.Status != StatusSuccess {
			continue
		}
		succeeded++
		if best == nil ||
			o.Confidence > best.Confidence ||
			(o.Confidence == best.Confidence && o.WindowIndex < best.WindowIndex) {
			best = o
		}
	}

	if best == nil {
		// When every produced outcome is a service error the request did
		// not get a single real recognition attempt, so the verdict is an
		// error rather than "no music found".
		if len(outcomes) > 0 && allErrors(outcomes) {
			return errorVerdict(
				fmt.Sprintf("recognition failed for all %d segment(s): %s", segmentsAttempted, outcomes[0].ErrMessage),
				segmentsAttempted,
			)
		}
		return &RecognitionVerdict{
			ID:                uuid.NewString(),
			Status:            StatusNotFound,
			Message:           fmt.Sprintf("no match found across %d sampled segment(s)", segmentsAttempted),
			SegmentsAttempted: segmentsAttempted,
			SegmentsSucceeded: 0,
			Timestamp:         time.Now().UTC(),
		}
	}

	return &RecognitionVerdict{
		ID:                uuid.NewString(),
		Status:            StatusSuccess,
		Title:             best.Title,
		Artist:            best.Artist,
		Album:             best.Album,
		ReleaseDate:       best.ReleaseDate,
		Confidence:        best.Confidence,
		SegmentsAttempted: segmentsAttempted,
		SegmentsSucceeded: succeeded,
		Timestamp:         time.Now().UTC(),
	}
}

func allErrors(outcomes []RecognitionOutcome) bool {
	for _, o := range outcomes {
		if o.Status != StatusError {
			return false
		}
	}
	return true
}

// errorVerdict short-circuits a request to a terminal Error verdict, used
// when extraction failed for every window before recognition could run.
func errorVerdict(message string, segmentsAttempted int) *RecognitionVerdict {
	return &RecognitionVerdict{
		ID:                uuid.NewString(),
		Status:            StatusError,
		Message:           message,
		SegmentsAttempted: segmentsAttempted,
		SegmentsSucceeded: 0,
		Timestamp:         time.Now().UTC(),
	}
}
