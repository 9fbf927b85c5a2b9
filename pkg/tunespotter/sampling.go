package tunespotter

// Sampling strategy constants. Broad sampling only pays off on media long
// enough to hold several distinct songs, hence the duration floor.
const (
	// DefaultWindowLengthSec is the fixed length of a sampled window when
	// the user did not give an explicit range.
	DefaultWindowLengthSec = 30

	// broadSamplingMinDurationSec is the minimum media length before broad
	// sampling produces more than the default window.
	broadSamplingMinDurationSec = 180

	// broadSamplingWideDurationSec is the length past which broad sampling
	// doubles its probe count.
	broadSamplingWideDurationSec = 600
)

var (
	broadFractions     = []float64{0, 0.5}
	broadFractionsWide = []float64{0, 0.25, 0.5, 0.75}
)

// PlanWindows produces the ordered list of sample windows for one request.
// Precedence: an explicit range with both endpoints wins, then broad
// sampling on long media, then a start-only hint, then a single window from
// the beginning. Window indexes are assigned here, ascending by start time,
// and are carried through the pipeline unchanged.
func PlanWindows(totalDurationSec int, rng *TimeRange, broadSampling bool, windowLengthSec int) []SampleWindow {
	if windowLengthSec <= 0 {
		windowLengthSec = DefaultWindowLengthSec
	}

	if rng != nil && rng.HasEnd {
		return []SampleWindow{{
			Index:     0,
			StartSec:  rng.StartSec,
			LengthSec: rng.EndSec - rng.StartSec,
		}}
	}

	if broadSampling && totalDurationSec > broadSamplingMinDurationSec {
		fractions := broadFractions
		if totalDurationSec > broadSamplingWideDurationSec {
			fractions = broadFractionsWide
		}
		windows := make([]SampleWindow, 0, len(fractions))
		for i, f := range fractions {
			start := int(f * float64(totalDurationSec))
			windows = append(windows, SampleWindow{
				Index:     i,
				StartSec:  start,
				LengthSec: clampLength(windowLengthSec, start, totalDurationSec),
			})
		}
		return windows
	}

	start := 0
	if rng != nil {
		start = rng.StartSec
	}
	return []SampleWindow{{
		Index:     0,
		StartSec:  start,
		LengthSec: clampLength(windowLengthSec, start, totalDurationSec),
	}}
}

// clampLength keeps a window inside the media: it never extends past
// totalSec.
func clampLength(length, start, totalSec int) int {
	if remaining := totalSec - start; remaining < length {
		return remaining
	}
	return length
}
