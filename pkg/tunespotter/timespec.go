package tunespotter

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeSpec converts a human-entered time string into total seconds.
// Accepted forms are "MM:SS" and "HH:MM:SS". Fields are non-negative
// integers with no range cap: minutes or seconds beyond 59 roll up
// arithmetically, so "90:00" parses to 5400.
func ParseTimeSpec(spec string) (int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q is not MM:SS or HH:MM:SS", ErrInvalidTimeFormat, spec)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q has a non-numeric or negative field", ErrInvalidTimeFormat, spec)
		}
		total = total*60 + n
	}
	return total, nil
}

// ValidateRange checks a resolved range against the media duration. endSec
// is ignored unless hasEnd is set.
func ValidateRange(startSec, endSec int, hasEnd bool, totalDurationSec int) error {
	if hasEnd && endSec <= startSec {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidRange)
	}
	if startSec >= totalDurationSec {
		return fmt.Errorf("%w: start time %ds is beyond the media duration %ds", ErrInvalidRange, startSec, totalDurationSec)
	}
	return nil
}

// ResolveRange parses optional start/end specs into a TimeRange validated
// against the media duration. Empty specs yield defaults: a missing start
// is 0, a missing end leaves the range open. When both specs are empty the
// result is nil, meaning the caller gave no time hints at all.
func ResolveRange(startSpec, endSpec string, totalDurationSec int) (*TimeRange, error) {
	if startSpec == "" && endSpec == "" {
		return nil, nil
	}

	rng := &TimeRange{}
	if startSpec != "" {
		start, err := ParseTimeSpec(startSpec)
		if err != nil {
			return nil, err
		}
		rng.StartSec = start
	}
	if endSpec != "" {
		end, err := ParseTimeSpec(endSpec)
		if err != nil {
			return nil, err
		}
		rng.EndSec = end
		rng.HasEnd = true
	}

	if err := ValidateRange(rng.StartSec, rng.EndSec, rng.HasEnd, totalDurationSec); err != nil {
		return nil, err
	}
	return rng, nil
}
