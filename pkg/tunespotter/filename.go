package tunespotter

import (
	"fmt"
	"strings"
	"unicode"
)

const maxTitleRunes = 50

// sanitizeTitle strips characters that are unsafe in a filename and limits
// the length so descriptive names stay manageable.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	clean := strings.TrimRight(b.String(), " ")
	runes := []rune(clean)
	if len(runes) > maxTitleRunes {
		clean = string(runes[:maxTitleRunes])
	}
	if clean == "" {
		clean = "audio"
	}
	return clean
}

// timeTag renders seconds as a filename-safe time marker, e.g. 90 -> "1m30s"
// and 3723 -> "1h02m03s".
func timeTag(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%dh%02dm%02ds", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
}

// SegmentFilename builds the descriptive filename for one cut window.
func SegmentFilename(title string, w SampleWindow, totalDurationSec int) string {
	clean := sanitizeTitle(title)
	end := w.StartSec + w.LengthSec
	switch {
	case w.StartSec == 0 && end >= totalDurationSec:
		return clean + "_full.mp3"
	case end >= totalDurationSec:
		return fmt.Sprintf("%s_from_%s.mp3", clean, timeTag(w.StartSec))
	default:
		return fmt.Sprintf("%s_%s-%s.mp3", clean, timeTag(w.StartSec), timeTag(end))
	}
}
