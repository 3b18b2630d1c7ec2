package parsers

import (
	"regexp"
	"strings"
)

// SplitSegments partitions a transcript into reasoning segments. Every
// case-insensitive occurrence of any cue phrase closes the current segment
// and starts a new one. Segments are trimmed of surrounding whitespace and
// empty segments are dropped, so consecutive cues or cues at the edges of
// the transcript never produce empty entries. With no cues the whole
// transcript is a single segment.
func SplitSegments(transcript string, cues []string) []string {
	if transcript == "" {
		return nil
	}
	if len(cues) == 0 {
		return []string{transcript}
	}

	quoted := make([]string, len(cues))
	for i, cue := range cues {
		quoted[i] = regexp.QuoteMeta(cue)
	}
	re := regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))

	var segments []string
	last := 0
	for _, m := range re.FindAllStringIndex(transcript, -1) {
		if seg := strings.TrimSpace(transcript[last:m[0]]); seg != "" {
			segments = append(segments, seg)
		}
		last = m[1]
	}
	if seg := strings.TrimSpace(transcript[last:]); seg != "" {
		segments = append(segments, seg)
	}
	return segments
}
