package speech

import "strings"

// SplitSentences derives a segment sequence from a flat transcript when the
// provider returned no timed chunks. Splits on sentence-ending punctuation
// and drops empty fragments.
func SplitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	segments := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" {
			continue
		}
		segments = append(segments, trimmed)
	}
	return segments
}
