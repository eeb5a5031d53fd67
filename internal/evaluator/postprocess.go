package evaluator

import "strings"

const (
	openMarker  = "<response>"
	closeMarker = "</response>"
)

// ExtractAnswer pulls the delimited final answer out of a raw completion.
// It takes the text after the last opening marker and before the first
// closing marker that follows, trimmed. Missing or malformed markers never
// fail: the trimmed input comes back unchanged.
func ExtractAnswer(raw string) string {
	s := raw
	if i := strings.LastIndex(s, openMarker); i >= 0 {
		s = s[i+len(openMarker):]
	}
	if i := strings.Index(s, closeMarker); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
