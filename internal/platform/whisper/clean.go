package whisper

import (
	"regexp"
	"strings"
)

var (
	// annotation matches whisper's sound annotations: "(keyboard clicking)",
	// "[BLANK_AUDIO]", "[Music]" and the like.
	annotation = regexp.MustCompile(`[\(\[][A-Za-z][A-Za-z_\s]*[\)\]]`)
	// timestamp matches a leading "[00:00:00.000 --> 00:00:03.000]".
	timestamp = regexp.MustCompile(`^\[[\d:.]+\s*-->\s*[\d:.]+\]`)
	spaces    = regexp.MustCompile(`\s+`)
)

// hallucinations are transcriptions whisper produces from silence.
var hallucinations = map[string]bool{
	"...":                     true,
	"you":                     true,
	"thank you.":              true,
	"thanks for watching!":    true,
	"thank you for watching.": true,
	"bye.":                    true,
	"the end.":                true,
}

// Clean strips timestamps, annotations and silence hallucinations from a
// transcription and trims the trailing full stop whisper adds to a phrase,
// so "Two onions." appends to the ingredient list as "Two onions".
func Clean(s string) string {
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	s = strings.TrimSpace(timestamp.ReplaceAllString(s, ""))
	s = annotation.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))

	if hallucinations[strings.ToLower(s)] {
		return ""
	}
	return strings.TrimSuffix(s, ".")
}
