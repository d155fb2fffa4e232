// Package safety implements the crisis-language override.
//
// The check is a plain case-insensitive substring match over a fixed list.
// It is a conservative trigger, not an exhaustive detector: phrasings that
// avoid every listed keyword are not caught, and that is accepted.
package safety

import "strings"

var crisisKeywords = []string{
	"suicide",
	"self harm",
	"overdose",
	"hurt myself",
	"kill myself",
	"can't go on",
}

// Keywords returns a copy of the crisis keyword list.
func Keywords() []string {
	return append([]string(nil), crisisKeywords...)
}

// Check reports whether utterance contains any crisis keyword.
func Check(utterance string) bool {
	_, ok := Match(utterance)
	return ok
}

// Match returns the first keyword found in utterance, for audit logging.
func Match(utterance string) (string, bool) {
	lower := strings.ToLower(utterance)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
