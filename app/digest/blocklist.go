package digest

import "strings"

// Blocked reports whether the text contains any of the configured
// forbidden phrases, case-insensitively. Any single match blocks.
func Blocked(text string, phrases []string) bool {
	if len(phrases) == 0 {
		return false
	}

	folded := fold(text)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(folded, fold(phrase)) {
			return true
		}
	}
	return false
}
