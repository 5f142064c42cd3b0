package digest

import (
	"strings"
	"unicode"

	"github.com/pressday/coverage-digest/app/config"
)

// Label is a coarse sentiment tag.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Sentiment labels text by comparing whole-word occurrence counts
// against the configured word lists. Strict majority wins; ties and
// absence of signal are neutral. Deterministic, no side effects.
func Sentiment(text string, words config.Sentiment) Label {
	positive := foldSet(words.Positive)
	negative := foldSet(words.Negative)

	positiveCount := 0
	negativeCount := 0
	for _, token := range tokenize(text) {
		if positive[token] {
			positiveCount++
		}
		if negative[token] {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return LabelPositive
	case negativeCount > positiveCount:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// tokenize splits folded text into words, treating any non-letter,
// non-digit rune as a separator.
func tokenize(text string) []string {
	return strings.FieldsFunc(fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func foldSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[fold(word)] = true
	}
	return set
}
