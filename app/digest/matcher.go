package digest

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pressday/coverage-digest/app/config"
)

// fold lowercases text for case-insensitive comparison using Unicode
// case folding rather than simple lowercasing.
func fold(s string) string {
	return cases.Fold().String(s)
}

// MatchClients evaluates every configured client against the item
// text and returns those that match. No short-circuit: one item may
// match several clients independently.
func MatchClients(text string, clients []config.Client) []config.Client {
	folded := fold(text)

	var matched []config.Client
	for _, client := range clients {
		if clientMatches(folded, client) {
			matched = append(matched, client)
		}
	}
	return matched
}

// clientMatches expects already-folded text. An alias hit qualifies
// the client unless context keywords are declared, in which case at
// least one keyword must also be present.
func clientMatches(folded string, client config.Client) bool {
	aliasHit := false
	for _, alias := range client.Aliases {
		if strings.Contains(folded, fold(alias)) {
			aliasHit = true
			break
		}
	}
	if !aliasHit {
		return false
	}

	if len(client.ContextKeywords) == 0 {
		return true
	}
	for _, keyword := range client.ContextKeywords {
		if strings.Contains(folded, fold(keyword)) {
			return true
		}
	}
	return false
}
