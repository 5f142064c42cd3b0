package digest

import (
	"strings"
	"time"

	"github.com/pressday/coverage-digest/app/config"
)

// Item is a single article as returned by a feed source. Immutable
// once fetched.
type Item struct {
	Title       string
	Link        string
	Source      string
	PublishedAt time.Time
	Snippet     string
}

// MatchText is the combined free text an item is matched against.
func (i Item) MatchText() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{i.Title, i.Source, i.Snippet} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Match is one item attributed to one client. An item matching several
// clients produces one Match per client, all sharing the same Item.
type Match struct {
	Item      Item
	Client    string
	Sentiment Label
	Key       string
}

// Result holds one run's digest: matches grouped by client name plus
// the set of canonical keys consumed by the run. Every configured
// client has an entry, empty or not.
type Result struct {
	ByClient map[string][]Match
	Keys     map[string]bool
	Clients  []config.Client
}

// TotalMatches counts matches across all clients.
func (r Result) TotalMatches() int {
	total := 0
	for _, matches := range r.ByClient {
		total += len(matches)
	}
	return total
}

// Empty reports whether the run produced no coverage at all.
func (r Result) Empty() bool {
	return r.TotalMatches() == 0
}
