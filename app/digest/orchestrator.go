package digest

import (
	"log/slog"

	"github.com/pressday/coverage-digest/app/config"
)

// Orchestrator runs the matching pipeline over one batch of fetched
// items. It holds no state between runs.
type Orchestrator struct {
	config *config.Config
}

func NewOrchestrator(config *config.Config) *Orchestrator {
	return &Orchestrator{config: config}
}

// Run processes items in their fetched order (most recent first):
// canonical-key dedup with first occurrence winning, then blocklist
// suppression, then client matching with sentiment tagging. The
// returned Result always maps every configured client, so an empty
// run is a valid outcome rather than an error.
func (o *Orchestrator) Run(items []Item) Result {
	result := Result{
		ByClient: make(map[string][]Match, len(o.config.Clients)),
		Keys:     make(map[string]bool),
		Clients:  o.config.Clients,
	}
	for _, client := range o.config.Clients {
		result.ByClient[client.Name] = []Match{}
	}

	duplicateCount := 0
	blockedCount := 0
	matchedItemCount := 0

	for _, item := range items {
		key := CanonicalKey(item.Link)
		if result.Keys[key] {
			duplicateCount++
			continue
		}
		result.Keys[key] = true

		text := item.MatchText()
		if Blocked(text, o.config.Blocklist) {
			blockedCount++
			continue
		}

		matched := MatchClients(text, o.config.Clients)
		if len(matched) == 0 {
			continue
		}
		matchedItemCount++

		sentiment := Sentiment(text, o.config.Sentiment)
		for _, client := range matched {
			result.ByClient[client.Name] = append(result.ByClient[client.Name], Match{
				Item:      item,
				Client:    client.Name,
				Sentiment: sentiment,
				Key:       key,
			})
		}
	}

	slog.Info("Digest built",
		"total", len(items),
		"duplicates", duplicateCount,
		"blocked", blockedCount,
		"matched", matchedItemCount,
		"matches", result.TotalMatches())

	return result
}
