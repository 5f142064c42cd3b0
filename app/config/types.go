package config

// Config is the digest configuration: the client roster, the blocklist
// and the sentiment word lists. Loaded once per run, immutable after.
type Config struct {
	Clients   []Client  `yaml:"clients"`
	Blocklist []string  `yaml:"blocklist"`
	Sentiment Sentiment `yaml:"sentiment"`
}

// Client is a named entity to detect in coverage. Aliases are literal
// match strings; when ContextKeywords is non-empty an alias hit only
// counts if at least one keyword appears in the same text.
type Client struct {
	Name            string   `yaml:"name"`
	Aliases         []string `yaml:"aliases"`
	ContextKeywords []string `yaml:"context_keywords"`
}

// Sentiment holds the positive and negative word lists used for
// coarse sentiment labelling.
type Sentiment struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}
