package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration errors that must abort the run before
// any fetch happens.
var ErrConfig = errors.New("invalid digest configuration")

// Built-in sentiment word lists, used when the configuration file does
// not provide its own.
var defaultPositiveWords = []string{
	"wins", "award", "growth", "record", "approves", "success",
	"surge", "raises", "backs", "confirms", "expands", "appoints",
}

var defaultNegativeWords = []string{
	"fraud", "scandal", "probe", "lawsuit", "ban", "cuts",
	"warning", "fall", "drop", "decline", "sacked", "fined",
	"charged", "collapse", "sanction", "risk",
}

// Loader handles loading and validation of the digest configuration
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the configuration file, merges blocklist phrases from the
// BLOCKLIST_PHRASES environment variable, applies defaults and
// validates the result.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrConfig, l.path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, l.path, err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, err
	}

	slog.Debug("Digest configuration loaded",
		"path", l.path,
		"clients", len(config.Clients),
		"blocklist", len(config.Blocklist))

	return &config, nil
}

func (l *Loader) setDefaults(config *Config) {
	if len(config.Sentiment.Positive) == 0 {
		config.Sentiment.Positive = defaultPositiveWords
	}
	if len(config.Sentiment.Negative) == 0 {
		config.Sentiment.Negative = defaultNegativeWords
	}

	envPhrases := splitPhrases(os.Getenv("BLOCKLIST_PHRASES"))
	config.Blocklist = dedupePhrases(append(config.Blocklist, envPhrases...))
}

func (l *Loader) validate(config *Config) error {
	if len(config.Clients) == 0 {
		return fmt.Errorf("%w: at least one client is required", ErrConfig)
	}

	seen := make(map[string]bool)
	for i, client := range config.Clients {
		if client.Name == "" {
			return fmt.Errorf("%w: client at index %d has no name", ErrConfig, i)
		}
		if seen[client.Name] {
			return fmt.Errorf("%w: duplicate client name: %s", ErrConfig, client.Name)
		}
		seen[client.Name] = true

		if len(client.Aliases) == 0 {
			return fmt.Errorf("%w: client %q has no aliases", ErrConfig, client.Name)
		}
		for _, alias := range client.Aliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("%w: client %q has an empty alias", ErrConfig, client.Name)
			}
		}
	}

	return nil
}

func splitPhrases(value string) []string {
	var phrases []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			phrases = append(phrases, trimmed)
		}
	}
	return phrases
}

// dedupePhrases removes case-insensitive duplicates while preserving
// the order of first occurrence.
func dedupePhrases(phrases []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, phrase := range phrases {
		lower := strings.ToLower(phrase)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		unique = append(unique, phrase)
	}
	return unique
}
