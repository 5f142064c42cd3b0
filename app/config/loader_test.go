package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "digest.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
clients:
  - name: Acme Legal
    aliases: ["Acme Legal", "Acme"]
    context_keywords: ["law", "court"]
  - name: Initech
    aliases: ["Initech"]
blocklist:
  - "sponsored post"
sentiment:
  positive: ["wins", "award"]
  negative: ["lawsuit", "fined"]
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected valid config, got error: %v", err)
	}

	if len(config.Clients) != 2 {
		t.Errorf("Expected 2 clients, got %d", len(config.Clients))
	}
	if config.Clients[0].Name != "Acme Legal" {
		t.Errorf("Expected first client 'Acme Legal', got %q", config.Clients[0].Name)
	}
	if len(config.Clients[0].ContextKeywords) != 2 {
		t.Errorf("Expected 2 context keywords, got %d", len(config.Clients[0].ContextKeywords))
	}
	if len(config.Clients[1].ContextKeywords) != 0 {
		t.Errorf("Expected no context keywords for Initech, got %v", config.Clients[1].ContextKeywords)
	}
	if len(config.Blocklist) != 1 || config.Blocklist[0] != "sponsored post" {
		t.Errorf("Unexpected blocklist: %v", config.Blocklist)
	}
	if len(config.Sentiment.Positive) != 2 || len(config.Sentiment.Negative) != 2 {
		t.Errorf("Unexpected sentiment word lists: %+v", config.Sentiment)
	}
}

func TestLoad_DefaultWordLists(t *testing.T) {
	path := writeConfig(t, `
clients:
  - name: Acme
    aliases: ["Acme"]
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected valid config, got error: %v", err)
	}

	if len(config.Sentiment.Positive) == 0 {
		t.Error("Expected built-in positive word list when none configured")
	}
	if len(config.Sentiment.Negative) == 0 {
		t.Error("Expected built-in negative word list when none configured")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yml")).Load()
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig, got %v", err)
	}
}

func TestLoad_NoClients(t *testing.T) {
	path := writeConfig(t, `blocklist: ["spam"]`)

	_, err := NewLoader(path).Load()
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for empty roster, got %v", err)
	}
}

func TestLoad_EmptyAliases(t *testing.T) {
	path := writeConfig(t, `
clients:
  - name: Acme
    aliases: []
`)

	_, err := NewLoader(path).Load()
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for client without aliases, got %v", err)
	}
}

func TestLoad_DuplicateClientNames(t *testing.T) {
	path := writeConfig(t, `
clients:
  - name: Acme
    aliases: ["Acme"]
  - name: Acme
    aliases: ["Acme Corp"]
`)

	_, err := NewLoader(path).Load()
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for duplicate client names, got %v", err)
	}
}

func TestLoad_BlocklistFromEnvironment(t *testing.T) {
	t.Setenv("BLOCKLIST_PHRASES", "press release, Sponsored Post ,press release")

	path := writeConfig(t, `
clients:
  - name: Acme
    aliases: ["Acme"]
blocklist:
  - "sponsored post"
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected valid config, got error: %v", err)
	}

	// "Sponsored Post" duplicates the configured phrase case-insensitively
	// and the repeated env phrase collapses too.
	if len(config.Blocklist) != 2 {
		t.Fatalf("Expected 2 blocklist phrases, got %d: %v", len(config.Blocklist), config.Blocklist)
	}
	if config.Blocklist[0] != "sponsored post" || config.Blocklist[1] != "press release" {
		t.Errorf("Unexpected blocklist order: %v", config.Blocklist)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "clients: [unclosed")

	_, err := NewLoader(path).Load()
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for invalid YAML, got %v", err)
	}
}
