package api

import "time"

// JSON response types for the preview endpoints.

type DigestResponse struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Clients     []ClientCoverage `json:"clients"`
	Totals      map[string]int   `json:"totals"`
}

type ClientCoverage struct {
	Name    string         `json:"name"`
	Matches []MatchPayload `json:"matches"`
}

type MatchPayload struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}
