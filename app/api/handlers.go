package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pressday/coverage-digest/app/digest"
	"github.com/pressday/coverage-digest/app/render"
)

// FetchFunc produces one batch of items; the handler runs the full
// pipeline per request, so every preview reflects the live feed.
type FetchFunc func(ctx context.Context) ([]digest.Item, error)

type Handler struct {
	fetch        FetchFunc
	orchestrator *digest.Orchestrator
	location     *time.Location
	version      string
}

func NewHandler(fetch FetchFunc, orchestrator *digest.Orchestrator,
	location *time.Location, version string) *Handler {
	return &Handler{
		fetch:        fetch,
		orchestrator: orchestrator,
		location:     location,
		version:      version,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Time:    time.Now().In(h.location).Format(time.RFC3339),
	})
}

func (h *Handler) GetDigestHTML(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}

	body := render.HTML(result, time.Now().In(h.location))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func (h *Handler) GetDigestOPML(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}

	doc := render.OPML(result, time.Now().In(h.location))
	c.Data(http.StatusOK, "text/x-opml; charset=utf-8", []byte(doc))
}

func (h *Handler) GetDigestJSON(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}

	response := DigestResponse{
		GeneratedAt: time.Now().In(h.location),
		Totals: map[string]int{
			"matches": result.TotalMatches(),
			"items":   len(result.Keys),
		},
	}
	for _, client := range result.Clients {
		coverage := ClientCoverage{Name: client.Name, Matches: []MatchPayload{}}
		for _, match := range result.ByClient[client.Name] {
			coverage.Matches = append(coverage.Matches, MatchPayload{
				Title:       match.Item.Title,
				Link:        match.Item.Link,
				Source:      match.Item.Source,
				PublishedAt: match.Item.PublishedAt,
				Sentiment:   string(match.Sentiment),
			})
		}
		response.Clients = append(response.Clients, coverage)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) run(c *gin.Context) (digest.Result, bool) {
	items, err := h.fetch(c.Request.Context())
	if err != nil {
		slog.Error("Fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return digest.Result{}, false
	}

	return h.orchestrator.Run(items), true
}
