package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pressday/coverage-digest/app/digest"
)

// Source fetches items directly from RSS/Atom feeds, for running the
// digest without an aggregator in front. Output is shaped exactly like
// the aggregator's: most recent first, windowed and capped.
type Source struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
	timeout    time.Duration
}

type FetchOptions struct {
	URLs          []string
	LookbackHours float64
	MaxItems      int
}

func NewSource(userAgent string, timeout time.Duration) *Source {
	return &Source{
		httpClient: &http.Client{},
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch retrieves every configured feed with a single attempt each.
// Any feed failure fails the whole fetch; no partial batches.
func (s *Source) Fetch(ctx context.Context, opts FetchOptions) ([]digest.Item, error) {
	if opts.LookbackHours <= 0 {
		return nil, fmt.Errorf("lookback window must be greater than zero, got %v", opts.LookbackHours)
	}

	now := time.Now().UTC()
	oldest := now.Add(-time.Duration(opts.LookbackHours * float64(time.Hour)))

	var items []digest.Item
	for _, feedURL := range opts.URLs {
		feedItems, err := s.fetchFeed(ctx, feedURL, oldest, now)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", feedURL, err)
		}
		items = append(items, feedItems...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}

	slog.Debug("Feeds fetched", "feeds", len(opts.URLs), "items", len(items))

	return items, nil
}

func (s *Source) fetchFeed(ctx context.Context, feedURL string, oldest, now time.Time) ([]digest.Item, error) {
	data, err := s.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]digest.Item, 0, len(feed.Items))
	for _, raw := range feed.Items {
		if raw.Title == "" || raw.Link == "" {
			continue
		}

		published := now
		if raw.PublishedParsed != nil {
			published = raw.PublishedParsed.UTC()
		} else if raw.UpdatedParsed != nil {
			published = raw.UpdatedParsed.UTC()
		}
		if published.Before(oldest) {
			continue
		}

		items = append(items, digest.Item{
			Title:       raw.Title,
			Link:        raw.Link,
			Source:      feed.Title,
			PublishedAt: published,
			Snippet:     raw.Description,
		})
	}

	return items, nil
}

func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
