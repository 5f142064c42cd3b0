package freshrss

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pressday/coverage-digest/app/digest"
)

// ErrAuth marks an authentication rejection from the aggregator, so
// the caller can surface a credentials message rather than a generic
// fetch failure.
var ErrAuth = errors.New("authentication rejected by FreshRSS")

const readingListPath = "/api/greader.php/reader/api/0/stream/contents/reading-list"

// Client fetches recent items from a FreshRSS instance through its
// Google Reader compatible API. One request per run, no retries.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	username    string
	apiPassword string
	userAgent   string
	timeout     time.Duration
}

type FetchOptions struct {
	LookbackHours float64
	MaxItems      int
	Label         string
}

func NewClient(baseURL, username, apiPassword, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		username:    username,
		apiPassword: apiPassword,
		userAgent:   userAgent,
		timeout:     timeout,
	}
}

// Fetch issues the single authenticated request for the configured
// lookback window and returns the items inside it, most recent first.
// Items without a title or a usable link are skipped.
func (c *Client) Fetch(ctx context.Context, opts FetchOptions) ([]digest.Item, error) {
	if opts.LookbackHours <= 0 {
		return nil, fmt.Errorf("lookback window must be greater than zero, got %v", opts.LookbackHours)
	}

	now := time.Now().UTC()
	oldest := now.Add(-time.Duration(opts.LookbackHours * float64(time.Hour)))

	data, err := c.request(ctx, opts.MaxItems, oldest.Unix())
	if err != nil {
		return nil, err
	}

	var stream streamResponse
	if err := json.Unmarshal(data, &stream); err != nil {
		return nil, fmt.Errorf("failed to parse reading list response: %w", err)
	}

	items := make([]digest.Item, 0, len(stream.Items))
	skipped := 0
	for _, raw := range stream.Items {
		if opts.Label != "" && !hasLabel(raw.Categories, opts.Label) {
			continue
		}

		title := strings.TrimSpace(raw.Title)
		link := chooseLink(raw)
		if title == "" || link == "" {
			skipped++
			continue
		}

		published := publishedTime(raw, now)
		if published.Before(oldest) {
			continue
		}

		items = append(items, digest.Item{
			Title:       title,
			Link:        link,
			Source:      resolveSource(raw, link),
			PublishedAt: published,
			Snippet:     raw.Summary.Content,
		})
	}

	slog.Debug("Reading list fetched",
		"total", len(stream.Items),
		"returned", len(items),
		"skipped", skipped,
		"label", opts.Label)

	return items, nil
}

func (c *Client) request(ctx context.Context, maxItems int, oldestTs int64) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	apiURL := c.baseURL + readingListPath
	params := url.Values{}
	params.Set("n", strconv.Itoa(maxItems))
	params.Set("ot", strconv.FormatInt(oldestTs, 10))

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.apiPassword)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: HTTP %d", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// chooseLink prefers the canonical href, then the first alternate,
// then the plain link field.
func chooseLink(item streamItem) string {
	if len(item.Canonical) > 0 && item.Canonical[0].Href != "" {
		return strings.TrimSpace(item.Canonical[0].Href)
	}
	if len(item.Alternate) > 0 && item.Alternate[0].Href != "" {
		return strings.TrimSpace(item.Alternate[0].Href)
	}
	return strings.TrimSpace(item.Link)
}

func resolveSource(item streamItem, link string) string {
	if item.Origin.Title != "" {
		return item.Origin.Title
	}
	if parsed, err := url.Parse(link); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return "Unknown Source"
}

func publishedTime(item streamItem, fallback time.Time) time.Time {
	ts := item.Published
	if ts == 0 {
		ts = item.Updated
	}
	if ts == 0 {
		return fallback
	}
	return time.Unix(ts, 0).UTC()
}

const labelPrefix = "user/-/label/"

func hasLabel(categories []string, label string) bool {
	normalized := label
	if !strings.HasPrefix(normalized, labelPrefix) {
		normalized = labelPrefix + normalized
	}
	for _, category := range categories {
		if category == normalized {
			return true
		}
	}
	return false
}
