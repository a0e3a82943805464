// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv is the literature-index client: a paced, paginated reader
// of the arXiv Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const (
	// DefaultPageSize is the number of entries requested per page.
	DefaultPageSize = 100

	// DefaultRateLimit is 1 request per second, per arXiv API etiquette.
	DefaultRateLimit = 1.0

	// DefaultTimeout bounds each page request.
	DefaultTimeout = 30 * time.Second

	// maxFeedBytes caps how much of a response body is parsed.
	maxFeedBytes = 10 << 20
)

// Config holds the client settings. Zero fields take the defaults above.
type Config struct {
	Timeout   time.Duration
	RateLimit float64
	PageSize  int
	UserAgent string
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.UserAgent == "" {
		c.UserAgent = "paper-radar/0.1"
	}
}

// Client queries the arXiv API. Requests are paced by a token-bucket rate
// limiter shared across all calls on the client.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// Search retrieves up to maxResults entries for query, paging through the
// feed in submission-date-descending order. A short page ends the
// iteration early.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Entry, error) {
	if query == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		maxResults = c.cfg.PageSize
	}

	var entries []Entry
	for start := 0; start < maxResults; {
		pageSize := c.cfg.PageSize
		if remaining := maxResults - start; remaining < pageSize {
			pageSize = remaining
		}

		page, err := c.fetchPage(ctx, query, start, pageSize)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		start += len(page)
		if len(page) < pageSize {
			break
		}
	}

	if len(entries) > maxResults {
		entries = entries[:maxResults]
	}
	return entries, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, start, pageSize int) ([]Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"search_query": {query},
		"start":        {strconv.Itoa(start)},
		"max_results":  {strconv.Itoa(pageSize)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed Feed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return feed.Entries, nil
}
