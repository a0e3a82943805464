// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reputation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// reputationAPIBase is the Semantic Scholar graph API root. Declared as a
// var so tests can substitute an httptest server.
var reputationAPIBase = "https://api.semanticscholar.org/graph/v1"

// authorFields lists the metrics requested from the author detail endpoint.
const authorFields = "hIndex,paperCount,citationCount"

// ErrAuthorNotFound marks a well-formed empty search result. Callers cache
// it as a permanent miss so the same author is not queried again.
var ErrAuthorNotFound = errors.New("author not found")

// Client queries the author reputation service. Lookups are two-stage:
// a name search for the best-match author ID, then a detail request for
// the impact metrics.
type Client struct {
	// APIKey is an optional key sent as x-api-key for higher rate limits.
	APIKey string

	// Timeout bounds each HTTP request. Zero means 10 seconds.
	Timeout time.Duration

	// Policy is the shared retry policy. The zero value means the default.
	Policy httputil.Policy

	// UserAgent is sent with every request.
	UserAgent string
}

// newHTTPClient returns a fresh client handle. Each lookup gets its own so
// concurrent workers never contend on a shared connection pool.
func (c *Client) newHTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Lookup resolves name to an AuthorReputation with provenance
// freshly-queried. It returns ErrAuthorNotFound for an empty search
// result; any other failure (transport, non-2xx, malformed JSON) is
// returned as an error for the caller to degrade on.
func (c *Client) Lookup(ctx context.Context, name string) (types.AuthorReputation, error) {
	if name == "" {
		return types.AuthorReputation{}, ErrAuthorNotFound
	}
	hc := c.newHTTPClient()

	searchURL := fmt.Sprintf("%s/author/search?query=%s&limit=1", reputationAPIBase, url.QueryEscape(name))
	var search authorSearchResponse
	if err := c.getJSON(ctx, hc, searchURL, &search); err != nil {
		return types.AuthorReputation{}, fmt.Errorf("author search %q: %w", name, err)
	}
	if len(search.Data) == 0 {
		return types.AuthorReputation{}, ErrAuthorNotFound
	}

	authorID := search.Data[0].AuthorID
	if authorID == "" {
		return types.AuthorReputation{}, ErrAuthorNotFound
	}

	detailURL := fmt.Sprintf("%s/author/%s?fields=%s", reputationAPIBase, url.PathEscape(authorID), authorFields)
	var detail authorDetailResponse
	if err := c.getJSON(ctx, hc, detailURL, &detail); err != nil {
		return types.AuthorReputation{}, fmt.Errorf("author detail %q: %w", name, err)
	}

	resolved := detail.Name
	if resolved == "" {
		resolved = search.Data[0].Name
	}
	if resolved == "" {
		resolved = name
	}

	return types.AuthorReputation{
		Name:       resolved,
		HIndex:     detail.HIndex,
		PaperCount: detail.PaperCount,
		Citations:  detail.CitationCount,
		ProfileURL: "https://www.semanticscholar.org/author/" + authorID,
		Provenance: types.ProvenanceFresh,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, hc *http.Client, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.Do(ctx, hc, req, c.Policy)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reputation service returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("parsing reputation response: %w", err)
	}
	return nil
}

// Semantic Scholar API JSON structures.
type authorSearchResponse struct {
	Total int `json:"total"`
	Data  []struct {
		AuthorID string `json:"authorId"`
		Name     string `json:"name"`
	} `json:"data"`
}

type authorDetailResponse struct {
	AuthorID      string `json:"authorId"`
	Name          string `json:"name"`
	HIndex        int    `json:"hIndex"`
	PaperCount    int    `json:"paperCount"`
	CitationCount int    `json:"citationCount"`
}
