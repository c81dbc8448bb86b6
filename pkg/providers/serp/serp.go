// Package serp adapts a SerpAPI-style web-search endpoint to find potentially
// negative mentions of a business.
package serp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	defaultBaseURL = "https://serpapi.com/search.json"

	// DefaultLimit caps accepted hits when the caller supplies none.
	DefaultLimit = 10

	// maxResultsPerQuery bounds how many results one query template may
	// request, so a single template cannot dominate the output.
	maxResultsPerQuery = 10
)

// queryTemplates are the fixed phrases a business name is substituted into.
// Output order follows this order.
var queryTemplates = []string{
	`"%s" negative reviews`,
	`"%s" complaints`,
	`"%s" scam`,
	`"%s" bad service`,
	`"%s" fraud`,
}

// Client issues web searches against a SerpAPI-compatible endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// ClientParams configures a new Client. A nil HTTPClient falls back to the
// shared default; BaseURL is overridable for tests.
type ClientParams struct {
	APIKey     string
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates a web-search client.
func NewClient(params ClientParams) *Client {
	client := params.HTTPClient
	if client == nil {
		client = providers.NewHTTPClient()
	}
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     params.APIKey,
		httpClient: client,
		baseURL:    baseURL,
	}
}

// resultsPerQuery distributes the overall limit across the query templates
// with a small overfetch, capped so one template cannot dominate.
func resultsPerQuery(limit int) int {
	n := limit/len(queryTemplates) + 2
	if n > maxResultsPerQuery {
		n = maxResultsPerQuery
	}
	return n
}

// SearchNegativeMentions searches for negative mentions, reviews, and
// complaints about a business. One search is issued per query template; the
// five searches run concurrently but hits are accepted in template order,
// each filtered through reputation.IsPotentiallyNegative, stopping once limit
// hits are accumulated. Any failure degrades to an empty slice.
func (c *Client) SearchNegativeMentions(ctx context.Context, businessName string, limit int) []reputation.SearchHit {
	if c.apiKey == "" {
		logger.Error("SERPAPI_KEY not configured, skipping negative-mention search")
		return []reputation.SearchHit{}
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	queries := make([]string, len(queryTemplates))
	for i, tmpl := range queryTemplates {
		queries[i] = fmt.Sprintf(tmpl, businessName)
	}

	perQuery := resultsPerQuery(limit)
	candidates := make([][]reputation.SearchHit, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			hits, err := c.search(gctx, query, perQuery)
			if err != nil {
				return err
			}
			candidates[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Negative-mention search failed", "business", businessName, "err", err)
		return []reputation.SearchHit{}
	}

	// Accept in template order, then discovery order, so output is
	// deterministic regardless of which search finished first.
	accepted := make([]reputation.SearchHit, 0, limit)
	for _, hits := range candidates {
		for _, hit := range hits {
			if !reputation.IsPotentiallyNegative(hit.Title + " " + hit.Snippet) {
				continue
			}
			accepted = append(accepted, hit)
			if len(accepted) >= limit {
				break
			}
		}
		if len(accepted) >= limit {
			break
		}
	}

	logger.Info("Negative-mention search finished", "business", businessName, "hits", len(accepted))
	return accepted
}

// search issues a single web search and returns its organic results as
// unfiltered hits.
func (c *Client) search(ctx context.Context, query string, count int) ([]reputation.SearchHit, error) {
	logger.Info("Searching", "query", query)

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(count))
	params.Set("gl", "us")
	params.Set("hl", "en")
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	results := gjson.GetBytes(body, "organic_results").Array()
	hits := make([]reputation.SearchHit, 0, len(results))
	for _, result := range results {
		hits = append(hits, reputation.SearchHit{
			Title:       result.Get("title").String(),
			Link:        result.Get("link").String(),
			Snippet:     result.Get("snippet").String(),
			SearchQuery: query,
			Source:      result.Get("source").String(),
		})
	}
	return hits, nil
}
