// Package outscraper adapts the Outscraper review-scraping API: Google Maps
// reviews (lowest-rated first) and Trustpilot reviews by domain.
package outscraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	defaultBaseURL = "https://api.outscraper.cloud"
	mapsPath       = "/maps/reviews-v3"
	trustpilotPath = "/trustpilot/reviews"

	// DefaultBusinessLimit caps how many businesses a maps lookup returns.
	DefaultBusinessLimit = 5

	// ReviewsPerBusiness is how many reviews the vendor is asked to scrape
	// per business.
	ReviewsPerBusiness = 3

	// DefaultTrustpilotLimit caps reviews per Trustpilot query.
	DefaultTrustpilotLimit = 3
)

// Adapter wraps the Outscraper REST API with an injected credential and
// HTTP client.
type Adapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string

	// CutoffRating, when > 0, is passed to the vendor so it stops scraping
	// at reviews above this rating.
	CutoffRating float64
}

// AdapterParams configures a new Adapter. A nil HTTPClient falls back to the
// shared default; BaseURL is overridable for tests.
type AdapterParams struct {
	APIKey       string
	HTTPClient   *http.Client
	BaseURL      string
	CutoffRating float64
}

// NewAdapter creates an Outscraper adapter.
func NewAdapter(params AdapterParams) *Adapter {
	client := params.HTTPClient
	if client == nil {
		client = providers.NewHTTPClient()
	}
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		apiKey:       params.APIKey,
		httpClient:   client,
		baseURL:      baseURL,
		CutoffRating: params.CutoffRating,
	}
}

func (a *Adapter) get(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-KEY", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("non-2xx status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return gjson.ParseBytes(body), nil
}

// FetchBusinesses looks up the lowest-rated businesses matching the query via
// the reviews-v3 endpoint, with the vendor pre-sorting by lowest rating.
// Any failure degrades to an empty slice.
func (a *Adapter) FetchBusinesses(ctx context.Context, q providers.Query) []reputation.BusinessRecord {
	if a.apiKey == "" {
		logger.Error("OUTSCRAPER_API_KEY not configured, skipping maps reviews lookup")
		return []reputation.BusinessRecord{}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultBusinessLimit
	}

	query := q.FreeText()
	logger.Info("Requesting Outscraper maps reviews", "query", query)

	params := url.Values{}
	params.Set("query", query)
	params.Set("reviewsLimit", strconv.Itoa(ReviewsPerBusiness))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "lowest_rating")
	params.Set("language", "en")
	params.Set("async", "false")
	if a.CutoffRating > 0 {
		params.Set("cutoffRating", strconv.FormatFloat(a.CutoffRating, 'f', -1, 64))
	}

	root, err := a.get(ctx, mapsPath, params)
	if err != nil {
		logger.Error("Outscraper maps reviews request failed", "err", err)
		return []reputation.BusinessRecord{}
	}

	// One queries-worth of places lives under data[0].
	places := root.Get("data.0")
	if !places.IsArray() {
		logger.Error("Invalid Outscraper response format, no places data")
		return []reputation.BusinessRecord{}
	}

	records := make([]reputation.BusinessRecord, 0)
	for _, place := range places.Array() {
		record := reputation.NewBusinessRecord()
		record.Name = providers.StringOrNil(place.Get("name"))
		record.Address = providers.StringOrNil(place.Get("full_address"))
		record.Rating = providers.FloatOrNil(place.Get("rating"))
		record.ReviewsCount = providers.IntOrNil(place.Get("reviews"))

		for _, review := range place.Get("reviews_data").Array() {
			record.Reviews = append(record.Reviews, reputation.ReviewRecord{
				// The vendor really does spell the key "autor_name".
				Author: providers.StringOrNil(review.Get("autor_name")),
				Rating: providers.FloatOrNil(review.Get("review_rating")),
				Text:   providers.StringOrNil(review.Get("review_text")),
				Date:   providers.StringOrNil(review.Get("review_datetime_utc")),
			})
		}

		records = append(records, record)
	}

	logger.Info("Outscraper maps reviews processed", "businesses", len(records))
	return records
}

// ExtractDomain strips a Trustpilot URL down to its domain. A bare domain
// passes through unchanged.
func ExtractDomain(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	if parsed.Host != "" {
		return parsed.Host
	}
	return parsed.Path
}

// TrustpilotReviews fetches reviews for one or more domains or Trustpilot
// URLs. Any failure degrades to an empty slice.
func (a *Adapter) TrustpilotReviews(ctx context.Context, queries []string, limit int) []reputation.ReviewRecord {
	if a.apiKey == "" {
		logger.Error("OUTSCRAPER_API_KEY not configured, skipping Trustpilot lookup")
		return []reputation.ReviewRecord{}
	}

	if limit <= 0 {
		limit = DefaultTrustpilotLimit
	}

	params := url.Values{}
	for _, q := range queries {
		params.Add("query", ExtractDomain(q))
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("async", "false")

	logger.Info("Requesting Trustpilot reviews", "queries", strings.Join(queries, ","), "limit", limit)

	root, err := a.get(ctx, trustpilotPath, params)
	if err != nil {
		logger.Error("Trustpilot reviews request failed", "err", err)
		return []reputation.ReviewRecord{}
	}

	rawReviews := root.Get("data.0")
	if !rawReviews.IsArray() {
		logger.Warn("No reviews data found in Trustpilot response")
		return []reputation.ReviewRecord{}
	}

	reviews := make([]reputation.ReviewRecord, 0)
	for _, review := range rawReviews.Array() {
		reviews = append(reviews, reputation.ReviewRecord{
			Author: providers.StringOrNil(review.Get("author_title")),
			Rating: providers.FloatOrNil(review.Get("review_rating")),
			Text:   providers.StringOrNil(review.Get("review_text")),
			Date:   providers.StringOrNil(review.Get("review_datetime_utc")),
		})
	}

	logger.Info("Fetched Trustpilot reviews", "count", len(reviews))
	return reviews
}
