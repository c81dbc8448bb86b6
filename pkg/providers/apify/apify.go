// Package apify adapts the Apify crawler-google-places actor to the canonical
// business model, filtering to low-rated places.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	defaultBaseURL = "https://api.apify.com"
	actorPath      = "/v2/acts/compass~crawler-google-places/run-sync-get-dataset-items"

	// MaxCrawledPlaces bounds how many raw places the actor is asked to
	// crawl per search, to keep credit usage down.
	MaxCrawledPlaces = 5

	// DefaultReturnLimit caps how many low-rated places are returned.
	DefaultReturnLimit = 5

	// lowRatingCutoff keeps only places rated at or below this score.
	lowRatingCutoff = 3.0
)

// Adapter runs the places actor synchronously and keeps only places whose
// total score is at or below the low-rating cutoff.
type Adapter struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// AdapterParams configures a new Adapter. A nil HTTPClient falls back to the
// shared default; BaseURL is overridable for tests.
type AdapterParams struct {
	Token      string
	HTTPClient *http.Client
	BaseURL    string
}

// NewAdapter creates an Apify adapter.
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
		token:      params.Token,
		httpClient: client,
		baseURL:    baseURL,
	}
}

// FetchBusinesses runs the actor for the query's category and location and
// returns up to the query limit of places rated <= 3.0. A place with no score
// is treated as top-rated and skipped. Any failure degrades to an empty slice.
func (a *Adapter) FetchBusinesses(ctx context.Context, q providers.Query) []reputation.BusinessRecord {
	if a.token == "" {
		logger.Error("APIFY_TOKEN not configured, skipping Apify lookup")
		return []reputation.BusinessRecord{}
	}

	returnLimit := q.Limit
	if returnLimit <= 0 {
		returnLimit = DefaultReturnLimit
	}

	runInput := map[string]any{
		"searchStringsArray":        []string{q.Category},
		"locationQuery":             q.Location,
		"maxCrawledPlacesPerSearch": MaxCrawledPlaces,
		"language":                  "en",
	}
	logger.Info("Calling Apify places actor", "category", q.Category, "location", q.Location)

	payload, err := json.Marshal(runInput)
	if err != nil {
		logger.Error("Failed to encode Apify actor input", "err", err)
		return []reputation.BusinessRecord{}
	}

	endpoint := a.baseURL + actorPath + "?token=" + url.QueryEscape(a.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logger.Error("Failed to build Apify request", "err", err)
		return []reputation.BusinessRecord{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		logger.Error("Apify request failed", "err", err)
		return []reputation.BusinessRecord{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read Apify response", "err", err)
		return []reputation.BusinessRecord{}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Apify actor returned non-2xx status", "status", resp.StatusCode)
		return []reputation.BusinessRecord{}
	}

	items := gjson.ParseBytes(body)
	if !items.IsArray() {
		logger.Error("Unexpected Apify dataset payload, expected array")
		return []reputation.BusinessRecord{}
	}

	records := make([]reputation.BusinessRecord, 0, returnLimit)
	for _, item := range items.Array() {
		score := lowRatingScore(item.Get("totalScore"))
		if score > lowRatingCutoff {
			continue
		}

		record := reputation.NewBusinessRecord()
		record.Name = providers.StringOrNil(item.Get("title"))
		record.Address = providers.StringOrNil(item.Get("address"))
		record.Rating = providers.FloatOrNil(item.Get("totalScore"))
		record.ReviewsCount = providers.IntOrNil(item.Get("reviewsCount"))
		record.Phone = providers.StringOrNil(item.Get("phone"))
		record.Website = providers.StringOrNil(item.Get("website"))
		records = append(records, record)

		if len(records) >= returnLimit {
			break
		}
	}

	logger.Info("Apify low-rated places found", "count", len(records), "limit", returnLimit)
	return records
}

// lowRatingScore treats a missing or zero score as top-rated so unrated
// places never pass the low-rating filter.
func lowRatingScore(v gjson.Result) float64 {
	if !v.Exists() || v.Type != gjson.Number || v.Float() == 0 {
		return 5
	}
	return v.Float()
}
