// Package googleplaces adapts the Google Places API (v1) text search to the
// canonical business model. All results are returned as-is, no rating filter.
package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	searchTextURL = "https://places.googleapis.com/v1/places:searchText"
	fieldMask     = "places.displayName,places.formattedAddress,places.rating,places.userRatingCount"

	// DefaultPageSize is the page-size limit used when the query carries none.
	DefaultPageSize = 20
)

// Adapter calls the Places searchText endpoint with an injected credential
// and HTTP client.
type Adapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// AdapterParams configures a new Adapter. A nil HTTPClient falls back to the
// shared default; BaseURL is overridable for tests.
type AdapterParams struct {
	APIKey     string
	HTTPClient *http.Client
	BaseURL    string
}

// NewAdapter creates a Places adapter.
func NewAdapter(params AdapterParams) *Adapter {
	client := params.HTTPClient
	if client == nil {
		client = providers.NewHTTPClient()
	}
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = searchTextURL
	}
	return &Adapter{
		apiKey:     params.APIKey,
		httpClient: client,
		baseURL:    baseURL,
	}
}

// FetchBusinesses runs a text search and normalizes every returned place.
// Any failure degrades to an empty slice.
func (a *Adapter) FetchBusinesses(ctx context.Context, q providers.Query) []reputation.BusinessRecord {
	if a.apiKey == "" {
		logger.Error("GOOGLE_API_KEY not configured, skipping Places lookup")
		return []reputation.BusinessRecord{}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := q.FreeText()
	logger.Info("Requesting Google Places text search", "query", query)

	payload, err := json.Marshal(map[string]any{
		"textQuery": query,
		"pageSize":  limit,
	})
	if err != nil {
		logger.Error("Failed to encode Places request", "err", err)
		return []reputation.BusinessRecord{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		logger.Error("Failed to build Places request", "err", err)
		return []reputation.BusinessRecord{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", a.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		logger.Error("Places request failed", "err", err)
		return []reputation.BusinessRecord{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read Places response", "err", err)
		return []reputation.BusinessRecord{}
	}

	root := gjson.ParseBytes(body)
	if apiErr := root.Get("error"); apiErr.Exists() {
		logger.Error("Places API error", "message", apiErr.Get("message").String())
		return []reputation.BusinessRecord{}
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("Places API returned non-OK status", "status", resp.StatusCode)
		return []reputation.BusinessRecord{}
	}

	places := root.Get("places").Array()
	records := make([]reputation.BusinessRecord, 0, len(places))
	for _, place := range places {
		record := reputation.NewBusinessRecord()
		record.Name = providers.StringOrNil(place.Get("displayName.text"))
		record.Address = providers.StringOrNil(place.Get("formattedAddress"))
		record.Rating = providers.FloatOrNil(place.Get("rating"))
		record.ReviewsCount = providers.IntOrNil(place.Get("userRatingCount"))
		records = append(records, record)
	}

	logger.Info(fmt.Sprintf("Google Places returned %d places", len(records)), "query", query)
	return records
}
