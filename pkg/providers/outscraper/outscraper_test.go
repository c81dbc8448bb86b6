package outscraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/repradar/backend/pkg/providers"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare domain",
			raw:  "example.com",
			want: "example.com",
		},
		{
			name: "trustpilot review url",
			raw:  "https://www.trustpilot.com/review/example.com",
			want: "www.trustpilot.com",
		},
		{
			name: "http url with path",
			raw:  "http://example.com/about",
			want: "example.com",
		},
		{
			name: "whitespace around domain",
			raw:  "  example.org ",
			want: "example.org",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractDomain(tc.raw); got != tc.want {
				t.Fatalf("ExtractDomain(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFetchBusinesses_MapsReviews(t *testing.T) {
	var gotQuery url.Values
	var gotAPIKey string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAPIKey = r.Header.Get("X-API-KEY")
		io.WriteString(w, `{
			"data": [[
				{
					"name": "Bad Diner",
					"full_address": "1 Main St, Berlin",
					"rating": 2.3,
					"reviews": 54,
					"reviews_data": [
						{
							"autor_name": "Alice",
							"review_rating": 1,
							"review_text": "Terrible service",
							"review_datetime_utc": "01/02/2024 10:00:00"
						},
						{
							"review_rating": 2
						}
					]
				}
			]]
		}`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		APIKey:       "test-key",
		HTTPClient:   ts.Client(),
		BaseURL:      ts.URL,
		CutoffRating: 3,
	})

	records := adapter.FetchBusinesses(context.Background(), providers.Query{
		Category: "restaurants",
		Location: "Berlin",
		Limit:    5,
	})

	if gotAPIKey != "test-key" {
		t.Fatalf("X-API-KEY = %q", gotAPIKey)
	}
	if gotQuery.Get("query") != "restaurants in Berlin" {
		t.Fatalf("query = %q", gotQuery.Get("query"))
	}
	if gotQuery.Get("sort") != "lowest_rating" {
		t.Fatalf("sort = %q", gotQuery.Get("sort"))
	}
	if gotQuery.Get("reviewsLimit") != "3" {
		t.Fatalf("reviewsLimit = %q", gotQuery.Get("reviewsLimit"))
	}
	if gotQuery.Get("cutoffRating") != "3" {
		t.Fatalf("cutoffRating = %q", gotQuery.Get("cutoffRating"))
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	record := records[0]
	if record.Name == nil || *record.Name != "Bad Diner" {
		t.Fatalf("name = %v", record.Name)
	}
	if record.Rating == nil || *record.Rating != 2.3 {
		t.Fatalf("rating = %v", record.Rating)
	}
	if record.ReviewsCount == nil || *record.ReviewsCount != 54 {
		t.Fatalf("reviews_count = %v", record.ReviewsCount)
	}

	if len(record.Reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(record.Reviews))
	}
	first := record.Reviews[0]
	if first.Author == nil || *first.Author != "Alice" {
		t.Fatalf("author = %v", first.Author)
	}
	if first.Rating == nil || *first.Rating != 1 {
		t.Fatalf("review rating = %v", first.Rating)
	}
	second := record.Reviews[1]
	if second.Author != nil || second.Text != nil || second.Date != nil {
		t.Fatalf("missing review fields not nil: %+v", second)
	}
}

func TestFetchBusinesses_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": "invalid key"}`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		APIKey:     "bad-key",
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
	})

	records := adapter.FetchBusinesses(context.Background(), providers.Query{Limit: 5})
	if records == nil || len(records) != 0 {
		t.Fatalf("got %v, want empty slice", records)
	}
}

func TestTrustpilotReviews(t *testing.T) {
	var gotQuery url.Values

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{
			"data": [[
				{
					"author_title": "Bob",
					"review_rating": 1,
					"review_text": "Never again",
					"review_datetime_utc": "02/03/2024 09:00:00"
				}
			]]
		}`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		APIKey:     "test-key",
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
	})

	reviews := adapter.TrustpilotReviews(context.Background(), []string{
		"https://www.trustpilot.com/review/example.com",
		"other.com",
	}, 0)

	queries := gotQuery["query"]
	if len(queries) != 2 || queries[0] != "www.trustpilot.com" || queries[1] != "other.com" {
		t.Fatalf("query params = %v", queries)
	}
	if gotQuery.Get("limit") != "3" {
		t.Fatalf("limit = %q, want default 3", gotQuery.Get("limit"))
	}

	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1", len(reviews))
	}
	if reviews[0].Author == nil || *reviews[0].Author != "Bob" {
		t.Fatalf("author = %v", reviews[0].Author)
	}
	if reviews[0].Text == nil || *reviews[0].Text != "Never again" {
		t.Fatalf("text = %v", reviews[0].Text)
	}
}

func TestTrustpilotReviews_MissingKey(t *testing.T) {
	adapter := NewAdapter(AdapterParams{})
	reviews := adapter.TrustpilotReviews(context.Background(), []string{"example.com"}, 3)
	if reviews == nil || len(reviews) != 0 {
		t.Fatalf("got %v, want empty slice", reviews)
	}
}
