package apify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/repradar/backend/pkg/providers"
)

func TestFetchBusinesses_LowRatingFilter(t *testing.T) {
	var gotToken string
	var gotInput map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotInput); err != nil {
			t.Errorf("actor input is not JSON: %v", err)
		}
		io.WriteString(w, `[
			{"title": "Bad Diner", "address": "1 Main St", "totalScore": 2.1, "reviewsCount": 40, "phone": "+49 30 1234", "website": "https://bad.example"},
			{"title": "Great Diner", "totalScore": 4.8},
			{"title": "Borderline Diner", "totalScore": 3.0},
			{"title": "Unrated Diner"},
			{"title": "Zero Diner", "totalScore": 0}
		]`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		Token:      "test-token",
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
	})

	records := adapter.FetchBusinesses(context.Background(), providers.Query{
		Category: "restaurants",
		Location: "Berlin",
		Limit:    5,
	})

	if gotToken != "test-token" {
		t.Fatalf("token = %q", gotToken)
	}
	if gotInput["locationQuery"] != "Berlin" {
		t.Fatalf("locationQuery = %v", gotInput["locationQuery"])
	}
	if gotInput["maxCrawledPlacesPerSearch"] != float64(MaxCrawledPlaces) {
		t.Fatalf("maxCrawledPlacesPerSearch = %v", gotInput["maxCrawledPlacesPerSearch"])
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(records), records)
	}
	if *records[0].Name != "Bad Diner" || *records[1].Name != "Borderline Diner" {
		t.Fatalf("unexpected records: %q, %q", *records[0].Name, *records[1].Name)
	}
	if records[0].Phone == nil || *records[0].Phone != "+49 30 1234" {
		t.Fatalf("phone = %v", records[0].Phone)
	}
	if records[0].Website == nil || *records[0].Website != "https://bad.example" {
		t.Fatalf("website = %v", records[0].Website)
	}
}

func TestFetchBusinesses_ReturnLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"title": "A", "totalScore": 1.0},
			{"title": "B", "totalScore": 1.5},
			{"title": "C", "totalScore": 2.0}
		]`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		Token:      "test-token",
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
	})

	records := adapter.FetchBusinesses(context.Background(), providers.Query{Limit: 2})
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestFetchBusinesses_ActorFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		io.WriteString(w, `{"error": "out of credits"}`)
	}))
	defer ts.Close()

	adapter := NewAdapter(AdapterParams{
		Token:      "test-token",
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
	})

	records := adapter.FetchBusinesses(context.Background(), providers.Query{Limit: 5})
	if records == nil || len(records) != 0 {
		t.Fatalf("got %v, want empty slice", records)
	}
}

func TestFetchBusinesses_MissingToken(t *testing.T) {
	adapter := NewAdapter(AdapterParams{})
	records := adapter.FetchBusinesses(context.Background(), providers.Query{Limit: 5})
	if records == nil || len(records) != 0 {
		t.Fatalf("got %v, want empty slice", records)
	}
}
