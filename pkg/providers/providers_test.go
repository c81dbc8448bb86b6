package providers

import (
	"context"
	"testing"

	"github.com/repradar/backend/pkg/reputation"
)

func TestBusinessNameFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{
			name:   "full url with www and path",
			domain: "https://www.example.co.uk/path",
			want:   "example",
		},
		{
			name:   "bare domain",
			domain: "example.com",
			want:   "example",
		},
		{
			name:   "www without scheme",
			domain: "www.acme-corp.com",
			want:   "acme-corp",
		},
		{
			name:   "url with query string",
			domain: "http://example.com?ref=1",
			want:   "example",
		},
		{
			name:   "surrounding whitespace",
			domain: "  example.org  ",
			want:   "example",
		},
		{
			name:   "no dot at all",
			domain: "localhost",
			want:   "localhost",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BusinessNameFromDomain(tc.domain); got != tc.want {
				t.Fatalf("BusinessNameFromDomain(%q) = %q, want %q", tc.domain, got, tc.want)
			}
		})
	}
}

func TestQueryFreeText(t *testing.T) {
	q := Query{Category: "restaurants", Location: "Berlin", Limit: 5}
	if got := q.FreeText(); got != "restaurants in Berlin" {
		t.Fatalf("FreeText() = %q", got)
	}
}

type stubProvider struct {
	calls   int
	records []reputation.BusinessRecord
}

func (s *stubProvider) FetchBusinesses(ctx context.Context, q Query) []reputation.BusinessRecord {
	s.calls++
	return s.records
}

func TestRegistryDispatch(t *testing.T) {
	name := "Acme Corp"
	stub := &stubProvider{records: []reputation.BusinessRecord{{Name: &name}}}

	registry := NewRegistry()
	registry.Register("stub", stub)

	got := registry.Fetch(context.Background(), "stub", Query{Limit: 1})
	if stub.calls != 1 {
		t.Fatalf("adapter called %d times, want 1", stub.calls)
	}
	if len(got) != 1 || got[0].Name == nil || *got[0].Name != name {
		t.Fatalf("Fetch() = %+v", got)
	}
}

func TestRegistryUnknownSelector(t *testing.T) {
	registry := NewRegistry()
	registry.Register("stub", &stubProvider{})

	got := registry.Fetch(context.Background(), "nope", Query{})
	if got == nil {
		t.Fatal("Fetch() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("Fetch() = %+v, want empty", got)
	}
}
