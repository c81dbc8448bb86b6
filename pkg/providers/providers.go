// Package providers contains the adapters that translate third-party review
// and search vendors into the canonical reputation data model, plus the
// registry that dispatches a request to exactly one of them.
package providers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/reputation"
)

// DefaultTimeout bounds every outbound vendor call. A timed-out call is
// treated like any other upstream failure: logged, empty result.
const DefaultTimeout = 30 * time.Second

// Query carries the normalized search parameters handed to an adapter.
// Adapters assemble their own vendor-specific request from these.
type Query struct {
	Category string
	Location string
	Limit    int
}

// FreeText renders the query as a single search phrase.
func (q Query) FreeText() string {
	return q.Category + " in " + q.Location
}

// Provider is a business-lookup adapter. Implementations never return an
// error: any upstream failure, malformed payload, or missing credential is
// logged and degrades to an empty slice.
type Provider interface {
	FetchBusinesses(ctx context.Context, q Query) []reputation.BusinessRecord
}

// Registry maps provider selectors to their adapters.
type Registry struct {
	adapters map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Provider),
	}
}

// Register binds an adapter to a selector.
func (r *Registry) Register(selector string, p Provider) {
	r.adapters[selector] = p
}

// Fetch dispatches to the adapter registered under selector. An unrecognized
// selector yields an empty result set rather than an error.
func (r *Registry) Fetch(ctx context.Context, selector string, q Query) []reputation.BusinessRecord {
	p, ok := r.adapters[selector]
	if !ok {
		logger.Warn("Unknown provider selector", "selector", selector)
		return []reputation.BusinessRecord{}
	}
	return p.FetchBusinesses(ctx, q)
}

// Selectors returns the registered selectors, for diagnostics.
func (r *Registry) Selectors() []string {
	out := make([]string, 0, len(r.adapters))
	for s := range r.adapters {
		out = append(out, s)
	}
	return out
}

// BusinessNameFromDomain derives a display name from a domain or URL:
// it strips the scheme and a leading "www.", then takes the first label
// before the first dot. "https://www.example.co.uk/path" yields "example".
func BusinessNameFromDomain(domain string) string {
	name := strings.TrimSpace(domain)
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}
	if i := strings.IndexAny(name, "/?#"); i != -1 {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "www.")
	if i := strings.Index(name, "."); i != -1 {
		name = name[:i]
	}
	return name
}

// NewHTTPClient returns the http.Client adapters share by default.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}
