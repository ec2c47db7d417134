package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/providers/cache"
	"github.com/leofalp/sitefinder/providers/observability"
	"github.com/leofalp/sitefinder/providers/politeness"
)

// DefaultMinResults is the merged result count that stops the backend chain.
const DefaultMinResults = 6

// ErrMissingAPIKey is returned by key-gated backends that have no key. The
// aggregator treats it as "backend not configured" rather than a failure.
var ErrMissingAPIKey = errors.New("search: API key is not set")

// Backend is one search engine.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Search returns up to n result URLs for query, best first.
	Search(ctx context.Context, query string, n int) ([]string, error)
}

// Source is a Backend with the number of results requested from it.
type Source struct {
	Backend Backend
	Limit   int
}

// Searcher is the query side of an Aggregator, for consumers that only need
// result URLs.
type Searcher interface {
	Search(ctx context.Context, query string) []string
}

// Aggregator runs backends in order and merges their results.
type Aggregator struct {
	sources    []Source
	store      cache.Store
	policy     *politeness.Policy
	observer   observability.Provider
	minResults int
	group      singleflight.Group
}

// Ensure Aggregator implements Searcher at compile time.
var _ Searcher = (*Aggregator)(nil)

// Option configures optional Aggregator behavior.
type Option func(*Aggregator)

// WithPolicy sets the politeness policy waited on before each backend call.
func WithPolicy(p *politeness.Policy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(a *Aggregator) {
		a.observer = observability.OrNop(o)
	}
}

// WithMinResults overrides DefaultMinResults. Non-positive values disable
// the short-circuit.
func WithMinResults(n int) Option {
	return func(a *Aggregator) {
		a.minResults = n
	}
}

// NewAggregator returns an Aggregator over sources, caching in store.
func NewAggregator(store cache.Store, sources []Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources:    sources,
		store:      store,
		observer:   observability.Nop(),
		minResults: DefaultMinResults,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search returns the merged result URLs for query. It never fails; see the
// package documentation for the degradation rules.
func (a *Aggregator) Search(ctx context.Context, query string) []string {
	key := cache.QueryKey(query)
	if key == "" {
		return nil
	}
	if urls, ok := a.fromCache(ctx, key); ok {
		return urls
	}

	v, _, _ := a.group.Do(key, func() (any, error) {
		if urls, ok := a.fromCache(ctx, key); ok {
			return urls, nil
		}
		return a.searchBackends(ctx, strings.TrimSpace(query), key), nil
	})
	urls, _ := v.([]string)
	return append([]string(nil), urls...)
}

func (a *Aggregator) fromCache(ctx context.Context, key string) ([]string, bool) {
	r, ok, err := a.store.GetResults(ctx, key)
	if err != nil {
		a.observer.Warn(ctx, "query cache read failed",
			observability.String(observability.AttrSearchQuery, key),
			observability.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	a.observer.Counter(observability.MetricCacheHits).Add(ctx, 1,
		observability.String("cache.keyspace", "query"))
	return r.URLs, true
}

func (a *Aggregator) searchBackends(ctx context.Context, query, key string) []string {
	ctx, span := a.observer.StartSpan(ctx, observability.SpanSearch,
		observability.String(observability.AttrSearchQuery, query))
	defer span.End()

	var (
		merged    []string
		seen      = make(map[string]struct{})
		succeeded bool
	)
	for i, src := range a.sources {
		if i > 0 && a.minResults > 0 && len(merged) >= a.minResults {
			break
		}
		urls, err := a.call(ctx, src, query)
		if err != nil {
			continue
		}
		succeeded = true
		for _, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			merged = append(merged, u)
		}
	}

	span.SetAttributes(observability.Int(observability.AttrSearchResults, len(merged)))
	if !succeeded {
		a.observer.Info(ctx, "all search backends failed, result not cached",
			observability.String(observability.AttrSearchQuery, query))
		return merged
	}
	if err := a.store.PutResults(ctx, key, merged); err != nil {
		a.observer.Warn(ctx, "query cache write failed",
			observability.String(observability.AttrSearchQuery, key),
			observability.Error(err),
		)
	}
	return merged
}

// call runs one backend, recording its outcome.
func (a *Aggregator) call(ctx context.Context, src Source, query string) ([]string, error) {
	name := src.Backend.Name()
	if err := a.policy.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	urls, err := src.Backend.Search(ctx, query, src.Limit)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrMissingAPIKey):
		a.observer.Debug(ctx, "search backend not configured",
			observability.String(observability.AttrSearchBackend, name))
	case err != nil:
		kind := ioerr.KindOf(err)
		a.observer.Counter(observability.MetricSearchBackendError).Add(ctx, 1,
			observability.String(observability.AttrSearchBackend, name),
			observability.String(observability.AttrErrorKind, kind.String()),
		)
		a.observer.Warn(ctx, "search backend failed",
			observability.String(observability.AttrSearchBackend, name),
			observability.String(observability.AttrSearchQuery, query),
			observability.String(observability.AttrErrorKind, kind.String()),
			observability.Error(err),
		)
	default:
		a.observer.Counter(observability.MetricSearchTotal).Add(ctx, 1,
			observability.String(observability.AttrSearchBackend, name))
		a.observer.Debug(ctx, "search backend returned",
			observability.String(observability.AttrSearchBackend, name),
			observability.Int(observability.AttrSearchResults, len(urls)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}
	return urls, err
}
