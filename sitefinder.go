package sitefinder

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leofalp/sitefinder/config"
	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/resolver"
	"github.com/leofalp/sitefinder/core/scoring"
	"github.com/leofalp/sitefinder/providers/cache"
	"github.com/leofalp/sitefinder/providers/fetch"
	"github.com/leofalp/sitefinder/providers/observability"
	"github.com/leofalp/sitefinder/providers/observability/zapobs"
	"github.com/leofalp/sitefinder/providers/politeness"
	"github.com/leofalp/sitefinder/providers/probe"
	"github.com/leofalp/sitefinder/providers/search"
	"github.com/leofalp/sitefinder/providers/search/bravesearch"
	"github.com/leofalp/sitefinder/providers/search/duckduckgo"
	"github.com/leofalp/sitefinder/providers/search/serpapi"
)

// Compile-time checks that the concrete providers satisfy the core ports.
var (
	_ resolver.Pages    = (*fetch.Fetcher)(nil)
	_ resolver.Searcher = (*search.Aggregator)(nil)
	_ scoring.Prober    = (*probe.Prober)(nil)
)

// Service is a configured resolution pipeline. It is safe for concurrent use.
type Service struct {
	cfg      config.Config
	resolver *resolver.Resolver
	observer observability.Provider
	model    *calibration.Model
	closers  []func() error
}

// Option overrides a dependency that New would otherwise build from the
// configuration. Tests use them to stay off the network.
type Option func(*deps)

type deps struct {
	observer observability.Provider
	store    cache.Store
	client   *http.Client
	sources  []search.Source
	prober   scoring.Prober
}

// WithObserver replaces the zap observer built from cfg.Log.
func WithObserver(o observability.Provider) Option {
	return func(d *deps) {
		d.observer = o
	}
}

// WithStore replaces the cache store selected by cfg.Cache.
func WithStore(s cache.Store) Option {
	return func(d *deps) {
		d.store = s
	}
}

// WithHTTPClient replaces the retrying page client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *deps) {
		d.client = c
	}
}

// WithSources replaces the search backends selected by cfg.Search.
func WithSources(sources ...search.Source) Option {
	return func(d *deps) {
		d.sources = sources
	}
}

// WithProber replaces the DNS/TLS prober.
func WithProber(p scoring.Prober) Option {
	return func(d *deps) {
		d.prober = p
	}
}

// New builds a Service from cfg. A calibration model that fails to load is
// logged and the service stays uncalibrated.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("sitefinder: config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var d deps
	for _, opt := range opts {
		opt(&d)
	}

	s := &Service{cfg: *cfg}

	s.observer = d.observer
	if s.observer == nil {
		zo, err := zapobs.New(zapobs.WithLevel(cfg.Log.Level), zapobs.WithFormat(cfg.Log.Format))
		if err != nil {
			return nil, fmt.Errorf("error creating observer: %w", err)
		}
		s.observer = zo
		s.closers = append(s.closers, func() error {
			_ = zo.Sync()
			return nil
		})
	}

	store := d.store
	if store == nil {
		opened, closeStore, err := OpenStore(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		store = opened
		s.closers = append(s.closers, closeStore)
	}

	policy := politeness.New(cfg.Politeness.RatePerSecond, cfg.Politeness.Burst,
		cfg.Politeness.MinDelay, cfg.Politeness.MaxDelay)

	client := d.client
	if client == nil {
		client = fetch.NewHTTPClient(cfg.Fetch.MaxRetries, cfg.Fetch.Backoff)
	}
	pages := fetch.New(store,
		fetch.WithHTTPClient(client),
		fetch.WithPolicy(policy),
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxBodySize(cfg.Fetch.MaxBodySize),
		fetch.WithObserver(s.observer),
	)

	sources := d.sources
	if sources == nil {
		sources = Sources(cfg.Search)
	}
	agg := search.NewAggregator(store, sources,
		search.WithPolicy(policy),
		search.WithMinResults(cfg.Search.MinResults),
		search.WithObserver(s.observer),
	)

	prober := d.prober
	if prober == nil {
		prober = probe.New(
			probe.WithDNSTimeout(cfg.Probe.DNSTimeout),
			probe.WithTLSTimeout(cfg.Probe.TLSTimeout),
			probe.WithObserver(s.observer),
		)
	}

	ropts := []resolver.Option{
		resolver.WithDeepVerify(cfg.Resolve.DeepVerify),
		resolver.WithTopN(cfg.Resolve.TopN),
	}
	if cfg.Resolve.ProbabilityThreshold > 0 {
		ropts = append(ropts, resolver.WithProbabilityThreshold(cfg.Resolve.ProbabilityThreshold))
	}
	if cfg.Resolve.ModelPath != "" {
		m, err := LoadModel(cfg.Resolve.ModelPath)
		if err != nil {
			s.observer.Warn(ctx, "calibration model unavailable, resolving uncalibrated",
				observability.String("calibration.path", cfg.Resolve.ModelPath),
				observability.Error(err),
			)
		} else {
			s.model = m
			ropts = append(ropts, resolver.WithModel(m))
		}
	}

	s.resolver = resolver.New(resolver.Context{
		Pages:    pages,
		Search:   agg,
		Probe:    prober,
		Observer: s.observer,
	}, ropts...)
	return s, nil
}

// Sources builds the configured search backends in order. Keys left empty
// in cfg fall back to the provider's own environment variable.
func Sources(cfg config.SearchConfig) []search.Source {
	sources := make([]search.Source, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		var b search.Backend
		switch name {
		case config.BackendSerpAPI:
			var opts []serpapi.Option
			if cfg.SerpAPIKey != "" {
				opts = append(opts, serpapi.WithAPIKey(cfg.SerpAPIKey))
			}
			b = serpapi.New(opts...)
		case config.BackendBrave:
			opts := []bravesearch.Option{bravesearch.WithCountry(cfg.Country)}
			if cfg.BraveAPIKey != "" {
				opts = append(opts, bravesearch.WithAPIKey(cfg.BraveAPIKey))
			}
			b = bravesearch.New(opts...)
		case config.BackendDuckDuckGo:
			b = duckduckgo.New()
		default:
			continue
		}
		sources = append(sources, search.Source{Backend: b, Limit: cfg.Limit})
	}
	return sources
}

// Resolver returns the underlying resolver.
func (s *Service) Resolver() *resolver.Resolver { return s.resolver }

// Observer returns the observability provider in use.
func (s *Service) Observer() observability.Provider { return s.observer }

// Model returns the loaded calibration model, or nil.
func (s *Service) Model() *calibration.Model { return s.model }

// Config returns a copy of the configuration the service was built with.
func (s *Service) Config() config.Config { return s.cfg }

// Resolve resolves one company with the configured defaults; opts override
// them for this call.
func (s *Service) Resolve(ctx context.Context, q company.Query, opts ...resolver.Option) (resolver.Outcome, error) {
	return s.resolver.Resolve(ctx, q, opts...)
}

// ResolveBatch resolves queries with cfg.Resolve.Concurrency workers.
func (s *Service) ResolveBatch(ctx context.Context, queries []company.Query, opts ...resolver.Option) []resolver.BatchResult {
	return s.resolver.ResolveBatch(ctx, queries, s.cfg.Resolve.Concurrency, opts...)
}

// TopKCandidates returns the k best website candidates for review.
func (s *Service) TopKCandidates(ctx context.Context, q company.Query, k int) ([]resolver.Candidate, error) {
	return s.resolver.TopKCandidates(ctx, q, k)
}

// TrainFromReview trains a calibration model from labelled review rows.
func (s *Service) TrainFromReview(ctx context.Context, rows []resolver.ReviewRow, method calibration.Method) (*calibration.Model, int, error) {
	return s.resolver.TrainFromReview(ctx, rows, method)
}

// Close releases the cache connection and flushes the logger.
func (s *Service) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
