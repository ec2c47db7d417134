package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leofalp/sitefinder/providers/cache"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "sitefinder:"

const (
	fieldHTML      = "html"
	fieldResults   = "results"
	fieldFetchedAt = "fetched_at"
)

// Store is a Redis-backed cache.
type Store struct {
	rdb    redis.Cmdable
	prefix string
	now    func() time.Time
}

// Ensure Store implements cache.Store at compile time.
var _ cache.Store = (*Store)(nil)

// Option configures optional Store behavior.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New returns a Store that uses rdb. Any go-redis client works: *redis.Client,
// *redis.ClusterClient or a pipeline.
func New(rdb redis.Cmdable, opts ...Option) *Store {
	s := &Store{rdb: rdb, prefix: DefaultPrefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to addr and checks the connection with PING.
func Dial(ctx context.Context, addr, password string, db int, opts ...Option) (*Store, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("rediscache: ping: %w", err)
	}
	return New(rdb, opts...), rdb, nil
}

func (s *Store) urlKey(url string) string     { return s.prefix + "url:" + url }
func (s *Store) queryKey(query string) string { return s.prefix + "query:" + query }

// GetPage returns the cached page for url.
func (s *Store) GetPage(ctx context.Context, url string) (cache.Page, bool, error) {
	fields, err := s.rdb.HGetAll(ctx, s.urlKey(url)).Result()
	if err != nil {
		return cache.Page{}, false, fmt.Errorf("rediscache: get page: %w", err)
	}
	html, ok := fields[fieldHTML]
	if !ok {
		return cache.Page{}, false, nil
	}
	return cache.Page{URL: url, HTML: html, FetchedAt: parseTime(fields[fieldFetchedAt])}, true, nil
}

// PutPage stores html for url.
func (s *Store) PutPage(ctx context.Context, url, html string) error {
	err := s.rdb.HSet(ctx, s.urlKey(url),
		fieldHTML, html,
		fieldFetchedAt, s.now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("rediscache: put page: %w", err)
	}
	return nil
}

// GetResults returns the cached result list for query.
func (s *Store) GetResults(ctx context.Context, query string) (cache.Results, bool, error) {
	fields, err := s.rdb.HGetAll(ctx, s.queryKey(query)).Result()
	if err != nil {
		return cache.Results{}, false, fmt.Errorf("rediscache: get results: %w", err)
	}
	joined, ok := fields[fieldResults]
	if !ok {
		return cache.Results{}, false, nil
	}
	return cache.Results{
		Query:     query,
		URLs:      cache.SplitURLs(joined),
		FetchedAt: parseTime(fields[fieldFetchedAt]),
	}, true, nil
}

// PutResults stores urls for query.
func (s *Store) PutResults(ctx context.Context, query string, urls []string) error {
	err := s.rdb.HSet(ctx, s.queryKey(query),
		fieldResults, cache.JoinURLs(urls),
		fieldFetchedAt, s.now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("rediscache: put results: %w", err)
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
