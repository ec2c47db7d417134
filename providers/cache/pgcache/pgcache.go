package pgcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leofalp/sitefinder/providers/cache"
)

const (
	// DefaultURLTable is the page table name.
	DefaultURLTable = "url_cache"
	// DefaultQueryTable is the search result table name.
	DefaultQueryTable = "query_cache"
)

// Querier abstracts the pgx methods the store needs. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL-backed cache.
type Store struct {
	db         Querier
	urlTable   string
	queryTable string
	now        func() time.Time
}

// Ensure Store implements cache.Store at compile time.
var _ cache.Store = (*Store)(nil)

// Option configures optional Store behavior.
type Option func(*Store)

// WithTables overrides the default table names. Names are sanitized with
// pgx.Identifier because they are interpolated into SQL.
func WithTables(urlTable, queryTable string) Option {
	return func(s *Store) {
		s.urlTable = pgx.Identifier{urlTable}.Sanitize()
		s.queryTable = pgx.Identifier{queryTable}.Sanitize()
	}
}

// New returns a Store that runs its statements on db.
func New(db Querier, opts ...Option) *Store {
	s := &Store{
		db:         db,
		urlTable:   DefaultURLTable,
		queryTable: DefaultQueryTable,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPage returns the cached page for url.
func (s *Store) GetPage(ctx context.Context, url string) (cache.Page, bool, error) {
	query := fmt.Sprintf(`SELECT html, fetched_at FROM %s WHERE url = $1`, s.urlTable)

	p := cache.Page{URL: url}
	err := s.db.QueryRow(ctx, query, url).Scan(&p.HTML, &p.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cache.Page{}, false, nil
	}
	if err != nil {
		return cache.Page{}, false, fmt.Errorf("pgcache: get page: %w", err)
	}
	return p, true, nil
}

// PutPage upserts html for url.
func (s *Store) PutPage(ctx context.Context, url, html string) error {
	query := fmt.Sprintf(`INSERT INTO %s (url, html, fetched_at) VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE SET html = EXCLUDED.html, fetched_at = EXCLUDED.fetched_at`, s.urlTable)

	if _, err := s.db.Exec(ctx, query, url, html, s.now().UTC()); err != nil {
		return fmt.Errorf("pgcache: put page: %w", err)
	}
	return nil
}

// GetResults returns the cached result list for query.
func (s *Store) GetResults(ctx context.Context, query string) (cache.Results, bool, error) {
	sql := fmt.Sprintf(`SELECT results, fetched_at FROM %s WHERE query = $1`, s.queryTable)

	var (
		joined    string
		fetchedAt time.Time
	)
	err := s.db.QueryRow(ctx, sql, query).Scan(&joined, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cache.Results{}, false, nil
	}
	if err != nil {
		return cache.Results{}, false, fmt.Errorf("pgcache: get results: %w", err)
	}
	return cache.Results{Query: query, URLs: cache.SplitURLs(joined), FetchedAt: fetchedAt}, true, nil
}

// PutResults upserts urls for query.
func (s *Store) PutResults(ctx context.Context, query string, urls []string) error {
	sql := fmt.Sprintf(`INSERT INTO %s (query, results, fetched_at) VALUES ($1, $2, $3)
		ON CONFLICT (query) DO UPDATE SET results = EXCLUDED.results, fetched_at = EXCLUDED.fetched_at`, s.queryTable)

	if _, err := s.db.Exec(ctx, sql, query, cache.JoinURLs(urls), s.now().UTC()); err != nil {
		return fmt.Errorf("pgcache: put results: %w", err)
	}
	return nil
}
