package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/leofalp/sitefinder/providers/cache"
)

// Store is a concurrency-safe in-memory cache.
type Store struct {
	mu      sync.RWMutex
	pages   map[string]cache.Page
	results map[string]cache.Results
	now     func() time.Time
}

// Ensure Store implements cache.Store at compile time.
var _ cache.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		pages:   make(map[string]cache.Page),
		results: make(map[string]cache.Results),
		now:     time.Now,
	}
}

// GetPage returns the cached page for url.
func (s *Store) GetPage(_ context.Context, url string) (cache.Page, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[url]
	return p, ok, nil
}

// PutPage stores html for url, replacing any previous entry.
func (s *Store) PutPage(_ context.Context, url, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[url] = cache.Page{URL: url, HTML: html, FetchedAt: s.now()}
	return nil
}

// GetResults returns the cached result list for query.
func (s *Store) GetResults(_ context.Context, query string) (cache.Results, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[query]
	if !ok {
		return cache.Results{}, false, nil
	}
	r.URLs = append([]string(nil), r.URLs...)
	return r, true, nil
}

// PutResults stores a copy of urls for query.
func (s *Store) PutResults(_ context.Context, query string, urls []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[query] = cache.Results{
		Query:     query,
		URLs:      append([]string(nil), urls...),
		FetchedAt: s.now(),
	}
	return nil
}

// Len returns the number of cached pages and result lists.
func (s *Store) Len() (pages, results int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages), len(s.results)
}
