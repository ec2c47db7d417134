package cache

import (
	"context"
	"strings"
	"time"
)

// Page is a cached HTML document.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// Results is a cached, ordered list of search result URLs.
type Results struct {
	Query     string
	URLs      []string
	FetchedAt time.Time
}

// Store persists pages and search results. A miss is reported with ok=false
// and a nil error; errors are reserved for backend failures.
type Store interface {
	GetPage(ctx context.Context, url string) (Page, bool, error)
	PutPage(ctx context.Context, url, html string) error
	GetResults(ctx context.Context, query string) (Results, bool, error)
	PutResults(ctx context.Context, query string, urls []string) error
}

// QueryKey returns the cache key of a search query: lower-cased with
// whitespace collapsed, so trivially different spellings share an entry.
func QueryKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// JoinURLs encodes a result list for storage as newline-separated text.
func JoinURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

// SplitURLs decodes a stored result list, dropping blank lines.
func SplitURLs(s string) []string {
	var urls []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}
