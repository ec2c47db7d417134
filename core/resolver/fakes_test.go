package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/providers/fetch"
)

// fakePages serves HTML from a map; unknown URLs fail like an unreachable
// host. It records every requested URL.
type fakePages struct {
	mu    sync.Mutex
	html  map[string]string
	calls []string
}

func newFakePages(html map[string]string) *fakePages {
	if html == nil {
		html = map[string]string{}
	}
	return &fakePages{html: html}
}

func (f *fakePages) Fetch(_ context.Context, url string) (*fetch.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	h, ok := f.html[url]
	if !ok {
		return nil, ioerr.New(ioerr.KindConnection, "fetch", url, errors.New("no such host"))
	}
	return &fetch.Page{URL: url, HTML: h}, nil
}

func (f *fakePages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeSearcher answers queries with respond and counts them.
type fakeSearcher struct {
	mu      sync.Mutex
	respond func(q string) []string
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, q string) []string {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.respond == nil {
		return nil
	}
	return f.respond(q)
}

func (f *fakeSearcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// fakeProber resolves only the listed hosts and never matches a certificate.
type fakeProber struct {
	mu    sync.Mutex
	hosts map[string]bool
	calls int
}

func (f *fakeProber) HasRecord(_ context.Context, host string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.hosts[host]
}

func (f *fakeProber) CertificateMatches(context.Context, string, []string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return false
}

func socialOnly(url string) func(string) []string {
	return func(q string) []string {
		if strings.Contains(q, "instagram") {
			return []string{url}
		}
		return nil
	}
}
