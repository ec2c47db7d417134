package deepverify

import (
	"context"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/signals"
	"github.com/leofalp/sitefinder/providers/fetch"
	"github.com/leofalp/sitefinder/providers/observability"
)

// DefaultPaths are the subpages where contact details and legal identifiers
// usually live.
var DefaultPaths = []string{
	"iletisim", "hakkimizda", "en/contact", "tr/iletisim", "about", "contact",
	"sitemap.xml",
}

// Fetcher retrieves one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Result is the outcome of one crawl.
type Result struct {
	// Signals is the summed signal count of the fetched subpages.
	Signals int
	// Pages is the number of subpages that fetched.
	Pages int
}

// Crawler runs deep verification crawls.
type Crawler struct {
	pages    Fetcher
	paths    []string
	observer observability.Provider
}

// Option configures optional Crawler behavior.
type Option func(*Crawler)

// WithPaths overrides DefaultPaths.
func WithPaths(paths ...string) Option {
	return func(c *Crawler) {
		c.paths = append([]string(nil), paths...)
	}
}

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(c *Crawler) {
		c.observer = observability.OrNop(o)
	}
}

// New returns a Crawler that fetches through pages.
func New(pages Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		pages:    pages,
		paths:    DefaultPaths,
		observer: observability.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl fetches every path under baseURL and sums the signal counts for p.
// It stops early only when ctx is done.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, p company.Profile) Result {
	ctx, span := c.observer.StartSpan(ctx, observability.SpanDeepVerify,
		observability.String(observability.AttrCandidateURL, baseURL))
	defer span.End()

	var r Result
	for _, u := range SubpageURLs(baseURL, c.paths) {
		if ctx.Err() != nil {
			break
		}
		page, err := c.pages.Fetch(ctx, u)
		if err != nil {
			c.observer.Debug(ctx, "deep verify page skipped",
				observability.String(observability.AttrHTTPURL, u),
				observability.Error(err),
			)
			continue
		}
		r.Pages++
		r.Signals += signals.Count(signals.Extract(page.HTML), u, p)
	}

	span.SetAttributes(
		observability.Int(observability.AttrCandidateSignals, r.Signals),
		observability.Int("deep_verify.pages", r.Pages),
	)
	return r
}

// SubpageURLs joins each path onto baseURL with exactly one slash.
func SubpageURLs(baseURL string, paths []string) []string {
	base := strings.TrimRight(baseURL, "/")
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		out = append(out, base+"/"+strings.TrimLeft(path, "/"))
	}
	return out
}
