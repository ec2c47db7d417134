package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/singleflight"

	"github.com/leofalp/sitefinder/core/domain"
	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/cache"
	"github.com/leofalp/sitefinder/providers/observability"
	"github.com/leofalp/sitefinder/providers/politeness"
)

const (
	// DefaultTimeout bounds one page fetch, retries included.
	DefaultTimeout = 10 * time.Second
	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// SocialRedirectMarker prefixes the HTML of a page that a non-social URL
	// redirected onto a social network.
	SocialRedirectMarker = "<!--REDIRECT_TO_SOCIAL-->"
)

// DefaultUserAgents are rotated across requests.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// Page is a fetched HTML document.
type Page struct {
	// URL is the requested URL, which is also the cache key.
	URL string
	// HTML is the decoded document, including SocialRedirectMarker when set.
	HTML string
	// RedirectedToSocial reports that the request landed on a social host.
	RedirectedToSocial bool
	// FromCache reports that no network call was made.
	FromCache bool
}

func newPage(url, html string, fromCache bool) *Page {
	return &Page{
		URL:                url,
		HTML:               html,
		RedirectedToSocial: strings.HasPrefix(html, SocialRedirectMarker),
		FromCache:          fromCache,
	}
}

// Fetcher retrieves pages through a cache. It is safe for concurrent use;
// concurrent misses on the same URL share one request.
type Fetcher struct {
	store       cache.Store
	client      *http.Client
	policy      *politeness.Policy
	observer    observability.Provider
	userAgents  []string
	timeout     time.Duration
	maxBodySize int64
	group       singleflight.Group
}

// Option configures optional Fetcher behavior.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client built by NewHTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithPolicy sets the politeness policy waited on before each network call.
func WithPolicy(p *politeness.Policy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(f *Fetcher) {
		f.observer = observability.OrNop(o)
	}
}

// WithUserAgents replaces DefaultUserAgents. An empty list is ignored.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// WithTimeout bounds each fetch. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize overrides MaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// New returns a Fetcher reading through store.
func New(store cache.Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		store:       store,
		observer:    observability.Nop(),
		userAgents:  DefaultUserAgents,
		timeout:     DefaultTimeout,
		maxBodySize: MaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewHTTPClient(DefaultMaxRetries, DefaultBackoff)
	}
	return f
}

// Fetch returns the page at url, from the cache when present. A failed cache
// read is treated as a miss and a failed cache write is only logged.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ioerr.New(ioerr.KindParse, "fetch", "", errors.New("URL cannot be empty"))
	}

	if page, ok := f.fromCache(ctx, url); ok {
		return page, nil
	}

	v, err, _ := f.group.Do(url, func() (any, error) {
		// A concurrent caller may have filled the cache meanwhile.
		if page, ok := f.fromCache(ctx, url); ok {
			return page, nil
		}
		return f.fetchNetwork(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	page := *v.(*Page)
	return &page, nil
}

func (f *Fetcher) fromCache(ctx context.Context, url string) (*Page, bool) {
	cached, ok, err := f.store.GetPage(ctx, url)
	if err != nil {
		f.observer.Warn(ctx, "page cache read failed",
			observability.String(observability.AttrHTTPURL, url),
			observability.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	f.observer.Counter(observability.MetricCacheHits).Add(ctx, 1,
		observability.String("cache.keyspace", "url"))
	observability.Annotate(ctx, observability.Bool(observability.AttrCacheHit, true))
	return newPage(url, cached.HTML, true), true
}

func (f *Fetcher) fetchNetwork(ctx context.Context, url string) (*Page, error) {
	ctx, span := f.observer.StartSpan(ctx, observability.SpanFetch,
		observability.String(observability.AttrHTTPURL, url))
	defer span.End()

	html, err := f.get(ctx, url)
	if err != nil {
		kind := ioerr.KindOf(err)
		span.RecordError(err)
		f.observer.Counter(observability.MetricFetchErrors).Add(ctx, 1,
			observability.String(observability.AttrErrorKind, kind.String()))
		f.observer.Debug(ctx, "fetch failed",
			observability.String(observability.AttrHTTPURL, url),
			observability.String(observability.AttrErrorKind, kind.String()),
			observability.Error(err),
		)
		return nil, err
	}
	f.observer.Counter(observability.MetricFetchTotal).Add(ctx, 1)

	if err := f.store.PutPage(ctx, url, html); err != nil {
		f.observer.Warn(ctx, "page cache write failed",
			observability.String(observability.AttrHTTPURL, url),
			observability.Error(err),
		)
	}
	return newPage(url, html, false), nil
}

// get performs the network request and returns the decoded, marker-prefixed
// document.
func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	if err := f.policy.Wait(ctx); err != nil {
		return "", ioerr.Classify("fetch", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ioerr.New(ioerr.KindParse, "fetch", url, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgents[rand.IntN(len(f.userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ioerr.Classify("fetch", url, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ioerr.Status("fetch", url, resp.StatusCode)
	}

	html, err := f.readBody(resp)
	if err != nil {
		if ctx.Err() != nil {
			return "", ioerr.Classify("fetch", url, err)
		}
		return "", ioerr.New(ioerr.KindParse, "fetch", url, err)
	}

	if resp.Request != nil && domain.IsSocial(resp.Request.URL.String()) && !domain.IsSocial(url) {
		html = SocialRedirectMarker + html
	}
	return html, nil
}

// readBody reads at most maxBodySize bytes and decodes them to UTF-8 using
// the Content-Type charset, a <meta> declaration or content sniffing.
func (f *Fetcher) readBody(resp *http.Response) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(raw)) > f.maxBodySize {
		return "", fmt.Errorf("response body exceeds maximum size of %d bytes", f.maxBodySize)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	return string(decoded), nil
}
