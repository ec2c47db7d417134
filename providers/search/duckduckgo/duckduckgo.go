package duckduckgo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/search"
)

var (
	htmlURL = "https://html.duckduckgo.com/html/"
	liteURL = "https://lite.duckduckgo.com/lite/"
)

const (
	// Name is the backend name used in logs and metrics.
	Name = "duckduckgo"
	// DefaultCount is used when the caller asks for no specific count.
	DefaultCount = 10
	// MaxCount bounds the links taken from one result page.
	MaxCount = 30
	// DefaultUserAgent is sent with every request; the endpoints reject
	// clients without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Backend scrapes DuckDuckGo result pages.
type Backend struct {
	client    *http.Client
	userAgent string
	region    string
}

// Ensure Backend implements search.Backend at compile time.
var _ search.Backend = (*Backend)(nil)

// Option configures optional Backend behavior.
type Option func(*Backend)

// WithHTTPClient replaces search.DefaultHTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(b *Backend) {
		b.userAgent = ua
	}
}

// WithRegion sets the kl region parameter. Default "tr-tr".
func WithRegion(region string) Option {
	return func(b *Backend) {
		b.region = region
	}
}

// New returns a Backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		client:    search.DefaultHTTPClient,
		userAgent: DefaultUserAgent,
		region:    "tr-tr",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements search.Backend.
func (b *Backend) Name() string { return Name }

// Search returns up to n result URLs for query. It fails only when both
// endpoints fail.
func (b *Backend) Search(ctx context.Context, query string, n int) ([]string, error) {
	n = search.ClampLimit(n, DefaultCount, MaxCount)

	var results []string
	seen := make(map[string]struct{})
	add := func(links []string) {
		for _, l := range links {
			if len(results) == n {
				return
			}
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			results = append(results, l)
		}
	}

	htmlLinks, htmlErr := b.scrape(ctx, htmlURL, query, "a.result__a")
	add(htmlLinks)
	if len(results) >= n {
		return results, nil
	}

	liteLinks, liteErr := b.scrape(ctx, liteURL, query, "a[href]")
	add(liteLinks)
	if htmlErr != nil && liteErr != nil {
		return nil, errors.Join(htmlErr, liteErr)
	}
	return results, nil
}

// scrape fetches one endpoint and returns the unwrapped targets of the
// anchors matched by selector, in document order.
func (b *Backend) scrape(ctx context.Context, endpoint, query, selector string) ([]string, error) {
	params := url.Values{}
	params.Add("q", query)
	if b.region != "" {
		params.Add("kl", b.region)
	}
	fullURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, endpoint, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, ioerr.Classify("search."+Name, endpoint, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, ioerr.Status("search."+Name, endpoint, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, endpoint, fmt.Errorf("error parsing response: %w", err))
	}

	var links []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if target := unwrap(href); target != "" {
			links = append(links, target)
		}
	})
	return links, nil
}

// unwrap resolves a DuckDuckGo result href to its target. It returns "" for
// anything that is not an absolute http(s) link outside duckduckgo.com.
func unwrap(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(u.Path, "/l/") || u.Path == "/l" {
		if target := u.Query().Get("uddg"); target != "" {
			return unwrap(target)
		}
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || host == "duckduckgo.com" || strings.HasSuffix(host, ".duckduckgo.com") {
		return ""
	}
	return u.String()
}
