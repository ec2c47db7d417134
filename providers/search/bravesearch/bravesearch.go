package bravesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/leofalp/sitefinder/internal/ioerr"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/search"
)

var baseURL = "https://api.search.brave.com/res/v1"

const (
	// Name is the backend name used in logs and metrics.
	Name = "bravesearch"
	// DefaultCount is used when the caller asks for no specific count.
	DefaultCount = 10
	// MaxCount is the API's upper bound per request.
	MaxCount = 20
)

// Backend queries Brave Search.
type Backend struct {
	apiKey  string
	country string
	client  *http.Client
}

// Ensure Backend implements search.Backend at compile time.
var _ search.Backend = (*Backend)(nil)

// Option configures optional Backend behavior.
type Option func(*Backend)

// WithAPIKey overrides BRAVE_SEARCH_API_KEY.
func WithAPIKey(key string) Option {
	return func(b *Backend) {
		b.apiKey = key
	}
}

// WithCountry sets the country code for localized results. Default "tr".
func WithCountry(country string) Option {
	return func(b *Backend) {
		b.country = country
	}
}

// WithHTTPClient replaces search.DefaultHTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// New returns a Backend keyed from BRAVE_SEARCH_API_KEY unless WithAPIKey is set.
func New(opts ...Option) *Backend {
	b := &Backend{
		apiKey:  os.Getenv("BRAVE_SEARCH_API_KEY"),
		country: "tr",
		client:  search.DefaultHTTPClient,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements search.Backend.
func (b *Backend) Name() string { return Name }

// apiResponse is the subset of the Brave response envelope we read.
type apiResponse struct {
	Web *struct {
		Results []struct {
			URL string `json:"url"`
		} `json:"results"`
	} `json:"web,omitempty"`
}

// Search returns up to n web result URLs for query.
func (b *Backend) Search(ctx context.Context, query string, n int) ([]string, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", Name, search.ErrMissingAPIKey)
	}
	count := search.ClampLimit(n, DefaultCount, MaxCount)

	params := url.Values{}
	params.Add("q", query)
	params.Add("count", strconv.Itoa(count))
	params.Add("result_filter", "web")
	if b.country != "" {
		params.Add("country", b.country)
	}
	endpoint := baseURL + "/web/search"
	fullURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, endpoint, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, ioerr.Classify("search."+Name, endpoint, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, ioerr.Status("search."+Name, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ioerr.Classify("search."+Name, endpoint, err)
	}
	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, endpoint, fmt.Errorf("error parsing response: %w", err))
	}
	if payload.Web == nil {
		return nil, nil
	}

	urls := make([]string, 0, count)
	for _, r := range payload.Web.Results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if len(urls) == count {
			break
		}
	}
	return urls, nil
}
