package serpapi

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

// baseURL is a variable so tests can point it at an httptest server.
var baseURL = "https://serpapi.com/search.json"

// Name is the backend name used in logs and metrics.
const Name = "serpapi"

// minRequested is the smallest num sent to the API; smaller requests are
// trimmed locally.
const minRequested = 10

// Backend queries SerpAPI.
type Backend struct {
	apiKey string
	client *http.Client
}

// Ensure Backend implements search.Backend at compile time.
var _ search.Backend = (*Backend)(nil)

// Option configures optional Backend behavior.
type Option func(*Backend)

// WithAPIKey overrides the key read from the environment.
func WithAPIKey(key string) Option {
	return func(b *Backend) {
		b.apiKey = key
	}
}

// WithHTTPClient replaces search.DefaultHTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// New returns a Backend keyed from the environment unless WithAPIKey is set.
func New(opts ...Option) *Backend {
	b := &Backend{apiKey: keyFromEnv(), client: search.DefaultHTTPClient}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func keyFromEnv() string {
	if k := os.Getenv("SERPAPI_KEY"); k != "" {
		return k
	}
	return os.Getenv("SERPAPI_API_KEY")
}

// Name implements search.Backend.
func (b *Backend) Name() string { return Name }

// response is the subset of the SerpAPI payload we read.
type response struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

// Search returns up to n organic result links for query.
func (b *Backend) Search(ctx context.Context, query string, n int) ([]string, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", Name, search.ErrMissingAPIKey)
	}
	n = search.ClampLimit(n, minRequested, 100)

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("hl", "tr")
	params.Set("gl", "tr")
	params.Set("num", strconv.Itoa(max(minRequested, n)))
	params.Set("api_key", b.apiKey)
	fullURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, baseURL, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, ioerr.Classify("search."+Name, baseURL, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, ioerr.Status("search."+Name, baseURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ioerr.Classify("search."+Name, baseURL, err)
	}
	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ioerr.New(ioerr.KindParse, "search."+Name, baseURL, fmt.Errorf("error parsing response: %w", err))
	}
	if payload.Error != "" {
		return nil, ioerr.New(ioerr.KindStatus, "search."+Name, baseURL, fmt.Errorf("api error: %s", payload.Error))
	}

	links := make([]string, 0, n)
	for _, r := range payload.OrganicResults {
		if r.Link == "" {
			continue
		}
		links = append(links, r.Link)
		if len(links) == n {
			break
		}
	}
	return links, nil
}
