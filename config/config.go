package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/leofalp/sitefinder/providers/fetch"
	"github.com/leofalp/sitefinder/providers/politeness"
	"github.com/leofalp/sitefinder/providers/probe"
	"github.com/leofalp/sitefinder/providers/search"
)

// Cache backends.
const (
	CacheMemory   = "memory"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Search backend names, in the order the default configuration queries them.
const (
	BackendSerpAPI    = "serpapi"
	BackendBrave      = "bravesearch"
	BackendDuckDuckGo = "duckduckgo"
)

// Config is the complete runtime configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Politeness PolitenessConfig `mapstructure:"politeness"`
	Search     SearchConfig     `mapstructure:"search"`
	Probe      ProbeConfig      `mapstructure:"probe"`
	Resolve    ResolveConfig    `mapstructure:"resolve"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	// PostgresDSN is a pgx connection string, used by the postgres backend.
	PostgresDSN   string `mapstructure:"postgres_dsn"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

type FetchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Backoff     time.Duration `mapstructure:"backoff"`
	MaxBodySize int64         `mapstructure:"max_body_size"`
}

type PolitenessConfig struct {
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	MinDelay      time.Duration `mapstructure:"min_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
}

type SearchConfig struct {
	// Backends are queried in order until MinResults URLs are collected.
	Backends    []string `mapstructure:"backends"`
	MinResults  int      `mapstructure:"min_results"`
	Limit       int      `mapstructure:"limit"`
	SerpAPIKey  string   `mapstructure:"serpapi_key"`
	BraveAPIKey string   `mapstructure:"brave_api_key"`
	Country     string   `mapstructure:"country"`
}

type ProbeConfig struct {
	DNSTimeout time.Duration `mapstructure:"dns_timeout"`
	TLSTimeout time.Duration `mapstructure:"tls_timeout"`
}

type ResolveConfig struct {
	DeepVerify bool `mapstructure:"deep_verify"`
	TopN       int  `mapstructure:"top_n"`
	// ProbabilityThreshold rejects calibrated candidates below it; 0 keeps
	// every candidate.
	ProbabilityThreshold float64 `mapstructure:"probability_threshold"`
	// ModelPath is an optional calibration model file.
	ModelPath   string `mapstructure:"model_path"`
	Concurrency int    `mapstructure:"concurrency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Cache: CacheConfig{
			Backend:     CacheMemory,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "sitefinder:",
		},
		Fetch: FetchConfig{
			Timeout:     fetch.DefaultTimeout,
			MaxRetries:  fetch.DefaultMaxRetries,
			Backoff:     fetch.DefaultBackoff,
			MaxBodySize: fetch.MaxBodySize,
		},
		Politeness: PolitenessConfig{
			RatePerSecond: politeness.DefaultRatePerSecond,
			Burst:         politeness.DefaultBurst,
			MinDelay:      politeness.DefaultMinDelay,
			MaxDelay:      politeness.DefaultMaxDelay,
		},
		Search: SearchConfig{
			Backends:   []string{BackendSerpAPI, BackendBrave, BackendDuckDuckGo},
			MinResults: search.DefaultMinResults,
			Limit:      10,
			Country:    "tr",
		},
		Probe: ProbeConfig{
			DNSTimeout: probe.DefaultDNSTimeout,
			TLSTimeout: probe.DefaultTLSTimeout,
		},
		Resolve: ResolveConfig{
			DeepVerify:  true,
			TopN:        4,
			Concurrency: 4,
		},
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(slices.Contains([]string{CacheMemory, CachePostgres, CacheRedis}, c.Cache.Backend),
		"cache.backend %q is not one of memory, postgres, redis", c.Cache.Backend)
	check(c.Cache.Backend != CachePostgres || c.Cache.PostgresDSN != "",
		"cache.postgres_dsn is required for the postgres backend")
	check(c.Cache.Backend != CacheRedis || c.Cache.RedisAddr != "",
		"cache.redis_addr is required for the redis backend")

	check(c.Fetch.Timeout > 0, "fetch.timeout must be positive")
	check(c.Fetch.MaxRetries >= 0, "fetch.max_retries must not be negative")
	check(c.Fetch.MaxBodySize > 0, "fetch.max_body_size must be positive")

	check(c.Politeness.MinDelay >= 0 && c.Politeness.MaxDelay >= c.Politeness.MinDelay,
		"politeness delays must satisfy 0 <= min_delay <= max_delay")

	check(len(c.Search.Backends) > 0, "search.backends must not be empty")
	for _, b := range c.Search.Backends {
		check(slices.Contains([]string{BackendSerpAPI, BackendBrave, BackendDuckDuckGo}, b),
			"search.backends: unknown backend %q", b)
	}
	check(c.Search.MinResults >= 0, "search.min_results must not be negative")
	check(c.Search.Limit > 0, "search.limit must be positive")

	check(c.Probe.DNSTimeout > 0 && c.Probe.TLSTimeout > 0, "probe timeouts must be positive")

	check(c.Resolve.TopN > 0, "resolve.top_n must be positive")
	check(c.Resolve.ProbabilityThreshold >= 0 && c.Resolve.ProbabilityThreshold <= 1,
		"resolve.probability_threshold must be within [0, 1]")
	check(c.Resolve.Concurrency > 0, "resolve.concurrency must be positive")

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// normalize trims and lower-cases the enumerated fields.
func (c *Config) normalize() {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	for i, b := range c.Search.Backends {
		c.Search.Backends[i] = strings.ToLower(strings.TrimSpace(b))
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}
