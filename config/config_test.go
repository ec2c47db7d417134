package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets the provider variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SERPAPI_KEY", "SERPAPI_API_KEY", "BRAVE_SEARCH_API_KEY"} {
		t.Setenv(k, "")
	}
}

// TestDefault_IsValid verifies that the built-in configuration validates.
func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

// TestValidate verifies each rule in isolation.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"postgres without dsn", func(c *Config) { c.Cache.Backend = CachePostgres }, "postgres_dsn"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis; c.Cache.RedisAddr = "" }, "redis_addr"},
		{"zero fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }, "fetch.timeout"},
		{"inverted delays", func(c *Config) { c.Politeness.MinDelay = time.Second; c.Politeness.MaxDelay = 0 }, "politeness"},
		{"no backends", func(c *Config) { c.Search.Backends = nil }, "search.backends"},
		{"unknown backend", func(c *Config) { c.Search.Backends = []string{"bing"} }, "bing"},
		{"zero top n", func(c *Config) { c.Resolve.TopN = 0 }, "top_n"},
		{"threshold above one", func(c *Config) { c.Resolve.ProbabilityThreshold = 1.5 }, "probability_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

// TestLoad_DefaultsOnly verifies loading without a file.
func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.Cache.Backend != want.Cache.Backend || cfg.Resolve.TopN != want.Resolve.TopN {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if !slices.Equal(cfg.Search.Backends, want.Search.Backends) {
		t.Errorf("Backends = %v, want %v", cfg.Search.Backends, want.Search.Backends)
	}
}

// TestLoad_FileAndEnv verifies file values and their environment overrides.
func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "sitefinder.yaml")
	yaml := `
log:
  level: DEBUG
cache:
  backend: redis
  redis_addr: cache:6379
fetch:
  timeout: 4s
search:
  backends: [duckduckgo]
resolve:
  top_n: 6
  deep_verify: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SITEFINDER_RESOLVE_TOP_N", "8")
	t.Setenv("SITEFINDER_POLITENESS_BURST", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Fetch.Timeout != 4*time.Second {
		t.Errorf("Fetch.Timeout = %v, want 4s", cfg.Fetch.Timeout)
	}
	if !slices.Equal(cfg.Search.Backends, []string{BackendDuckDuckGo}) {
		t.Errorf("Backends = %v", cfg.Search.Backends)
	}
	if cfg.Resolve.TopN != 8 {
		t.Errorf("Resolve.TopN = %d, want env override 8", cfg.Resolve.TopN)
	}
	if cfg.Resolve.DeepVerify {
		t.Error("Resolve.DeepVerify = true, want false from file")
	}
	if cfg.Politeness.Burst != 5 {
		t.Errorf("Politeness.Burst = %d, want 5", cfg.Politeness.Burst)
	}
}

// TestLoad_ProviderKeys verifies the provider-native key variables and the
// .env preload.
func TestLoad_ProviderKeys(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SERPAPI_API_KEY", "serp-secret")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BRAVE_SEARCH_API_KEY=brave-secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override set variables, so unset the cleared one.
	os.Unsetenv("BRAVE_SEARCH_API_KEY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.SerpAPIKey != "serp-secret" {
		t.Errorf("SerpAPIKey = %q", cfg.Search.SerpAPIKey)
	}
	if cfg.Search.BraveAPIKey != "brave-secret" {
		t.Errorf("BraveAPIKey = %q", cfg.Search.BraveAPIKey)
	}
}

// TestLoad_Invalid verifies that validation errors surface from Load.
func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SITEFINDER_CACHE_BACKEND", "postgres")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "postgres_dsn") {
		t.Errorf("Load() error = %v, want postgres_dsn error", err)
	}
}

// TestLoad_MissingFile verifies that an explicit path must exist.
func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	if _, err := Load("nope.yaml"); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}
