package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITEFINDER"

// Load builds the configuration from Default, the optional file at path and
// the environment, then validates it. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize()
	applyProviderKeys(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads path into the process environment when it exists.
// Variables that are already set win.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key with viper so AutomaticEnv can override
// keys that no file mentions.
func setDefaults(v *viper.Viper, d Config) {
	defaults := map[string]any{
		"log.level":  d.Log.Level,
		"log.format": d.Log.Format,

		"cache.backend":        d.Cache.Backend,
		"cache.postgres_dsn":   d.Cache.PostgresDSN,
		"cache.redis_addr":     d.Cache.RedisAddr,
		"cache.redis_password": d.Cache.RedisPassword,
		"cache.redis_db":       d.Cache.RedisDB,
		"cache.redis_prefix":   d.Cache.RedisPrefix,

		"fetch.timeout":       d.Fetch.Timeout,
		"fetch.max_retries":   d.Fetch.MaxRetries,
		"fetch.backoff":       d.Fetch.Backoff,
		"fetch.max_body_size": d.Fetch.MaxBodySize,

		"politeness.rate_per_second": d.Politeness.RatePerSecond,
		"politeness.burst":           d.Politeness.Burst,
		"politeness.min_delay":       d.Politeness.MinDelay,
		"politeness.max_delay":       d.Politeness.MaxDelay,

		"search.backends":      d.Search.Backends,
		"search.min_results":   d.Search.MinResults,
		"search.limit":         d.Search.Limit,
		"search.serpapi_key":   d.Search.SerpAPIKey,
		"search.brave_api_key": d.Search.BraveAPIKey,
		"search.country":       d.Search.Country,

		"probe.dns_timeout": d.Probe.DNSTimeout,
		"probe.tls_timeout": d.Probe.TLSTimeout,

		"resolve.deep_verify":           d.Resolve.DeepVerify,
		"resolve.top_n":                 d.Resolve.TopN,
		"resolve.probability_threshold": d.Resolve.ProbabilityThreshold,
		"resolve.model_path":            d.Resolve.ModelPath,
		"resolve.concurrency":           d.Resolve.Concurrency,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// applyProviderKeys fills empty API keys from the provider-native variables.
func applyProviderKeys(cfg *Config) {
	if cfg.Search.SerpAPIKey == "" {
		cfg.Search.SerpAPIKey = firstEnv("SERPAPI_KEY", "SERPAPI_API_KEY")
	}
	if cfg.Search.BraveAPIKey == "" {
		cfg.Search.BraveAPIKey = firstEnv("BRAVE_SEARCH_API_KEY")
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
