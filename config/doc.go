// Package config holds the typed configuration of sitefinder.
//
// Values come from, in increasing precedence: Default, an optional YAML or
// JSON file, and SITEFINDER_* environment variables. Nested keys map to
// environment names by upper-casing and replacing "." with "_", so
// cache.backend becomes SITEFINDER_CACHE_BACKEND. A .env file in the working
// directory is loaded first when present.
//
// Search provider keys also honour the provider-native variables
// SERPAPI_KEY, SERPAPI_API_KEY and BRAVE_SEARCH_API_KEY.
package config
