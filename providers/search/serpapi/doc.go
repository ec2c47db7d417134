// Package serpapi is a search backend returning Google organic results
// through the SerpAPI JSON endpoint, localised for Turkey (hl=tr, gl=tr).
//
// The API key is read from SERPAPI_KEY, falling back to SERPAPI_API_KEY.
// Without a key, Search returns [search.ErrMissingAPIKey].
package serpapi
