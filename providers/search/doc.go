// Package search aggregates web search backends into one ordered,
// de-duplicated list of result URLs per query.
//
// Backends run in their configured order, each with its own result limit.
// Once the merged list holds [DefaultMinResults] URLs the remaining backends
// are skipped. Result lists are cached per normalized query in the shared
// [cache.Store]; a cached list is served without any network access, and
// identical concurrent misses share one backend round.
//
// [Aggregator.Search] never fails: a backend error is logged with its
// ioerr kind and contributes nothing. When every backend failed, the empty
// result is not cached so a later run can retry.
//
// Backends live in sub-packages:
//
//   - serpapi: Google results through SerpAPI (SERPAPI_KEY).
//   - bravesearch: the Brave Search API (BRAVE_SEARCH_API_KEY).
//   - duckduckgo: keyless scraping of the HTML and lite endpoints.
package search
