// Package bravesearch is a search backend for the Brave Search web API.
//
// Requests go to /web/search with the X-Subscription-Token header set from
// BRAVE_SEARCH_API_KEY. The result count is clamped to 1..20, the maximum
// the API accepts. Without a key, Search returns [search.ErrMissingAPIKey].
package bravesearch
