// Package cache defines the content and query cache shared by every
// resolution run in a process.
//
// The cache holds two independent keyspaces: fetched pages keyed by URL and
// ordered search results keyed by normalized query. Entries never expire and
// are only overwritten by a later fetch of the same key. Implementations must
// be safe for concurrent use:
//
//   - [github.com/leofalp/sitefinder/providers/cache/inmemory]: process-local maps.
//   - [github.com/leofalp/sitefinder/providers/cache/pgcache]: PostgreSQL via pgx.
//   - [github.com/leofalp/sitefinder/providers/cache/rediscache]: Redis hashes.
package cache
