// Package pgcache implements [cache.Store] on PostgreSQL using pgx.
//
// Pages live in url_cache(url PRIMARY KEY, html, fetched_at) and search
// results in query_cache(query PRIMARY KEY, results, fetched_at), where
// results holds the URLs joined by newlines. Writes are upserts, so a
// refetch overwrites the previous entry.
//
// Callers supply any pgx executor: *pgxpool.Pool, *pgx.Conn or pgx.Tx.
// Thread safety is provided by the pool; the store itself holds no mutable
// state.
//
// Example:
//
//	pool, _ := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
//	store := pgcache.New(pool)
//	if err := store.EnsureSchema(ctx); err != nil {
//	    log.Fatal(err)
//	}
package pgcache
