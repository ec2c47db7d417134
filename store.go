package sitefinder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leofalp/sitefinder/config"
	"github.com/leofalp/sitefinder/providers/cache"
	"github.com/leofalp/sitefinder/providers/cache/inmemory"
	"github.com/leofalp/sitefinder/providers/cache/pgcache"
	"github.com/leofalp/sitefinder/providers/cache/rediscache"
)

// OpenStore connects the cache backend named by cfg. The returned function
// releases the connection; it is never nil.
func OpenStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, func() error, error) {
	switch cfg.Backend {
	case config.CacheMemory, "":
		return inmemory.New(), func() error { return nil }, nil

	case config.CachePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("error connecting to postgres: %w", err)
		}
		store := pgcache.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, func() error { pool.Close(); return nil }, nil

	case config.CacheRedis:
		var opts []rediscache.Option
		if cfg.RedisPrefix != "" {
			opts = append(opts, rediscache.WithPrefix(cfg.RedisPrefix))
		}
		store, rdb, err := rediscache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		if err != nil {
			return nil, nil, err
		}
		return store, rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
