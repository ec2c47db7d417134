package pgcache

import (
	"context"
	"fmt"
)

// createURLTableSQL creates the page table.
const createURLTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    url        TEXT PRIMARY KEY,
    html       TEXT NOT NULL,
    fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// createQueryTableSQL creates the search result table.
const createQueryTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    query      TEXT PRIMARY KEY,
    results    TEXT NOT NULL,
    fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates both cache tables if they do not exist. Production
// deployments may manage the same DDL with their migration tool instead.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createURLTableSQL, s.urlTable)); err != nil {
		return fmt.Errorf("pgcache: create url table: %w", err)
	}
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createQueryTableSQL, s.queryTable)); err != nil {
		return fmt.Errorf("pgcache: create query table: %w", err)
	}
	return nil
}
