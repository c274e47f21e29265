// Package storage holds the optional Postgres-backed cache of fetched
// document sets. The research pipeline itself is persistence-free; the
// cache only short-circuits repeated retrieval for identical searches.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/limjk/policylens/pkg/models"
)

// SearchCache stores and retrieves document sets keyed by search term.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]models.Document, bool, error)
	Put(ctx context.Context, key string, documents []models.Document) error
	Purge(ctx context.Context, olderThan time.Duration) error
}

// PostgresSearchCache implements SearchCache using PostgreSQL.
type PostgresSearchCache struct {
	db  *sql.DB
	ttl time.Duration
}

// DefaultCacheTTL is how long a cached document set stays valid.
const DefaultCacheTTL = 15 * time.Minute

// NewPostgresSearchCache creates a Postgres search cache. A zero ttl
// selects DefaultCacheTTL.
func NewPostgresSearchCache(db *sql.DB, ttl time.Duration) *PostgresSearchCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &PostgresSearchCache{db: db, ttl: ttl}
}

// Get returns the cached documents for a key if a fresh entry exists.
// The boolean reports a cache hit; a missing or expired entry is not an
// error.
func (c *PostgresSearchCache) Get(ctx context.Context, key string) ([]models.Document, bool, error) {
	query := `
		SELECT documents
		FROM search_cache
		WHERE search_key = $1 AND created_at > $2
	`

	var payload []byte
	err := c.db.QueryRowContext(ctx, query, key, time.Now().Add(-c.ttl)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var documents []models.Document
	if err := json.Unmarshal(payload, &documents); err != nil {
		return nil, false, err
	}

	return documents, true, nil
}

// Put stores a document set for a key, replacing any previous entry.
func (c *PostgresSearchCache) Put(ctx context.Context, key string, documents []models.Document) error {
	payload, err := json.Marshal(documents)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_cache (search_key, documents, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (search_key) DO UPDATE
		SET documents = EXCLUDED.documents, created_at = EXCLUDED.created_at
	`

	_, err = c.db.ExecContext(ctx, query, key, payload, time.Now())
	return err
}

// Purge removes entries older than the given age.
func (c *PostgresSearchCache) Purge(ctx context.Context, olderThan time.Duration) error {
	query := `DELETE FROM search_cache WHERE created_at < $1`
	_, err := c.db.ExecContext(ctx, query, time.Now().Add(-olderThan))
	return err
}
