package source

import (
	"context"
	"log"
	"strings"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/storage"
	"github.com/limjk/policylens/pkg/models"
)

// CachedSource wraps a source with a search cache. Cache failures are
// logged and ignored: the cache can only make retrieval faster, never
// make it fail.
type CachedSource struct {
	inner Source
	cache storage.SearchCache
}

// NewCachedSource wraps a source with a cache.
func NewCachedSource(inner Source, cache storage.SearchCache) *CachedSource {
	return &CachedSource{inner: inner, cache: cache}
}

// Fetch serves from the cache when a fresh entry exists, otherwise
// delegates to the wrapped source and stores its result.
func (s *CachedSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	key := string(strategy.Type) + "|" + strings.Join(terms, "|")

	if docs, hit, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("search cache read failed: %v", err)
	} else if hit {
		return docs, nil
	}

	docs, err := s.inner.Fetch(ctx, terms, strategy)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, key, docs); err != nil {
		log.Printf("search cache write failed: %v", err)
	}

	return docs, nil
}
