package source

import (
	"context"
	"sync"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// MultiSource fans a fetch out to several independent sources
// concurrently and merges the results. Downstream analysis is a pure
// function of the complete document set, so merge order only affects
// presentation; results are appended in source order regardless of
// completion order. A source failure is tolerated as long as at least
// one source succeeds; if all fail, the first error is returned.
type MultiSource struct {
	sources []Source
}

// NewMultiSource combines document sources.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Fetch queries every source concurrently, merges, and dedupes.
func (s *MultiSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	if len(s.sources) == 0 {
		return nil, nil
	}

	results := make([][]models.Document, len(s.sources))
	errs := make([]error, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i], errs[i] = src.Fetch(ctx, terms, strategy)
		}(i, src)
	}
	wg.Wait()

	var merged []models.Document
	succeeded := false
	for i := range s.sources {
		if errs[i] != nil {
			continue
		}
		succeeded = true
		merged = append(merged, results[i]...)
	}

	if !succeeded {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return Dedupe(merged), nil
}
