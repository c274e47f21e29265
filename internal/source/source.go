// Package source provides document acquisition: live scraping of
// parliamentary and press sources, template-driven fallback data, social
// media search, and a concurrent multi-source merger. The research core
// only depends on the Source interface; everything else here is
// interchangeable plumbing.
package source

import (
	"context"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// Source returns documents matching a set of search terms, guided by the
// query analyzer's strategy. An empty result is not an error; Fetch only
// fails for genuine transport failures, reported as *SourceError.
type Source interface {
	Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error)
}

// SourceError reports a document source transport failure.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return "document source " + e.Source + " failed: " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// Dedupe removes documents sharing a (date, speaker, title) key, keeping
// the first occurrence.
func Dedupe(documents []models.Document) []models.Document {
	seen := make(map[string]bool, len(documents))
	unique := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		key := doc.Date + "-" + doc.Speaker + "-" + doc.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, doc)
	}
	return unique
}
