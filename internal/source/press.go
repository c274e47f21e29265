package source

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// PressSource reads government press releases from one or more RSS/Atom
// feeds and filters them against the search terms.
type PressSource struct {
	feedURLs []string
	parser   *gofeed.Parser
}

// NewPressSource creates a press release feed source.
func NewPressSource(feedURLs []string) *PressSource {
	return &PressSource{
		feedURLs: feedURLs,
		parser:   gofeed.NewParser(),
	}
}

// Fetch pulls every configured feed and keeps items mentioning any
// search term in their title or description. Feed transport failures
// abort with a *SourceError.
func (s *PressSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	var docs []models.Document

	for _, feedURL := range s.feedURLs {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, &SourceError{Source: "press", Err: err}
		}

		for _, item := range feed.Items {
			if !matchesAny(item, terms) {
				continue
			}

			date := ""
			if item.PublishedParsed != nil {
				date = item.PublishedParsed.Format(models.DateLayout)
			}

			speaker := feed.Title
			if len(item.Authors) > 0 && item.Authors[0].Name != "" {
				speaker = item.Authors[0].Name
			}

			docs = append(docs, models.Document{
				ID:          uuid.New(),
				Title:       item.Title,
				Content:     item.Description,
				Source:      feed.Title,
				URL:         item.Link,
				Date:        date,
				Speaker:     speaker,
				Type:        models.TypePressRelease,
				Reliability: models.ReliabilityHigh,
			})
		}
	}

	return Dedupe(docs), nil
}

func matchesAny(item *gofeed.Item, terms []string) bool {
	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, term := range terms {
		for _, word := range strings.Fields(strings.ToLower(term)) {
			if strings.Contains(haystack, word) {
				return true
			}
		}
	}
	return false
}
