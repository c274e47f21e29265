package verification

import (
	"math"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// CalculateContentConfidence returns copies of the documents enriched
// with a 0-100 confidence score and the human-readable factors behind
// it. Enrichment is additive: every original field is preserved.
func (s *Service) CalculateContentConfidence(documents []models.Document, query string) []models.Document {
	enriched := make([]models.Document, len(documents))
	for i, doc := range documents {
		enriched[i] = doc
		enriched[i].ConfidenceScore = s.contentConfidence(doc, query)
		enriched[i].ConfidenceFactors = s.confidenceFactors(doc)
	}
	return enriched
}

// contentConfidence scores how well one document supports the query,
// from source type, recency, and lexical overlap with the query words.
func (s *Service) contentConfidence(doc models.Document, query string) int {
	score := 50.0

	switch doc.Type {
	case models.TypeParliamentaryDebate:
		score += 30
	case models.TypePressRelease:
		score += 20
	default:
		score += 10
	}

	if t, ok := models.ParseDate(doc.Date); ok {
		age := s.now().Sub(t).Hours() / 24
		switch {
		case age < 30:
			score += 15
		case age < 90:
			score += 10
		case age < 365:
			score += 5
		default:
			score -= 5
		}
	}

	queryWords := strings.Split(strings.ToLower(query), " ")
	content := strings.ToLower(doc.Content)
	matching := 0
	for _, w := range queryWords {
		if strings.Contains(content, w) {
			matching++
		}
	}
	if len(queryWords) > 0 {
		score += float64(matching) / float64(len(queryWords)) * 20
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

func (s *Service) confidenceFactors(doc models.Document) []string {
	var factors []string

	if doc.Type == models.TypeParliamentaryDebate {
		factors = append(factors, "Official parliamentary record")
	}

	if t, ok := models.ParseDate(doc.Date); ok {
		age := s.now().Sub(t).Hours() / 24
		if age < 30 {
			factors = append(factors, "Recent statement")
		} else if age > 365 {
			factors = append(factors, "Older statement - may be outdated")
		}
	}

	if strings.Contains(doc.Speaker, "Minister") {
		factors = append(factors, "High-level government official")
	}

	return factors
}
