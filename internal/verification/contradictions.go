package verification

import (
	"fmt"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// Severity grades how serious a detected contradiction is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// AntonymPair is one contradiction rule: a pair of terms whose joint
// appearance across two documents signals conflicting positions.
type AntonymPair struct {
	Left  string
	Right string
}

// DefaultAntonymPairs is the fixed, ordered contradiction rule table.
// Rule order matters: the first matching rule for a document pair wins.
func DefaultAntonymPairs() []AntonymPair {
	return []AntonymPair{
		{"increase", "decrease"},
		{"support", "oppose"},
		{"approve", "reject"},
		{"will implement", "will not implement"},
		{"mandatory", "optional"},
		{"temporary", "permanent"},
	}
}

// Contradiction is a flagged pair of documents containing opposing terms.
type Contradiction struct {
	Documents        [2]models.Document `json:"documents"`
	ConflictingTerms [2]string          `json:"conflictingTerms"`
	Severity         Severity           `json:"severity"`
	Description      string             `json:"description"`
}

// DetectContradictions tests every unordered pair of documents against
// the antonym rule table. Each pair is compared once and yields at most
// one contradiction: the first rule matching in either direction. The
// reported term order follows the input document order, but the set of
// (pair, rule) hits is independent of input ordering.
func (s *Service) DetectContradictions(documents []models.Document) []Contradiction {
	var contradictions []Contradiction

	for i := 0; i < len(documents); i++ {
		for j := i + 1; j < len(documents); j++ {
			if c, ok := s.comparePair(documents[i], documents[j]); ok {
				contradictions = append(contradictions, c)
			}
		}
	}

	return contradictions
}

func (s *Service) comparePair(doc1, doc2 models.Document) (Contradiction, bool) {
	content1 := strings.ToLower(doc1.Content)
	content2 := strings.ToLower(doc2.Content)

	for _, pair := range s.antonyms {
		var terms [2]string
		switch {
		case strings.Contains(content1, pair.Left) && strings.Contains(content2, pair.Right):
			terms = [2]string{pair.Left, pair.Right}
		case strings.Contains(content1, pair.Right) && strings.Contains(content2, pair.Left):
			terms = [2]string{pair.Right, pair.Left}
		default:
			continue
		}

		return Contradiction{
			Documents:        [2]models.Document{doc1, doc2},
			ConflictingTerms: terms,
			Severity:         SeverityHigh,
			Description: fmt.Sprintf("Document from %s mentions %q while document from %s mentions %q",
				doc1.Date, terms[0], doc2.Date, terms[1]),
		}, true
	}

	return Contradiction{}, false
}
