// Package verification cross-checks a retrieved document set: pairwise
// contradiction detection, policy evolution tracking, per-document
// confidence scoring, and side-by-side comparison views.
package verification

import (
	"fmt"
	"time"

	"github.com/limjk/policylens/internal/comparison"
	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/social"
	"github.com/limjk/policylens/pkg/models"
)

// Config holds verification engine configuration.
type Config struct {
	// Antonyms overrides the contradiction rule table. Nil selects
	// DefaultAntonymPairs.
	Antonyms []AntonymPair
	// Now overrides the clock used for recency scoring. Nil selects
	// time.Now.
	Now func() time.Time
}

// Service is the cross-verification engine. All of its operations are
// pure functions of the document set; a single instance is safe for
// concurrent use.
type Service struct {
	comparer *comparison.Service
	antonyms []AntonymPair
	now      func() time.Time
}

// NewService creates a verification engine around a document comparator.
// A nil comparator selects the keyword-baseline comparison service.
func NewService(comparer *comparison.Service, config Config) *Service {
	if comparer == nil {
		comparer = comparison.NewService(nil)
	}
	if config.Antonyms == nil {
		config.Antonyms = DefaultAntonymPairs()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Service{
		comparer: comparer,
		antonyms: config.Antonyms,
		now:      config.Now,
	}
}

// DocumentView is one side of a side-by-side comparison.
type DocumentView struct {
	Title          string            `json:"title"`
	Date           string            `json:"date"`
	Speaker        string            `json:"speaker"`
	Source         string            `json:"source"`
	ContentPreview string            `json:"content_preview"`
	StanceAnalysis comparison.Stance `json:"stance_analysis"`
}

// ComparisonAnalysis is the analytical block of a side-by-side view.
type ComparisonAnalysis struct {
	KeyDifferences         []string `json:"key_differences"`
	Similarities           []string `json:"similarities"`
	StanceAlignment        string   `json:"stance_alignment"`
	PotentialContradiction bool     `json:"potential_contradiction"`
	ContentOverlap         float64  `json:"content_overlap"`
}

// SideBySide pairs the two document views of a comparison.
type SideBySide struct {
	LeftDocument  DocumentView `json:"left_document"`
	RightDocument DocumentView `json:"right_document"`
}

// SideBySideComparison is the full view model for one compared pair.
type SideBySideComparison struct {
	ComparisonID     string              `json:"comparison_id"`
	ComparisonType   comparison.PairType `json:"comparison_type"`
	ComparisonReason string              `json:"comparison_reason"`
	SideBySide       SideBySide          `json:"side_by_side"`
	Analysis         ComparisonAnalysis  `json:"analysis"`
	Summary          string              `json:"summary"`
}

// GenerateSideBySideComparisons identifies comparable pairs for the query
// and renders a detailed view model for each.
func (s *Service) GenerateSideBySideComparisons(documents []models.Document, analysis *query.Analysis) []SideBySideComparison {
	pairs := s.comparer.IdentifyComparablePairs(documents, analysis)

	views := make([]SideBySideComparison, 0, len(pairs))
	for _, pair := range pairs {
		detailed := s.comparer.PerformDetailedComparison(pair.Document1, pair.Document2)

		views = append(views, SideBySideComparison{
			ComparisonID:     fmt.Sprintf("%s_vs_%s", pair.Document1.Date, pair.Document2.Date),
			ComparisonType:   pair.Type,
			ComparisonReason: pair.Reason,
			SideBySide: SideBySide{
				LeftDocument:  documentView(pair.Document1, detailed.Stances.Document1Stance),
				RightDocument: documentView(pair.Document2, detailed.Stances.Document2Stance),
			},
			Analysis: ComparisonAnalysis{
				KeyDifferences:         detailed.KeyDifferences,
				Similarities:           detailed.Similarities,
				StanceAlignment:        detailed.Stances.StanceAlignment,
				PotentialContradiction: detailed.Stances.PotentialContradiction,
				ContentOverlap:         detailed.Content.ContentOverlap,
			},
			Summary: comparison.Summary(detailed, pair.Document1, pair.Document2),
		})
	}

	return views
}

func documentView(doc models.Document, stance comparison.Stance) DocumentView {
	preview := doc.Content
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return DocumentView{
		Title:          doc.Title,
		Date:           doc.Date,
		Speaker:        doc.Speaker,
		Source:         doc.Source,
		ContentPreview: preview + "...",
		StanceAnalysis: stance,
	}
}

// GenerateSocialMediaCrossReference splits the documents into social
// posts and official sources and cross-references the two groups. Empty
// when either group is empty.
func (s *Service) GenerateSocialMediaCrossReference(documents []models.Document) []social.CrossReference {
	var socialPosts, officialDocs []models.Document
	for _, doc := range documents {
		if doc.Type == models.TypeSocialMedia {
			socialPosts = append(socialPosts, doc)
		} else {
			officialDocs = append(officialDocs, doc)
		}
	}

	if len(socialPosts) == 0 || len(officialDocs) == 0 {
		return []social.CrossReference{}
	}

	return social.CrossReferenceOfficialSources(socialPosts, officialDocs)
}
