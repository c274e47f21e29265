package comparison

import (
	"fmt"
	"math"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// Service performs pair identification and detailed document comparison.
type Service struct {
	classifier StanceClassifier
}

// NewService creates a comparison service. A nil classifier selects the
// keyword baseline.
func NewService(classifier StanceClassifier) *Service {
	if classifier == nil {
		classifier = NewKeywordStanceClassifier()
	}
	return &Service{classifier: classifier}
}

// TimeDifference describes the temporal relationship of two documents.
type TimeDifference struct {
	Document1Date      string `json:"document1_date"`
	Document2Date      string `json:"document2_date"`
	DaysApart          int    `json:"days_apart"`
	ChronologicalOrder string `json:"chronological_order"`
}

// SpeakerDifference describes the attribution relationship of two documents.
type SpeakerDifference struct {
	Document1Speaker string `json:"document1_speaker"`
	Document2Speaker string `json:"document2_speaker"`
	SameSpeaker      bool   `json:"same_speaker"`
}

// SourceDifference describes the source relationship of two documents.
type SourceDifference struct {
	Document1Source string `json:"document1_source"`
	Document2Source string `json:"document2_source"`
	SameSourceType  bool   `json:"same_source_type"`
}

// MetadataComparison bundles the metadata-level diff of two documents.
type MetadataComparison struct {
	TimeDifference    TimeDifference    `json:"time_difference"`
	SpeakerDifference SpeakerDifference `json:"speaker_difference"`
	SourceDifference  SourceDifference  `json:"source_difference"`
}

// ContentAnalysis is the lexical overlap picture for two documents.
type ContentAnalysis struct {
	ContentOverlap float64  `json:"content_overlap"`
	UniqueToDoc1   []string `json:"unique_to_document1"`
	UniqueToDoc2   []string `json:"unique_to_document2"`
	CommonThemes   []string `json:"common_themes"`
}

// StanceComparison is the stance-level diff for two documents.
type StanceComparison struct {
	Document1Stance        Stance `json:"document1_stance"`
	Document2Stance        Stance `json:"document2_stance"`
	StanceAlignment        string `json:"stance_alignment"`
	PotentialContradiction bool   `json:"potential_contradiction"`
}

// DetailedComparison is the full structured diff of two documents.
type DetailedComparison struct {
	Metadata       MetadataComparison `json:"metadata_comparison"`
	Content        ContentAnalysis    `json:"content_analysis"`
	Stances        StanceComparison   `json:"stance_comparison"`
	KeyDifferences []string           `json:"key_differences"`
	Similarities   []string           `json:"similarities"`
}

// PerformDetailedComparison produces the full structured diff of two
// documents. Symmetric in overlap and alignment: swapping the inputs
// swaps side-specific fields only.
func (s *Service) PerformDetailedComparison(doc1, doc2 models.Document) DetailedComparison {
	return DetailedComparison{
		Metadata:       compareMetadata(doc1, doc2),
		Content:        analyzeContentDifferences(doc1, doc2),
		Stances:        s.compareStances(doc1, doc2),
		KeyDifferences: s.extractKeyDifferences(doc1, doc2),
		Similarities:   s.findSimilarities(doc1, doc2),
	}
}

func compareMetadata(doc1, doc2 models.Document) MetadataComparison {
	days, _ := models.DaysApart(doc1.Date, doc2.Date)

	order := "doc2_first"
	t1, ok1 := models.ParseDate(doc1.Date)
	t2, ok2 := models.ParseDate(doc2.Date)
	if ok1 && ok2 && t1.Before(t2) {
		order = "doc1_first"
	}

	return MetadataComparison{
		TimeDifference: TimeDifference{
			Document1Date:      doc1.Date,
			Document2Date:      doc2.Date,
			DaysApart:          days,
			ChronologicalOrder: order,
		},
		SpeakerDifference: SpeakerDifference{
			Document1Speaker: doc1.Speaker,
			Document2Speaker: doc2.Speaker,
			SameSpeaker:      doc1.Speaker == doc2.Speaker,
		},
		SourceDifference: SourceDifference{
			Document1Source: doc1.Source,
			Document2Source: doc2.Source,
			SameSourceType:  doc1.Type == doc2.Type,
		},
	}
}

// tokenSet folds content to lower case and splits on single spaces,
// returning the distinct tokens in first-occurrence order. Plain space
// splitting is intentional: the overlap numbers match the wire content
// rather than a normalized token stream.
func tokenSet(content string) ([]string, map[string]bool) {
	words := strings.Split(strings.ToLower(content), " ")
	set := make(map[string]bool, len(words))
	var ordered []string
	for _, w := range words {
		if !set[w] {
			set[w] = true
			ordered = append(ordered, w)
		}
	}
	return ordered, set
}

func analyzeContentDifferences(doc1, doc2 models.Document) ContentAnalysis {
	ordered1, set1 := tokenSet(doc1.Content)
	ordered2, set2 := tokenSet(doc2.Content)

	var common, unique1, unique2 []string
	for _, w := range ordered1 {
		if set2[w] {
			common = append(common, w)
		} else {
			unique1 = append(unique1, w)
		}
	}
	for _, w := range ordered2 {
		if !set1[w] {
			unique2 = append(unique2, w)
		}
	}

	max := len(set1)
	if len(set2) > max {
		max = len(set2)
	}
	overlap := 0.0
	if max > 0 {
		overlap = math.Round(float64(len(common))/float64(max)*1000) / 10
	}

	var themes []string
	for _, w := range common {
		if len(w) > 4 {
			themes = append(themes, w)
			if len(themes) == 5 {
				break
			}
		}
	}

	return ContentAnalysis{
		ContentOverlap: overlap,
		UniqueToDoc1:   head(unique1, 10),
		UniqueToDoc2:   head(unique2, 10),
		CommonThemes:   themes,
	}
}

func head(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func (s *Service) compareStances(doc1, doc2 models.Document) StanceComparison {
	stance1 := s.classifier.Classify(doc1.Content)
	stance2 := s.classifier.Classify(doc2.Content)

	return StanceComparison{
		Document1Stance: stance1,
		Document2Stance: stance2,
		StanceAlignment: stanceAlignment(stance1, stance2),
		// Both tone and commitment must differ, not either.
		PotentialContradiction: stance1.Tone != stance2.Tone && stance1.Commitment != stance2.Commitment,
	}
}

func stanceAlignment(stance1, stance2 Stance) string {
	score := 0
	if stance1.Tone == stance2.Tone {
		score += 33
	}
	if stance1.Commitment == stance2.Commitment {
		score += 33
	}
	if stance1.Urgency == stance2.Urgency {
		score += 34
	}

	switch {
	case score >= 67:
		return "high_alignment"
	case score >= 34:
		return "partial_alignment"
	default:
		return "low_alignment"
	}
}

func (s *Service) extractKeyDifferences(doc1, doc2 models.Document) []string {
	var differences []string

	if days, ok := models.DaysApart(doc1.Date, doc2.Date); ok && days > 30 {
		differences = append(differences, fmt.Sprintf("Documents are %d days apart", days))
	}

	if doc1.Speaker != doc2.Speaker {
		differences = append(differences, fmt.Sprintf("Different speakers: %s vs %s", doc1.Speaker, doc2.Speaker))
	}

	stance1 := s.classifier.Classify(doc1.Content)
	stance2 := s.classifier.Classify(doc2.Content)
	if stance1.Tone != stance2.Tone {
		differences = append(differences, fmt.Sprintf("Different tones: %s vs %s", stance1.Tone, stance2.Tone))
	}

	return differences
}

func (s *Service) findSimilarities(doc1, doc2 models.Document) []string {
	var similarities []string

	if doc1.Speaker == doc2.Speaker {
		similarities = append(similarities, "Both from "+doc1.Speaker)
	}

	if days, ok := models.DaysApart(doc1.Date, doc2.Date); ok && days <= 30 {
		similarities = append(similarities, "Similar timeframe")
	}

	content := analyzeContentDifferences(doc1, doc2)
	if content.ContentOverlap > 30 {
		similarities = append(similarities, fmt.Sprintf("%.1f%% content overlap", content.ContentOverlap))
	}

	return similarities
}

// Summary renders a short natural-language digest of a comparison.
func Summary(comparison DetailedComparison, doc1, doc2 models.Document) string {
	parts := []string{
		fmt.Sprintf("Comparing statements from %s and %s", doc1.Date, doc2.Date),
	}

	if comparison.Stances.PotentialContradiction {
		parts = append(parts, "Potential contradiction detected between positions")
	} else {
		parts = append(parts, "Positions show "+strings.ReplaceAll(comparison.Stances.StanceAlignment, "_", " "))
	}

	if comparison.Content.ContentOverlap > 50 {
		parts = append(parts, "High content similarity suggests consistent messaging")
	} else if comparison.Content.ContentOverlap < 20 {
		parts = append(parts, "Low content similarity suggests different focus areas")
	}

	return strings.Join(parts, ". ")
}
