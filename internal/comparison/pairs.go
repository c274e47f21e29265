package comparison

import (
	"fmt"
	"sort"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// PairType classifies why two documents were nominated for comparison.
type PairType string

const (
	PairTemporal PairType = "temporal_comparison"
	PairSpeaker  PairType = "speaker_comparison"
	PairSource   PairType = "source_comparison"
)

// ComparablePair is two documents nominated for side-by-side comparison.
type ComparablePair struct {
	Type      PairType
	Document1 models.Document
	Document2 models.Document
	Reason    string
}

// IdentifyComparablePairs nominates document pairs worth comparing. Pairs
// are only produced for queries with comparison or timeline intent. Each
// grouping (calendar year, speaker, source type) contributes all pairs of
// group representatives, where the representative is the first document
// encountered in that group. A grouping with fewer than two groups
// contributes nothing.
func (s *Service) IdentifyComparablePairs(documents []models.Document, analysis *query.Analysis) []ComparablePair {
	var pairs []ComparablePair

	if !analysis.HasIntent("comparison") && !analysis.HasIntent("timeline") {
		return pairs
	}

	// Documents from different time periods.
	yearKeys, yearGroups := groupByYear(documents)
	if len(yearKeys) >= 2 {
		for i := 0; i < len(yearKeys)-1; i++ {
			for j := i + 1; j < len(yearKeys); j++ {
				pairs = append(pairs, ComparablePair{
					Type:      PairTemporal,
					Document1: yearGroups[yearKeys[i]][0],
					Document2: yearGroups[yearKeys[j]][0],
					Reason:    "Different time periods",
				})
			}
		}
	}

	// Documents from different speakers about the same topic.
	speakerKeys, speakerGroups := groupBySpeaker(documents)
	if len(speakerKeys) >= 2 {
		for i := 0; i < len(speakerKeys)-1; i++ {
			for j := i + 1; j < len(speakerKeys); j++ {
				pairs = append(pairs, ComparablePair{
					Type:      PairSpeaker,
					Document1: speakerGroups[speakerKeys[i]][0],
					Document2: speakerGroups[speakerKeys[j]][0],
					Reason:    fmt.Sprintf("Different speakers: %s vs %s", speakerKeys[i], speakerKeys[j]),
				})
			}
		}
	}

	// Documents from different source types.
	typeKeys, typeGroups := groupBySourceType(documents)
	if len(typeKeys) >= 2 {
		for i := 0; i < len(typeKeys)-1; i++ {
			for j := i + 1; j < len(typeKeys); j++ {
				pairs = append(pairs, ComparablePair{
					Type:      PairSource,
					Document1: typeGroups[typeKeys[i]][0],
					Document2: typeGroups[typeKeys[j]][0],
					Reason:    fmt.Sprintf("Different sources: %s vs %s", typeKeys[i], typeKeys[j]),
				})
			}
		}
	}

	return pairs
}

// groupByYear buckets documents by calendar year, ascending. Documents
// with unparseable dates are excluded.
func groupByYear(documents []models.Document) ([]int, map[int][]models.Document) {
	groups := make(map[int][]models.Document)
	var keys []int
	for _, doc := range documents {
		t, ok := models.ParseDate(doc.Date)
		if !ok {
			continue
		}
		year := t.Year()
		if _, exists := groups[year]; !exists {
			keys = append(keys, year)
		}
		groups[year] = append(groups[year], doc)
	}
	sort.Ints(keys)
	return keys, groups
}

// groupBySpeaker buckets documents by speaker in first-seen order,
// defaulting to "Unknown".
func groupBySpeaker(documents []models.Document) ([]string, map[string][]models.Document) {
	groups := make(map[string][]models.Document)
	var keys []string
	for _, doc := range documents {
		speaker := doc.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		if _, exists := groups[speaker]; !exists {
			keys = append(keys, speaker)
		}
		groups[speaker] = append(groups[speaker], doc)
	}
	return keys, groups
}

// groupBySourceType buckets documents by type in first-seen order,
// defaulting to unknown.
func groupBySourceType(documents []models.Document) ([]string, map[string][]models.Document) {
	groups := make(map[string][]models.Document)
	var keys []string
	for _, doc := range documents {
		sourceType := string(doc.Type)
		if sourceType == "" {
			sourceType = string(models.TypeUnknown)
		}
		if _, exists := groups[sourceType]; !exists {
			keys = append(keys, sourceType)
		}
		groups[sourceType] = append(groups[sourceType], doc)
	}
	return keys, groups
}
