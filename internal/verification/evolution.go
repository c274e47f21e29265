package verification

import (
	"fmt"
	"sort"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// PolicyStance is a coarse classification of a document's position.
type PolicyStance string

const (
	StanceSupportive  PolicyStance = "supportive"
	StanceOpposing    PolicyStance = "opposing"
	StanceNeutral     PolicyStance = "neutral"
	StanceExpanding   PolicyStance = "expanding"
	StanceRestricting PolicyStance = "restricting"
	StanceUnclear     PolicyStance = "unclear"
)

// TimelineEntry records one observed policy position in time.
type TimelineEntry struct {
	Date           string          `json:"date"`
	Document       models.Document `json:"document"`
	Stance         PolicyStance    `json:"stance"`
	Change         string          `json:"change"` // initial_position or position_change
	PreviousStance PolicyStance    `json:"previousStance,omitempty"`
}

// PolicyEvolution is the date-ordered sequence of stance changes derived
// from a document set for one query.
type PolicyEvolution struct {
	Timeline         []TimelineEntry `json:"timeline"`
	EvolutionSummary string          `json:"evolutionSummary"`
	TotalChanges     int             `json:"totalChanges"`
}

// TrackPolicyEvolution walks the documents in ascending date order and
// records an entry whenever the detected stance differs from the
// previously recorded one. Sorting is stable, so same-day documents keep
// their input order. Documents with unparseable dates are excluded.
func (s *Service) TrackPolicyEvolution(documents []models.Document, query string) PolicyEvolution {
	dated := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		if _, ok := models.ParseDate(doc.Date); ok {
			dated = append(dated, doc)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		ti, _ := models.ParseDate(dated[i].Date)
		tj, _ := models.ParseDate(dated[j].Date)
		return ti.Before(tj)
	})

	var timeline []TimelineEntry
	var previous PolicyStance

	for _, doc := range dated {
		stance := extractPolicyStance(doc)
		if stance == previous {
			continue
		}

		change := "position_change"
		if previous == "" {
			change = "initial_position"
		}
		timeline = append(timeline, TimelineEntry{
			Date:           doc.Date,
			Document:       doc,
			Stance:         stance,
			Change:         change,
			PreviousStance: previous,
		})
		previous = stance
	}

	totalChanges := 0
	for _, entry := range timeline {
		if entry.Change == "position_change" {
			totalChanges++
		}
	}

	return PolicyEvolution{
		Timeline:         timeline,
		EvolutionSummary: evolutionSummary(timeline),
		TotalChanges:     totalChanges,
	}
}

// extractPolicyStance reads a stance from common policy language. Rules
// are checked in priority order; the first match wins.
func extractPolicyStance(doc models.Document) PolicyStance {
	content := strings.ToLower(doc.Content)

	switch {
	case strings.Contains(content, "will implement") || strings.Contains(content, "committed to"):
		return StanceSupportive
	case strings.Contains(content, "will not") || strings.Contains(content, "reject"):
		return StanceOpposing
	case strings.Contains(content, "under review") || strings.Contains(content, "considering"):
		return StanceNeutral
	case strings.Contains(content, "increase") || strings.Contains(content, "expand"):
		return StanceExpanding
	case strings.Contains(content, "reduce") || strings.Contains(content, "limit"):
		return StanceRestricting
	}

	return StanceUnclear
}

func evolutionSummary(timeline []TimelineEntry) string {
	if len(timeline) == 0 {
		return "No policy evolution detected"
	}
	if len(timeline) == 1 {
		return "Single policy position maintained"
	}

	changes := len(timeline) - 1
	return fmt.Sprintf("Policy evolved %d times from %s to %s",
		changes, timeline[0].Date, timeline[len(timeline)-1].Date)
}
