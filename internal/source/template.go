package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// TemplateSource produces deterministic template documents shaped by the
// search strategy. It stands in for live government site scraping in
// development and demos, and backs the fallback path when live sources
// fail.
type TemplateSource struct{}

// NewTemplateSource creates a template document source.
func NewTemplateSource() *TemplateSource {
	return &TemplateSource{}
}

// Fetch generates documents for the strategy: a statement/announcement
// pair for comparative queries, a five-point series for chronological
// queries, and one debate plus one press release per term otherwise.
func (s *TemplateSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	switch strategy.Type {
	case query.StrategyComparative:
		return comparativeDocuments(), nil
	case query.StrategyChronological:
		topic := ""
		if len(terms) > 0 {
			topic = terms[0]
		}
		return chronologicalDocuments(topic), nil
	default:
		var docs []models.Document
		for _, term := range terms {
			docs = append(docs, hansardDocument(term), pressDocument(term))
		}
		return Dedupe(docs), nil
	}
}

func comparativeDocuments() []models.Document {
	return []models.Document{
		{
			ID:          uuid.New(),
			Title:       "Parliamentary Statement: BTO Waiting Times - March",
			Content:     `Minister Wong stated in Parliament: "We acknowledge that BTO waiting times have increased to an average of 4-5 years. The government is reviewing our housing supply strategy and will announce new measures by the end of the year."`,
			Source:      "Hansard Parliamentary Debates",
			URL:         "https://sprs.parl.gov.sg/search/topic/BTO-waiting-times-march",
			Date:        "2024-03-15",
			Speaker:     "Minister Wong",
			Type:        models.TypeParliamentaryDebate,
			Reliability: models.ReliabilityHigh,
		},
		{
			ID:          uuid.New(),
			Title:       "Ministry Press Release: New BTO Measures Announced",
			Content:     "The Ministry of National Development announced today that BTO waiting times will be reduced through increased land allocation. New measures include releasing 25% more BTO units and fast-tracking approval processes to achieve 3-year waiting times by 2025.",
			Source:      "MND Press Release",
			URL:         "https://www.mnd.gov.sg/newsroom/press-releases/bto-measures-2024",
			Date:        "2024-06-20",
			Speaker:     "MND Spokesperson",
			Type:        models.TypePressRelease,
			Reliability: models.ReliabilityHigh,
		},
	}
}

func chronologicalDocuments(topic string) []models.Document {
	timePoints := []string{"2023-06-15", "2023-12-10", "2024-03-15", "2024-06-20", "2024-09-10"}

	docs := make([]models.Document, 0, len(timePoints))
	for i, date := range timePoints {
		phase := "evolving"
		if i == 0 {
			phase = "initial"
		} else if i == len(timePoints)-1 {
			phase = "latest"
		}

		doc := models.Document{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Policy Statement %d: Timeline Analysis", i+1),
			Content:     fmt.Sprintf("Policy evolution point %d: Government position on %s as of %s. This represents the %s stance on the matter.", i+1, topic, date, phase),
			URL:         "https://example.gov.sg/policy-timeline/" + date,
			Date:        date,
			Reliability: models.ReliabilityHigh,
		}
		if i%2 == 0 {
			doc.Source = "Hansard Parliamentary Debates"
			doc.Speaker = "Minister Wong"
			doc.Type = models.TypeParliamentaryDebate
		} else {
			doc.Source = "Government Press Release"
			doc.Speaker = "Ministry Spokesperson"
			doc.Type = models.TypePressRelease
		}
		docs = append(docs, doc)
	}

	return docs
}

func hansardDocument(term string) models.Document {
	return models.Document{
		ID:          uuid.New(),
		Title:       "Hansard Search Result: " + term,
		Content:     fmt.Sprintf("Parliamentary discussion on %s: Government representatives addressed policy measures and implementation strategies.", term),
		Source:      "Hansard Parliamentary Debates",
		URL:         "https://sprs.parl.gov.sg/search/topic/" + url.PathEscape(term),
		Date:        "2024-03-15",
		Speaker:     "Minister Wong",
		Type:        models.TypeParliamentaryDebate,
		Reliability: models.ReliabilityHigh,
	}
}

func pressDocument(term string) models.Document {
	return models.Document{
		ID:          uuid.New(),
		Title:       "Press Release: " + term,
		Content:     fmt.Sprintf("Ministry announcement regarding %s: New measures and policies have been implemented to address current challenges.", term),
		Source:      "Government Press Release",
		URL:         "https://www.gov.sg/newsroom/press-releases/" + url.PathEscape(term),
		Date:        "2024-04-10",
		Speaker:     "Ministry Spokesperson",
		Type:        models.TypePressRelease,
		Reliability: models.ReliabilityHigh,
	}
}

// FallbackDocuments derives a minimal deterministic document set from a
// query analysis, used when every live source fails. Acronym entities
// give the pipeline at least some expanded context to reason about.
func FallbackDocuments(analysis *query.Analysis) []models.Document {
	var docs []models.Document
	for _, match := range analysis.Entities.Acronyms {
		docs = append(docs, models.Document{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Parliamentary Discussion: %s Policy", match.Acronym),
			Content:     fmt.Sprintf("Minister Wong addressed %s (%s) policy, stating: \"The government will enhance %s measures to better serve Singaporeans.\"", match.Acronym, match.Expansions[0], match.Expansions[0]),
			Source:      "Hansard Parliamentary Debates",
			URL:         "https://sprs.parl.gov.sg/search/topic/" + match.Acronym,
			Date:        "2024-03-15",
			Speaker:     "Minister Wong",
			Type:        models.TypeParliamentaryDebate,
			Reliability: models.ReliabilityHigh,
		})
	}
	return docs
}
