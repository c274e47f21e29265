package query

import (
	"strings"
)

// StrategyType classifies how retrieval should approach a query.
type StrategyType string

const (
	StrategyComparative   StrategyType = "comparative"
	StrategyChronological StrategyType = "chronological"
	StrategyMultiTemporal StrategyType = "multi_temporal"
	StrategyStandard      StrategyType = "standard"
)

// SearchStrategy describes the retrieval plan derived from a query.
type SearchStrategy struct {
	Type                    StrategyType `json:"type"`
	RequiresMultipleSources bool         `json:"requiresMultipleSources"`
	NeedsTimelineAnalysis   bool         `json:"needsTimelineAnalysis"`
	Priority                string       `json:"priority"`
}

// AcronymMatch is an acronym found in a query plus its known expansions.
type AcronymMatch struct {
	Acronym    string   `json:"acronym"`
	Expansions []string `json:"expansions"`
}

// Entities groups the named entities extracted from a query.
type Entities struct {
	Ministers     []string       `json:"ministers"`
	Organizations []string       `json:"organizations"`
	Policies      []string       `json:"policies"`
	Acronyms      []AcronymMatch `json:"acronyms"`
}

// Timeframe groups the time references extracted from a query.
type Timeframe struct {
	Specific []string `json:"specific"`
	Relative []string `json:"relative"`
	Ranges   []string `json:"ranges"`
}

// Analysis is the structured interpretation of a raw query. It is
// immutable once produced.
type Analysis struct {
	OriginalQuery  string         `json:"originalQuery"`
	ExpandedQuery  string         `json:"expandedQuery"`
	Intent         []string       `json:"intent"`
	Entities       Entities       `json:"entities"`
	Timeframe      Timeframe      `json:"timeframe"`
	SearchStrategy SearchStrategy `json:"searchStrategy"`
	Confidence     int            `json:"confidence"`
}

// HasIntent reports whether the analysis detected the given intent tag.
func (a *Analysis) HasIntent(intent string) bool {
	for _, i := range a.Intent {
		if i == intent {
			return true
		}
	}
	return false
}

// Analyzer parses raw policy queries against a fixed knowledge base.
// It is stateless apart from its immutable configuration and safe for
// concurrent use.
type Analyzer struct {
	kb *KnowledgeBase
}

// NewAnalyzer creates an analyzer. A nil knowledge base selects the default.
func NewAnalyzer(kb *KnowledgeBase) *Analyzer {
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	return &Analyzer{kb: kb}
}

// ParseQuery produces a full analysis of a raw query. It is a total
// function: unmatched fields default to empty collections, intent
// defaults to ["search"], and confidence stays within [0,100].
func (a *Analyzer) ParseQuery(q string) *Analysis {
	analysis := &Analysis{
		OriginalQuery: q,
		ExpandedQuery: a.expandAcronyms(q),
		Intent:        a.detectIntent(q),
		Entities:      a.extractEntities(q),
		Timeframe:     a.extractTimeframe(q),
	}

	analysis.SearchStrategy = determineSearchStrategy(analysis)
	analysis.Confidence = parsingConfidence(analysis)

	return analysis
}

// expandAcronyms appends the expansion terms of every acronym found in
// the query. Terms accumulate in knowledge-base order; duplicates are
// kept at this stage.
func (a *Analyzer) expandAcronyms(q string) string {
	expanded := q
	for _, entry := range a.kb.acronyms {
		if a.kb.containsAcronym(q, entry.Acronym) {
			expanded += " " + strings.Join(entry.Expansions, " ")
		}
	}
	return expanded
}

func (a *Analyzer) detectIntent(q string) []string {
	lower := strings.ToLower(q)

	var detected []string
	for _, entry := range a.kb.intents {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, entry.Intent)
				break
			}
		}
	}

	if len(detected) == 0 {
		return []string{"search"}
	}
	return detected
}

func (a *Analyzer) extractEntities(q string) Entities {
	return Entities{
		Ministers:     a.extractMinisters(q),
		Organizations: a.extractOrganizations(q),
		Policies:      a.extractPolicies(q),
		Acronyms:      a.extractAcronyms(q),
	}
}

func (a *Analyzer) extractMinisters(q string) []string {
	var ministers []string
	for _, pattern := range a.kb.ministerPatterns {
		ministers = append(ministers, pattern.FindAllString(q, -1)...)
	}
	return ministers
}

func (a *Analyzer) extractOrganizations(q string) []string {
	var orgs []string
	for _, entry := range a.kb.acronyms {
		if a.kb.containsAcronym(q, entry.Acronym) {
			orgs = append(orgs, entry.Acronym)
		}
	}
	return orgs
}

func (a *Analyzer) extractPolicies(q string) []string {
	lower := strings.ToLower(q)
	var policies []string
	for _, topic := range a.kb.policyTopics {
		if strings.Contains(lower, topic) {
			policies = append(policies, topic)
		}
	}
	return policies
}

func (a *Analyzer) extractAcronyms(q string) []AcronymMatch {
	var found []AcronymMatch
	for _, entry := range a.kb.acronyms {
		if a.kb.containsAcronym(q, entry.Acronym) {
			found = append(found, AcronymMatch{
				Acronym:    entry.Acronym,
				Expansions: entry.Expansions,
			})
		}
	}
	return found
}

func (a *Analyzer) extractTimeframe(q string) Timeframe {
	tf := Timeframe{}

	tf.Specific = a.kb.specificTime.FindAllString(q, -1)

	lower := strings.ToLower(q)
	for _, indicator := range a.kb.relativeTime {
		if strings.Contains(lower, indicator) {
			tf.Relative = append(tf.Relative, indicator)
		}
	}
	for _, r := range a.kb.rangeIndicators {
		if strings.Contains(lower, r) {
			tf.Ranges = append(tf.Ranges, r)
		}
	}

	return tf
}

// determineSearchStrategy picks a retrieval strategy, first match wins:
// comparison intent, then timeline intent, then multiple specific time
// tokens, then standard.
func determineSearchStrategy(analysis *Analysis) SearchStrategy {
	if analysis.HasIntent("comparison") {
		return SearchStrategy{
			Type:                    StrategyComparative,
			RequiresMultipleSources: true,
			NeedsTimelineAnalysis:   true,
			Priority:                "contradiction_detection",
		}
	}

	if analysis.HasIntent("timeline") {
		return SearchStrategy{
			Type:                    StrategyChronological,
			RequiresMultipleSources: true,
			NeedsTimelineAnalysis:   true,
			Priority:                "policy_evolution",
		}
	}

	if len(analysis.Timeframe.Specific) > 1 {
		return SearchStrategy{
			Type:                    StrategyMultiTemporal,
			RequiresMultipleSources: true,
			NeedsTimelineAnalysis:   true,
			Priority:                "chronological_comparison",
		}
	}

	return SearchStrategy{
		Type:     StrategyStandard,
		Priority: "relevance",
	}
}

// parsingConfidence scores how well the query matched the fixed
// vocabulary. Deterministic in the signals that fired; clamped to [0,100].
func parsingConfidence(analysis *Analysis) int {
	confidence := 50

	if len(analysis.Entities.Ministers) > 0 {
		confidence += 20
	}
	if len(analysis.Entities.Organizations) > 0 {
		confidence += 15
	}
	if len(analysis.Entities.Acronyms) > 0 {
		confidence += 15
	}

	if len(analysis.Intent) > 1 {
		confidence += 10
	}
	if analysis.HasIntent("comparison") || analysis.HasIntent("timeline") {
		confidence += 15
	}

	if len(analysis.Timeframe.Specific) > 0 {
		confidence += 10
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// SearchTerms generates the ordered, de-duplicated search terms for an
// analysis: the original query, the expanded query when it differs, then
// entity-specific combinations. First occurrence order is preserved.
func (a *Analyzer) SearchTerms(analysis *Analysis) []string {
	var terms []string
	seen := make(map[string]bool)
	add := func(term string) {
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	add(analysis.OriginalQuery)

	if analysis.ExpandedQuery != analysis.OriginalQuery {
		add(analysis.ExpandedQuery)
	}

	policies := strings.Join(analysis.Entities.Policies, " ")

	for _, minister := range analysis.Entities.Ministers {
		add(minister + " " + policies)
	}

	for _, org := range analysis.Entities.Organizations {
		for _, expansion := range a.kb.Expansions(org) {
			add(expansion + " " + policies)
		}
	}

	return terms
}
