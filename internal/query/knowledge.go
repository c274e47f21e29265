package query

import "regexp"

// AcronymEntry maps a domain acronym to its expansion terms. The first
// expansion is the canonical full form; the rest are search synonyms.
type AcronymEntry struct {
	Acronym    string
	Expansions []string
}

// IntentEntry maps an intent tag to the keyword phrases that trigger it.
type IntentEntry struct {
	Intent   string
	Keywords []string
}

// KnowledgeBase holds the fixed vocabulary the analyzer matches against.
// It is immutable after construction; a single instance can be shared
// across concurrent requests.
type KnowledgeBase struct {
	acronyms       []AcronymEntry
	acronymPattern map[string]*regexp.Regexp
	intents        []IntentEntry
	policyTopics   []string

	ministerPatterns []*regexp.Regexp
	specificTime     *regexp.Regexp
	relativeTime     []string
	rangeIndicators  []string
}

// DefaultKnowledgeBase returns the knowledge base tuned to Singapore
// government policy vocabulary.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{
		acronyms: []AcronymEntry{
			{"BTO", []string{"Build-To-Order", "public housing", "HDB flats"}},
			{"CPF", []string{"Central Provident Fund", "retirement savings", "provident fund"}},
			{"ERP", []string{"Electronic Road Pricing", "road tolls", "congestion pricing"}},
			{"COE", []string{"Certificate of Entitlement", "vehicle quota", "car permits"}},
			{"GST", []string{"Goods and Services Tax", "consumption tax", "sales tax"}},
			{"MAS", []string{"Monetary Authority of Singapore", "central bank"}},
			{"MOH", []string{"Ministry of Health"}},
			{"MOE", []string{"Ministry of Education"}},
			{"MOM", []string{"Ministry of Manpower", "labour ministry"}},
			{"HDB", []string{"Housing Development Board", "public housing authority"}},
			{"LTA", []string{"Land Transport Authority"}},
			{"NEA", []string{"National Environment Agency"}},
			{"URA", []string{"Urban Redevelopment Authority"}},
			{"IRAS", []string{"Inland Revenue Authority of Singapore", "tax authority"}},
			{"SMRT", []string{"Singapore Mass Rapid Transport"}},
			{"ICA", []string{"Immigrations and Checkpoint Authority"}},
		},
		intents: []IntentEntry{
			{"comparison", []string{"compare", "versus", "vs", "difference between", "contrast"}},
			{"timeline", []string{"change", "evolution", "over time", "timeline", "history", "progression"}},
			{"contradiction", []string{"contradict", "conflict", "disagree", "inconsistent", "opposite"}},
			{"recent", []string{"latest", "recent", "newest", "current", "new", "today"}},
			{"causation", []string{"because", "due to", "caused by", "reason", "why"}},
			{"impact", []string{"effect", "impact", "consequence", "result", "outcome"}},
		},
		policyTopics: []string{
			"housing", "transport", "healthcare", "education", "employment",
			"tax", "immigration", "environment", "technology", "defense",
		},
		ministerPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(Prime Minister|PM)\b`),
			regexp.MustCompile(`(?i)\b(Deputy Prime Minister|DPM)\b`),
			regexp.MustCompile(`(?i)\bMinister\s+\w+`),
			regexp.MustCompile(`(?i)\b(Minister of|Minister for)\s+[\w\s]+`),
		},
		specificTime: regexp.MustCompile(`(?i)\b(20\d{2}|january|february|march|april|may|june|july|august|september|october|november|december)\b`),
		relativeTime: []string{
			"recently", "lately", "this year", "last year", "previous", "before", "after",
		},
		rangeIndicators: []string{"between", "from", "to", "since", "until"},
	}

	kb.acronymPattern = make(map[string]*regexp.Regexp, len(kb.acronyms))
	for _, entry := range kb.acronyms {
		kb.acronymPattern[entry.Acronym] = regexp.MustCompile(`(?i)\b` + entry.Acronym + `\b`)
	}

	return kb
}

// Expansions returns the expansion terms for an acronym, or nil if unknown.
func (kb *KnowledgeBase) Expansions(acronym string) []string {
	for _, entry := range kb.acronyms {
		if entry.Acronym == acronym {
			return entry.Expansions
		}
	}
	return nil
}

// containsAcronym reports whether the text contains the acronym as a
// whole word, case-insensitively.
func (kb *KnowledgeBase) containsAcronym(text, acronym string) bool {
	re, ok := kb.acronymPattern[acronym]
	if !ok {
		return false
	}
	return re.MatchString(text)
}
