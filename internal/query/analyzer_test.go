package query

import (
	"strings"
	"testing"
)

func TestParseQuery_AcronymExpansion(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	analysis := analyzer.ParseQuery("What is BTO?")

	if len(analysis.Entities.Acronyms) == 0 {
		t.Fatal("expected acronyms to be detected")
	}

	match := analysis.Entities.Acronyms[0]
	if match.Acronym != "BTO" {
		t.Errorf("expected acronym BTO, got %s", match.Acronym)
	}

	wantExpansions := []string{"Build-To-Order", "public housing", "HDB flats"}
	if len(match.Expansions) != len(wantExpansions) {
		t.Fatalf("expected %d expansions, got %d", len(wantExpansions), len(match.Expansions))
	}
	for i, want := range wantExpansions {
		if match.Expansions[i] != want {
			t.Errorf("expansion %d: expected %q, got %q", i, want, match.Expansions[i])
		}
	}

	if !strings.Contains(analysis.ExpandedQuery, "Build-To-Order") {
		t.Errorf("expected expanded query to contain expansion, got %q", analysis.ExpandedQuery)
	}

	if len(analysis.Intent) != 1 || analysis.Intent[0] != "search" {
		t.Errorf("expected default intent [search], got %v", analysis.Intent)
	}
}

func TestParseQuery_NoWholeWordMatchInsideWord(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// "OBTOUSE" contains BTO but not as a whole word.
	analysis := analyzer.ParseQuery("something OBTOUSE here")

	for _, match := range analysis.Entities.Acronyms {
		if match.Acronym == "BTO" {
			t.Error("expected no BTO match inside a larger word")
		}
	}
	if analysis.ExpandedQuery != analysis.OriginalQuery {
		t.Errorf("expected no expansion, got %q", analysis.ExpandedQuery)
	}
}

func TestParseQuery_IntentDetection(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"compare BTO policy with CPF", []string{"comparison"}},
		{"how did housing policy change over time", []string{"timeline"}},
		{"do these statements contradict each other", []string{"contradiction"}},
		{"latest ERP announcement", []string{"recent"}},
		{"why did GST increase", []string{"causation"}},
		{"impact of COE quota", []string{"impact"}},
		{"tell me about housing", []string{"search"}},
	}

	for _, tt := range tests {
		analysis := analyzer.ParseQuery(tt.query)
		for _, want := range tt.want {
			if !analysis.HasIntent(want) {
				t.Errorf("query %q: expected intent %s, got %v", tt.query, want, analysis.Intent)
			}
		}
	}
}

func TestParseQuery_Timeframe(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	analysis := analyzer.ParseQuery("housing policy between 2020 and 2024, recently updated in March")

	if len(analysis.Timeframe.Specific) != 3 {
		t.Errorf("expected 3 specific time tokens (2020, 2024, March), got %v", analysis.Timeframe.Specific)
	}
	if len(analysis.Timeframe.Relative) == 0 {
		t.Error("expected relative time indicator 'recently'")
	}
	if len(analysis.Timeframe.Ranges) == 0 {
		t.Error("expected range indicator 'between'")
	}
}

func TestParseQuery_SearchStrategy(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	tests := []struct {
		query string
		want  StrategyType
	}{
		{"compare 2020 vs 2024 housing policy", StrategyComparative},
		{"evolution of CPF rules", StrategyChronological},
		{"housing supply in 2020 and 2024", StrategyMultiTemporal},
		{"BTO eligibility criteria", StrategyStandard},
	}

	for _, tt := range tests {
		analysis := analyzer.ParseQuery(tt.query)
		if analysis.SearchStrategy.Type != tt.want {
			t.Errorf("query %q: expected strategy %s, got %s", tt.query, tt.want, analysis.SearchStrategy.Type)
		}

		wantMulti := tt.want != StrategyStandard
		if analysis.SearchStrategy.RequiresMultipleSources != wantMulti {
			t.Errorf("query %q: expected RequiresMultipleSources=%v", tt.query, wantMulti)
		}
		if analysis.SearchStrategy.NeedsTimelineAnalysis != wantMulti {
			t.Errorf("query %q: expected NeedsTimelineAnalysis=%v", tt.query, wantMulti)
		}
	}
}

func TestParseQuery_ConfidenceBounds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	queries := []string{
		"",
		"hello",
		"compare Minister Wong's BTO statements from 2020 vs 2024 housing history",
		"What is BTO?",
		"GST CPF ERP COE comparison timeline 2020 2021 2022",
	}

	for _, q := range queries {
		analysis := analyzer.ParseQuery(q)
		if analysis.Confidence < 0 || analysis.Confidence > 100 {
			t.Errorf("query %q: confidence %d out of range [0,100]", q, analysis.Confidence)
		}
	}
}

func TestParseQuery_ConfidenceSignals(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// No signals: base score.
	if got := analyzer.ParseQuery("hello world").Confidence; got != 50 {
		t.Errorf("expected base confidence 50, got %d", got)
	}

	// Acronym fires organization and acronym bonuses: 50+15+15.
	if got := analyzer.ParseQuery("What is BTO?").Confidence; got != 80 {
		t.Errorf("expected confidence 80 for acronym query, got %d", got)
	}

	// Everything fires: clamped to 100.
	got := analyzer.ParseQuery("compare Minister Wong BTO housing changes from 2020 to 2024").Confidence
	if got != 100 {
		t.Errorf("expected clamped confidence 100, got %d", got)
	}
}

func TestParseQuery_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	first := analyzer.ParseQuery("compare BTO and CPF policy changes since 2020")
	for i := 0; i < 10; i++ {
		again := analyzer.ParseQuery("compare BTO and CPF policy changes since 2020")
		if again.ExpandedQuery != first.ExpandedQuery {
			t.Fatal("expanded query must be deterministic across runs")
		}
		if again.Confidence != first.Confidence {
			t.Fatal("confidence must be deterministic across runs")
		}
	}
}

func TestSearchTerms(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	analysis := analyzer.ParseQuery("BTO housing")
	terms := analyzer.SearchTerms(analysis)

	if len(terms) == 0 {
		t.Fatal("expected search terms")
	}
	if terms[0] != "BTO housing" {
		t.Errorf("expected original query first, got %q", terms[0])
	}
	if terms[1] == terms[0] {
		t.Error("expected expanded query to differ from original")
	}

	seen := make(map[string]bool)
	for _, term := range terms {
		if seen[term] {
			t.Errorf("duplicate search term %q", term)
		}
		seen[term] = true
	}

	// Organization expansion terms are combined with the policy list.
	found := false
	for _, term := range terms {
		if term == "Build-To-Order housing" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected expansion+policy term, got %v", terms)
	}
}
