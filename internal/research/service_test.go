package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/limjk/policylens/internal/llm"
	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/source"
	"github.com/limjk/policylens/pkg/models"
)

type stubGenerator struct {
	output string
	err    error
	calls  int
}

func (g *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	g.calls++
	return g.output, g.err
}

type stubDocuments struct {
	docs []models.Document
	err  error
}

func (s *stubDocuments) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	return s.docs, s.err
}

func comparativeSet() []models.Document {
	return []models.Document{
		{
			Title:       "Parliamentary Statement",
			Date:        "2024-03-15",
			Speaker:     "Minister Wong",
			Source:      "Hansard Parliamentary Debates",
			Type:        models.TypeParliamentaryDebate,
			Reliability: models.ReliabilityHigh,
			Content:     "BTO waiting times have increased and the supply strategy is under review",
		},
		{
			Title:       "Ministry Press Release",
			Date:        "2024-06-20",
			Speaker:     "MND Spokesperson",
			Source:      "MND Press Release",
			Type:        models.TypePressRelease,
			Reliability: models.ReliabilityHigh,
			Content:     "Waiting times will decrease through increased land allocation",
		},
	}
}

func TestResearch_EmptyQuery(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	for _, q := range []string{"", "   "} {
		if _, err := svc.Research(context.Background(), Request{Query: q}); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestResearch_DefaultsToLayperson(t *testing.T) {
	svc := NewService(nil, nil, &stubDocuments{}, nil)

	result, err := svc.Research(context.Background(), Request{Query: "BTO supply"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UserType != llm.UserLayperson {
		t.Errorf("expected layperson default, got %s", result.UserType)
	}
}

func TestResearch_FullPipeline(t *testing.T) {
	generator := &stubGenerator{output: "BTO waiting times are being addressed."}
	documents := &stubDocuments{docs: comparativeSet()}
	svc := NewService(nil, nil, documents, generator)

	result, err := svc.Research(context.Background(), Request{
		Query:                    "compare BTO waiting time announcements",
		UserType:                 llm.UserLawyer,
		IncludeCrossVerification: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary != "BTO waiting times are being addressed." {
		t.Errorf("expected generated summary, got %q", result.Summary)
	}
	if generator.calls != 1 {
		t.Errorf("expected one generation call, got %d", generator.calls)
	}
	if result.DocumentCount != 2 || len(result.Quotes) != 2 {
		t.Fatalf("expected 2 quoted documents, got count=%d quotes=%d", result.DocumentCount, len(result.Quotes))
	}
	if result.Reliability != models.ReliabilityHigh {
		t.Errorf("expected HIGH overall reliability, got %s", result.Reliability)
	}
	if result.QueryAnalysis == nil || !result.QueryAnalysis.HasIntent("comparison") {
		t.Error("expected the query analysis on the result")
	}

	cv := result.CrossVerification
	if cv == nil {
		t.Fatal("expected cross-verification block")
	}
	if len(cv.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(cv.Contradictions))
	}
	if cv.Contradictions[0].ConflictingTerms != [2]string{"increase", "decrease"} {
		t.Errorf("unexpected conflicting terms %v", cv.Contradictions[0].ConflictingTerms)
	}
	if len(cv.SideBySideComparisons) == 0 {
		t.Error("expected side-by-side comparisons for a comparative query")
	}
	if cv.OverallConfidence <= 0 || cv.OverallConfidence > 100 {
		t.Errorf("overall confidence %d out of range", cv.OverallConfidence)
	}
	if !strings.Contains(cv.VerificationSummary, "1 potential contradiction detected") {
		t.Errorf("unexpected verification summary %q", cv.VerificationSummary)
	}
}

func TestResearch_WithoutCrossVerification(t *testing.T) {
	svc := NewService(nil, nil, &stubDocuments{docs: comparativeSet()}, nil)

	result, err := svc.Research(context.Background(), Request{
		Query:                    "compare BTO announcements",
		IncludeCrossVerification: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CrossVerification != nil {
		t.Error("expected no cross-verification block")
	}
	if len(result.Quotes) != 2 {
		t.Errorf("expected quotes regardless, got %d", len(result.Quotes))
	}
}

func TestResearch_GeneratorFailureFallsBack(t *testing.T) {
	generator := &stubGenerator{err: &llm.GenerationError{Reason: "no API key configured"}}
	svc := NewService(nil, nil, &stubDocuments{docs: comparativeSet()}, generator)

	result, err := svc.Research(context.Background(), Request{Query: "BTO supply"})
	if err != nil {
		t.Fatalf("generator failure must not fail the request, got %v", err)
	}
	if result.Summary == "" {
		t.Error("expected a fallback summary")
	}
	if !strings.Contains(result.Summary, `"BTO supply"`) {
		t.Errorf("expected the query in the fallback summary, got %q", result.Summary)
	}
}

func TestResearch_SourceFailureFallsBack(t *testing.T) {
	documents := &stubDocuments{err: &source.SourceError{Source: "hansard", Err: errors.New("timeout")}}
	svc := NewService(nil, nil, documents, nil)

	result, err := svc.Research(context.Background(), Request{Query: "What is BTO?"})
	if err != nil {
		t.Fatalf("source failure must not fail the request, got %v", err)
	}
	// The acronym entity yields a fallback document.
	if result.DocumentCount != 1 {
		t.Errorf("expected 1 fallback document, got %d", result.DocumentCount)
	}
}

func TestProcess_EmptyDocumentSet(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)
	analyzer := query.NewAnalyzer(nil)
	analysis := analyzer.ParseQuery("compare nothing at all")

	result := svc.Process(context.Background(), nil, "compare nothing at all", analysis, llm.UserLayperson, true)

	if result.DocumentCount != 0 || len(result.Quotes) != 0 {
		t.Errorf("expected no quotes, got %d", len(result.Quotes))
	}
	if result.Reliability != models.ReliabilityMedium {
		t.Errorf("expected MEDIUM reliability for an empty set, got %s", result.Reliability)
	}

	cv := result.CrossVerification
	if cv == nil {
		t.Fatal("expected cross-verification block")
	}
	if cv.OverallConfidence != 0 {
		t.Errorf("expected confidence 0 for an empty set, got %d", cv.OverallConfidence)
	}
	if len(cv.Contradictions) != 0 || len(cv.SideBySideComparisons) != 0 {
		t.Error("expected empty verification outputs")
	}
	if cv.VerificationSummary != "No contradictions detected, policy position appears consistent" {
		t.Errorf("unexpected summary %q", cv.VerificationSummary)
	}
}

func TestExtractQuotes_TruncatesAndDefaults(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	long := strings.Repeat("policy statement ", 20) // well over 200 chars
	documents := []models.Document{
		{Content: long, Speaker: "Minister Wong"},
	}

	result := svc.extractQuotes(context.Background(), documents, "q", llm.UserLayperson)

	quote := result.Quotes[0]
	if len(quote.Text) != 203 || !strings.HasSuffix(quote.Text, "...") {
		t.Errorf("expected 200-char truncation with ellipsis, got %d chars", len(quote.Text))
	}
	if quote.Reliability != models.ReliabilityHigh {
		t.Errorf("expected HIGH default reliability, got %s", quote.Reliability)
	}
}

func TestOverallReliability(t *testing.T) {
	high := models.Document{Reliability: models.ReliabilityHigh}
	medium := models.Document{Reliability: models.ReliabilityMedium}
	low := models.Document{Reliability: models.ReliabilityLow}

	tests := []struct {
		docs []models.Document
		want models.Reliability
	}{
		{nil, models.ReliabilityMedium},
		{[]models.Document{high, high}, models.ReliabilityHigh},
		{[]models.Document{high, medium}, models.ReliabilityHigh},
		{[]models.Document{medium, low}, models.ReliabilityMedium},
		{[]models.Document{low, low}, models.ReliabilityLow},
	}

	for i, tt := range tests {
		if got := overallReliability(tt.docs); got != tt.want {
			t.Errorf("case %d: expected %s, got %s", i, tt.want, got)
		}
	}
}

func TestOverallConfidence(t *testing.T) {
	if got := overallConfidence(nil); got != 0 {
		t.Errorf("expected 0 for empty set, got %d", got)
	}

	documents := []models.Document{
		{ConfidenceScore: 80},
		{ConfidenceScore: 60},
	}
	if got := overallConfidence(documents); got != 70 {
		t.Errorf("expected mean 70, got %d", got)
	}

	// Unscored documents count as 50.
	documents = []models.Document{{ConfidenceScore: 90}, {}}
	if got := overallConfidence(documents); got != 70 {
		t.Errorf("expected mean 70 with unscored default, got %d", got)
	}
}
