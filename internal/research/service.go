// Package research is the pipeline entry point: it turns a raw query and
// a retrieved document set into a summarized, cross-verified result.
package research

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/limjk/policylens/internal/llm"
	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/social"
	"github.com/limjk/policylens/internal/source"
	"github.com/limjk/policylens/internal/verification"
	"github.com/limjk/policylens/pkg/models"
)

// ErrEmptyQuery is returned when Research is invoked with a blank query.
var ErrEmptyQuery = errors.New("query must not be empty")

// Request describes one research invocation.
type Request struct {
	Query                    string
	UserType                 llm.UserType
	IncludeCrossVerification bool
}

// Quote is a citation-ready excerpt from one document.
type Quote struct {
	Text        string              `json:"text"`
	Speaker     string              `json:"speaker"`
	Source      string              `json:"source"`
	Date        string              `json:"date"`
	URL         string              `json:"url"`
	Reliability models.Reliability  `json:"reliability"`
	Type        models.DocumentType `json:"type"`
}

// CrossVerification bundles the verification engine's outputs.
type CrossVerification struct {
	Contradictions        []verification.Contradiction        `json:"contradictions"`
	PolicyEvolution       verification.PolicyEvolution        `json:"policyEvolution"`
	SideBySideComparisons []verification.SideBySideComparison `json:"sideBySideComparisons"`
	SocialCrossReferences []social.CrossReference             `json:"socialCrossReferences,omitempty"`
	OverallConfidence     int                                 `json:"overallConfidence"`
	VerificationSummary   string                              `json:"verificationSummary"`
}

// Result is the final object returned to the caller. CrossVerification
// is nil when verification was not requested.
type Result struct {
	Summary           string             `json:"summary"`
	Quotes            []Quote            `json:"quotes"`
	UserType          llm.UserType       `json:"userType"`
	DocumentCount     int                `json:"documentCount"`
	Reliability       models.Reliability `json:"reliability"`
	QueryAnalysis     *query.Analysis    `json:"queryAnalysis"`
	CrossVerification *CrossVerification `json:"crossVerification,omitempty"`
}

// Service assembles research results from the analyzer, the document
// source, the verification engine, and the text generator.
type Service struct {
	analyzer  *query.Analyzer
	verifier  *verification.Service
	documents source.Source
	generator llm.Generator
}

// NewService wires the research pipeline. Analyzer and verifier default
// to their keyword baselines when nil; documents and generator may be
// nil, in which case retrieval falls back to entity-derived template
// documents and summarization to the deterministic template.
func NewService(analyzer *query.Analyzer, verifier *verification.Service, documents source.Source, generator llm.Generator) *Service {
	if analyzer == nil {
		analyzer = query.NewAnalyzer(nil)
	}
	if verifier == nil {
		verifier = verification.NewService(nil, verification.Config{})
	}
	return &Service{
		analyzer:  analyzer,
		verifier:  verifier,
		documents: documents,
		generator: generator,
	}
}

// Research runs the full pipeline for a query: analysis, retrieval,
// cross-verification, and summarization. Only a blank query is a
// request-level failure; source and generator failures are recovered
// with deterministic fallbacks.
func (s *Service) Research(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if req.UserType == "" {
		req.UserType = llm.UserLayperson
	}

	analysis := s.analyzer.ParseQuery(req.Query)
	documents := s.retrieve(ctx, analysis)

	return s.Process(ctx, documents, req.Query, analysis, req.UserType, req.IncludeCrossVerification), nil
}

// retrieve fetches documents for the analysis, falling back to the
// entity-derived template set on source failure.
func (s *Service) retrieve(ctx context.Context, analysis *query.Analysis) []models.Document {
	if s.documents == nil {
		return source.FallbackDocuments(analysis)
	}

	terms := s.analyzer.SearchTerms(analysis)
	documents, err := s.documents.Fetch(ctx, terms, analysis.SearchStrategy)
	if err != nil {
		log.Printf("document source failed, using fallback set: %v", err)
		return source.FallbackDocuments(analysis)
	}
	return documents
}

// Process assembles the final result for an already-retrieved document
// set. Exposed separately so callers with their own retrieval can reuse
// the assembly path.
func (s *Service) Process(ctx context.Context, documents []models.Document, rawQuery string, analysis *query.Analysis, userType llm.UserType, includeCrossVerification bool) *Result {
	if !includeCrossVerification {
		result := s.extractQuotes(ctx, documents, rawQuery, userType)
		result.QueryAnalysis = analysis
		return result
	}

	contradictions := s.verifier.DetectContradictions(documents)
	evolution := s.verifier.TrackPolicyEvolution(documents, rawQuery)
	enriched := s.verifier.CalculateContentConfidence(documents, rawQuery)
	comparisons := s.verifier.GenerateSideBySideComparisons(enriched, analysis)
	crossRefs := s.verifier.GenerateSocialMediaCrossReference(enriched)

	result := s.extractQuotes(ctx, enriched, rawQuery, userType)
	result.QueryAnalysis = analysis
	result.CrossVerification = &CrossVerification{
		Contradictions:        contradictions,
		PolicyEvolution:       evolution,
		SideBySideComparisons: comparisons,
		SocialCrossReferences: crossRefs,
		OverallConfidence:     overallConfidence(enriched),
		VerificationSummary:   verificationSummary(contradictions, evolution, comparisons),
	}

	return result
}

// extractQuotes obtains the prose summary from the generator, or the
// deterministic template when generation is unavailable, and builds the
// quote list from the documents themselves.
func (s *Service) extractQuotes(ctx context.Context, documents []models.Document, rawQuery string, userType llm.UserType) *Result {
	summary := ""
	if s.generator != nil {
		generated, err := s.generator.Generate(ctx, llm.SystemPrompt(userType), llm.BuildPrompt(documents, rawQuery, userType))
		if err != nil {
			log.Printf("text generation failed, using fallback summary: %v", err)
		} else {
			summary = generated
		}
	}
	if summary == "" {
		summary = llm.FallbackSummary(rawQuery, userType)
	}

	quotes := make([]Quote, len(documents))
	for i, doc := range documents {
		text := doc.Content
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		reliability := doc.Reliability
		if reliability == "" {
			reliability = models.ReliabilityHigh
		}
		quotes[i] = Quote{
			Text:        text,
			Speaker:     doc.Speaker,
			Source:      doc.Source,
			Date:        doc.Date,
			URL:         doc.URL,
			Reliability: reliability,
			Type:        doc.Type,
		}
	}

	return &Result{
		Summary:       summary,
		Quotes:        quotes,
		UserType:      userType,
		DocumentCount: len(documents),
		Reliability:   overallReliability(documents),
	}
}

// overallReliability averages the documents' trust tiers.
func overallReliability(documents []models.Document) models.Reliability {
	if len(documents) == 0 {
		return models.ReliabilityMedium
	}

	total := 0
	for _, doc := range documents {
		switch doc.Reliability {
		case models.ReliabilityHigh:
			total += 3
		case models.ReliabilityLow:
			total += 1
		default:
			total += 2
		}
	}

	average := float64(total) / float64(len(documents))
	switch {
	case average >= 2.5:
		return models.ReliabilityHigh
	case average >= 1.5:
		return models.ReliabilityMedium
	default:
		return models.ReliabilityLow
	}
}

// overallConfidence is the rounded mean of per-document confidence
// scores, 0 for an empty set.
func overallConfidence(documents []models.Document) int {
	if len(documents) == 0 {
		return 0
	}

	scores := make([]float64, len(documents))
	for i, doc := range documents {
		if doc.ConfidenceScore > 0 {
			scores[i] = float64(doc.ConfidenceScore)
		} else {
			scores[i] = 50
		}
	}

	return int(math.Round(stat.Mean(scores, nil)))
}

// verificationSummary digests the verification outcome into one line.
func verificationSummary(contradictions []verification.Contradiction, evolution verification.PolicyEvolution, comparisons []verification.SideBySideComparison) string {
	var parts []string

	if n := len(contradictions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d potential contradiction%s detected", n, pluralSuffix(n)))
	}

	if n := evolution.TotalChanges; n > 0 {
		parts = append(parts, fmt.Sprintf("Policy position changed %d time%s", n, pluralSuffix(n)))
	}

	if n := len(comparisons); n > 0 {
		parts = append(parts, fmt.Sprintf("%d side-by-side comparison%s available", n, pluralSuffix(n)))
	}

	if len(parts) == 0 {
		return "No contradictions detected, policy position appears consistent"
	}

	return strings.Join(parts, "; ")
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
