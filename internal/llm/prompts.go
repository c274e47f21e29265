package llm

import (
	"fmt"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// UserType selects the register of the generated answer.
type UserType string

const (
	UserLawyer    UserType = "lawyer"
	UserLayperson UserType = "layperson"
)

// SystemPrompt returns the system instruction for a user type.
func SystemPrompt(userType UserType) string {
	if userType == UserLawyer {
		return "You are a legal research assistant specializing in Singapore parliamentary records. " +
			"Provide precise, citation-ready quotes with exact source attribution. " +
			"Focus on accuracy, specificity, and legal precedent value. " +
			"Always include reliability assessments based on source authority."
	}
	return "You are a helpful assistant that explains Singapore government policy in plain English. " +
		"Make complex legal and policy information accessible to the general public. " +
		"Provide clear summaries while maintaining accuracy about sources."
}

// BuildPrompt renders the user prompt: the question plus every document
// with its attribution, followed by type-specific extraction instructions.
func BuildPrompt(documents []models.Document, query string, userType UserType) string {
	var docText strings.Builder
	for i, doc := range documents {
		fmt.Fprintf(&docText, "[Document %d]\nTitle: %s\nSource: %s\nDate: %s\nSpeaker: %s\nContent: %s\nURL: %s\n---\n",
			i+1, doc.Title, doc.Source, doc.Date, doc.Speaker, doc.Content, doc.URL)
	}

	if userType == UserLawyer {
		return fmt.Sprintf(`Question: %q

Documents:
%s
Extract exact quotes that answer the question. For each quote provide:
1. The exact quotation in quotes
2. Speaker name and title
3. Source document with date
4. Direct URL link
5. Reliability score (HIGH/MEDIUM/LOW)
6. Legal context or significance

Format as a structured response suitable for legal citation.`, query, docText.String())
	}

	return fmt.Sprintf(`Question: %q

Documents:
%s
Provide a clear, concise answer in plain English that:
1. Directly answers the question
2. Summarizes key government positions
3. Mentions credible sources
4. Explains implications for the public

Keep technical jargon to a minimum.`, query, docText.String())
}

// FallbackSummary is the deterministic summary used when the generator
// is unavailable. It never touches the network.
func FallbackSummary(query string, userType UserType) string {
	if userType == UserLawyer {
		return fmt.Sprintf("Based on parliamentary records, the government has addressed %q through official statements "+
			"and policy announcements. Specific quotes and citations are available in the source documents provided.", query)
	}
	return fmt.Sprintf("The Singapore government has made official statements about %q. "+
		"The information comes from verified parliamentary records and press releases.", query)
}
