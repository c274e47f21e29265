package comparison

import "strings"

// Stance is a coarse reading of a document's position: its tone,
// commitment level, and urgency.
type Stance struct {
	Tone       string `json:"tone"`
	Commitment string `json:"commitment"`
	Urgency    string `json:"urgency"`
}

// StanceClassifier derives a stance from document content. The keyword
// baseline below is deliberately simple; a model-backed classifier can be
// substituted without touching pair identification or comparison.
type StanceClassifier interface {
	Classify(content string) Stance
}

// KeywordStanceClassifier is the fixed-vocabulary baseline classifier.
// Each dimension is matched independently; the first matching rule wins
// and unmatched dimensions fall back to their defaults.
type KeywordStanceClassifier struct{}

// NewKeywordStanceClassifier returns the baseline classifier.
func NewKeywordStanceClassifier() *KeywordStanceClassifier {
	return &KeywordStanceClassifier{}
}

// Classify reads tone, commitment, and urgency from content keywords.
func (c *KeywordStanceClassifier) Classify(content string) Stance {
	lower := strings.ToLower(content)

	tone := "neutral"
	switch {
	case strings.Contains(lower, "committed") || strings.Contains(lower, "will implement"):
		tone = "positive"
	case strings.Contains(lower, "reject") || strings.Contains(lower, "will not"):
		tone = "negative"
	case strings.Contains(lower, "considering") || strings.Contains(lower, "review"):
		tone = "cautious"
	}

	commitment := "medium"
	switch {
	case strings.Contains(lower, "definitely") || strings.Contains(lower, "committed"):
		commitment = "high"
	case strings.Contains(lower, "might") || strings.Contains(lower, "possibly"):
		commitment = "low"
	}

	urgency := "normal"
	switch {
	case strings.Contains(lower, "immediate") || strings.Contains(lower, "urgent"):
		urgency = "high"
	case strings.Contains(lower, "gradual") || strings.Contains(lower, "long-term"):
		urgency = "low"
	}

	return Stance{Tone: tone, Commitment: commitment, Urgency: urgency}
}
