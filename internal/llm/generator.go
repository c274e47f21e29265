// Package llm provides the text-generation collaborator used for prose
// summarization, plus the deterministic fallback used when no backing
// service is available.
package llm

import "context"

// Generator produces prose from a system prompt and a user prompt.
// Implementations fail with a *GenerationError when the backing service
// is unreachable or misconfigured; callers substitute the deterministic
// fallback in that case.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GenerationError reports a failed or unavailable text-generation call.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return "text generation failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "text generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }
