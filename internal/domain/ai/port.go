package ai

import "context"

// Client is the text-generation port. Implementations send one system
// prompt and one user prompt and return the raw response text.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
