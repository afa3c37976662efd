package webcrawler

import "context"

// TokenCounter counts tokens in text for a specific model. It is used to
// report how much of a model's context a fetched page would consume.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
