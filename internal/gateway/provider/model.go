package provider

import "context"

// ModelProvider is the text-completion contract the insight generator
// depends on. The response is a single free-text string with no schema.
type ModelProvider interface {
	ID() string
	Complete(ctx context.Context, prompt string) (string, error)
}
