package embedding

import "context"

// Provider contract
type Provider interface {
	// Create generates an embedding for the given text.
	Create(ctx context.Context, text string) ([]float32, error)
}
