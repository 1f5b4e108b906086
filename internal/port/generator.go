package port

import (
	"context"
	"encoding/json"

	"subcheck/internal/domain"
)

// GenerateInput carries one schema-constrained generation request.
type GenerateInput struct {
	Parts       []domain.PromptPart
	Schema      json.RawMessage
	Temperature float64
}

// Generator abstracts the remote generation capability. Implementations make
// exactly one outbound call per invocation; no caching, no retry.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
