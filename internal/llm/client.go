package llm

import (
	"context"
)

// Invoker sends one inference request to the remote endpoint and returns the raw response body.
// It does not retry on its own.
type Invoker interface {
	Invoke(ctx context.Context, request InferenceRequest) ([]byte, error)
}
