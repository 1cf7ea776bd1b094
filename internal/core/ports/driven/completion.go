package driven

import "context"

// CompletionService generates an answer from an assembled prompt.
// It is a synchronous request/response boundary; a failure must be
// surfaced to the caller, which converts it into a zero-confidence
// answer rather than a crash. The service never retries internally.
//
// Implementations may include:
//   - Groq (OpenAI-compatible chat completions)
//   - Ollama (local models)
type CompletionService interface {
	// Complete produces a text completion for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
