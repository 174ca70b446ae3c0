package llm

import (
	"context"
	"encoding/json"
)

// Provider is the model-invocation capability every flow is built on.
// Implementations send a rendered prompt to a hosted model and return the
// raw output. They do not validate the output against the request schema;
// that is the caller's job (see Validate).
type Provider interface {
	// Generate sends the request to the model and blocks until the model
	// answers, the context is done, or the provider fails.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the optional system prompt.
	System string

	// Messages is the conversation. Flows send a single user message
	// holding the rendered prompt.
	Messages []Message

	// Schema is the output-shape descriptor. When set, the provider asks
	// the model for JSON using its native structured output mechanism.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from (or passed to) the model.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "practice-exam".
	Name string

	// Description is sent to the model alongside the schema.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the raw model output. With a Schema this is expected to
	// be a JSON object, but it has not been validated.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
