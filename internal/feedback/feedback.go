// Package feedback produces one conversational tutoring turn on a
// learner's English, optionally explaining corrections in their native
// language.
package feedback

import (
	"context"
	"log/slog"

	"github.com/abhisek/tutorflow/internal/flow"
	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/prompts"
)

// Flow and prompt names.
const (
	FlowName   = "generateCommunicationFeedbackFlow"
	PromptName = "generateCommunicationFeedbackPrompt"
)

// Request is the learner's message. Context and NativeLanguage are
// optional; empty values leave their prompt sections out.
type Request struct {
	Text           string `json:"text"`
	Context        string `json:"context,omitempty"`
	NativeLanguage string `json:"nativeLanguage,omitempty"`
}

// Response is the tutor's reply.
type Response struct {
	Response string `json:"response"`
}

var InputSchema = &llm.Schema{
	Name:        "communication-feedback-input",
	Description: "A learner's message to evaluate",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The user's written text to be evaluated.",
			},
			"context": map[string]any{
				"type":        "string",
				"description": `The context of the conversation or situation (e.g., "a job interview", "a casual chat").`,
			},
			"nativeLanguage": map[string]any{
				"type":        "string",
				"description": "The user's native language (e.g., 'Telugu', 'Spanish', 'Mandarin').",
			},
		},
		"required": []any{"text"},
	},
}

var OutputSchema = &llm.Schema{
	Name:        "communication-feedback",
	Description: "A conversational tutoring reply",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The AI's conversational response to the user.",
			},
		},
		"required":             []any{"response"},
		"additionalProperties": false,
	},
}

// Spec returns the prompt spec for the feedback flow built on tpl.
func Spec(tpl *prompts.Template) flow.PromptSpec {
	return flow.PromptSpec{
		Name:         FlowName,
		Template:     tpl,
		InputSchema:  InputSchema,
		OutputSchema: OutputSchema,
	}
}

// Service generates feedback turns.
type Service struct {
	flow *flow.Flow[Request, Response]
}

// NewService builds a Service that renders tpl and sends it to provider.
func NewService(provider llm.Provider, tpl *prompts.Template, logger *slog.Logger, opts ...flow.Option) (*Service, error) {
	f, err := flow.New[Request, Response](Spec(tpl), provider, append([]flow.Option{flow.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Service{flow: f}, nil
}

// Prompt renders the prompt Generate would send for req, without calling
// the model.
func (s *Service) Prompt(req Request) (string, error) {
	return s.flow.Render(req)
}

// Generate returns one tutoring reply. Errors are
// *flow.SchemaValidationError or *flow.ExternalModelError.
func (s *Service) Generate(ctx context.Context, req Request) (*Response, error) {
	return s.flow.Execute(ctx, req)
}
