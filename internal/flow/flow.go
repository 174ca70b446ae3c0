// Package flow binds a prompt template and its input/output schemas to a
// model provider. A Flow renders the template from typed input, invokes
// the model once and returns typed output only if it conforms to the
// output schema.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/prompts"
)

// DefaultTimeout bounds a single model invocation.
const DefaultTimeout = 60 * time.Second

// PromptSpec is a named prompt template with the schemas of its input and
// output. It is read-only once built and may be shared between flows.
type PromptSpec struct {
	Name         string
	Template     *prompts.Template
	InputSchema  *llm.Schema
	OutputSchema *llm.Schema
}

// Flow executes one PromptSpec against a provider. I and O are the input
// and output types; their JSON encodings must match the schemas.
type Flow[I, O any] struct {
	spec     PromptSpec
	provider llm.Provider
	opts     options
}

type options struct {
	timeout     time.Duration
	maxTokens   int
	temperature float64
	system      string
	logger      *slog.Logger
}

// Option adjusts how a Flow invokes the model.
type Option func(*options)

// WithTimeout bounds each invocation. Zero disables the flow's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxTokens overrides the template's max_tokens.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}

// WithTemperature overrides the template's temperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// WithSystem sets a system prompt sent ahead of the rendered template.
func WithSystem(s string) Option {
	return func(o *options) { o.system = s }
}

// WithLogger sets the logger for flow-level events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New builds a Flow. Generation defaults come from the template's
// manifest entry.
func New[I, O any](spec PromptSpec, provider llm.Provider, opts ...Option) (*Flow[I, O], error) {
	switch {
	case spec.Name == "":
		return nil, errors.New("flow: name is required")
	case spec.Template == nil:
		return nil, fmt.Errorf("flow %s: template is required", spec.Name)
	case spec.OutputSchema == nil:
		return nil, fmt.Errorf("flow %s: output schema is required", spec.Name)
	case provider == nil:
		return nil, fmt.Errorf("flow %s: provider is required", spec.Name)
	}

	o := options{
		timeout:     DefaultTimeout,
		maxTokens:   spec.Template.MaxTokens,
		temperature: spec.Template.Temperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Flow[I, O]{spec: spec, provider: provider, opts: o}, nil
}

// Name returns the flow name.
func (f *Flow[I, O]) Name() string { return f.spec.Name }

// Spec returns the flow's prompt spec.
func (f *Flow[I, O]) Spec() PromptSpec { return f.spec }

// Render validates input against the input schema and substitutes it into
// the template.
func (f *Flow[I, O]) Render(input I) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("%s: encode input: %w", f.spec.Name, err)
	}
	if err := check(f.spec.Name, StageInput, f.spec.InputSchema, raw); err != nil {
		return "", err
	}
	return f.spec.Template.Render(input)
}

// Invoke sends a rendered prompt to the model and returns its raw output.
// Every failure, including a timeout or cancellation that races a
// successful reply, is an *ExternalModelError with no output.
func (f *Flow[I, O]) Invoke(ctx context.Context, rendered string) (json.RawMessage, error) {
	if f.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, f.spec.Name)

	resp, err := f.provider.Generate(ctx, llm.Request{
		System:      f.opts.system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: rendered}},
		Schema:      f.spec.OutputSchema,
		MaxTokens:   f.opts.maxTokens,
		Temperature: f.opts.temperature,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &ExternalModelError{Flow: f.spec.Name, Reason: reasonFor(ctxErr), Err: ctxErr}
	}
	if err != nil {
		return nil, &ExternalModelError{Flow: f.spec.Name, Reason: reasonFor(err), Err: err}
	}
	if resp == nil || len(resp.Content) == 0 {
		return nil, &ExternalModelError{Flow: f.spec.Name, Reason: ReasonFailed, Err: errors.New("empty model response")}
	}
	return resp.Content, nil
}

// Validate checks raw model output against the output schema and decodes
// it.
func (f *Flow[I, O]) Validate(raw json.RawMessage) (*O, error) {
	if err := check(f.spec.Name, StageOutput, f.spec.OutputSchema, raw); err != nil {
		return nil, err
	}
	out := new(O)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, &SchemaValidationError{
			Flow:       f.spec.Name,
			Stage:      StageOutput,
			Constraint: "type",
			Message:    err.Error(),
			Err:        err,
		}
	}
	return out, nil
}

// Execute renders, invokes and validates in one call. It never retries.
func (f *Flow[I, O]) Execute(ctx context.Context, input I) (*O, error) {
	if llm.RequestIDFrom(ctx) == "" {
		ctx = llm.WithRequestID(ctx, uuid.NewString())
	}
	log := f.opts.logger.With("flow", f.spec.Name, "request_id", llm.RequestIDFrom(ctx))
	start := time.Now()

	rendered, err := f.Render(input)
	if err != nil {
		log.WarnContext(ctx, "flow input rejected", "error", err)
		return nil, err
	}
	log.DebugContext(ctx, "flow prompt rendered",
		"template_version", f.spec.Template.Version,
		"prompt_chars", len(rendered))

	raw, err := f.Invoke(ctx, rendered)
	if err != nil {
		log.WarnContext(ctx, "flow model invocation failed", "error", err)
		return nil, err
	}

	out, err := f.Validate(raw)
	if err != nil {
		log.WarnContext(ctx, "flow output rejected", "error", err)
		return nil, err
	}

	log.InfoContext(ctx, "flow completed", "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}
