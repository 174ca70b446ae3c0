package exam

import (
	"context"
	"log/slog"

	"github.com/abhisek/tutorflow/internal/flow"
	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/prompts"
)

// Flow and prompt names.
const (
	FlowName   = "generatePracticeExamFlow"
	PromptName = "generatePracticeExamPrompt"
)

// promptInput is what the exam template sees: the request plus the mix
// the question set must follow.
type promptInput struct {
	Request
	Mix Distribution `json:"mix"`
}

// Service generates practice exams.
type Service struct {
	flow       *flow.Flow[promptInput, Exam]
	validators []Validator
	logger     *slog.Logger
}

// Spec returns the prompt spec for the exam flow built on tpl.
func Spec(tpl *prompts.Template) flow.PromptSpec {
	return flow.PromptSpec{
		Name:         FlowName,
		Template:     tpl,
		InputSchema:  InputSchema,
		OutputSchema: OutputSchema,
	}
}

// NewService builds a Service that renders tpl and sends it to provider.
func NewService(provider llm.Provider, tpl *prompts.Template, logger *slog.Logger, opts ...flow.Option) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := flow.New[promptInput, Exam](Spec(tpl), provider, append([]flow.Option{flow.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Service{flow: f, validators: DefaultValidators(), logger: logger}, nil
}

func promptInputFor(req Request) (promptInput, error) {
	in := promptInput{Request: req}
	mix, err := ComposeDistribution(req.NumQuestions)
	if err == nil {
		in.Mix = mix
	}
	return in, err
}

// Prompt renders the prompt Generate would send for req, without calling
// the model. An out-of-range count is a *CompositionError.
func (s *Service) Prompt(req Request) (string, error) {
	in, err := promptInputFor(req)
	if err != nil {
		return "", err
	}
	return s.flow.Render(in)
}

// Generate asks the model for an exam and returns it only if it passes
// every composition rule. Errors are *flow.SchemaValidationError,
// *flow.ExternalModelError or *CompositionError. Nothing is retried.
func (s *Service) Generate(ctx context.Context, req Request) (*Exam, error) {
	// An out-of-range count is reported by the input schema below.
	in, mixErr := promptInputFor(req)

	exam, err := s.flow.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	if mixErr != nil {
		return nil, mixErr
	}

	if err := ValidateWith(s.validators, req, exam.Questions); err != nil {
		s.logger.WarnContext(ctx, "exam rejected",
			"flow", FlowName,
			"topic", req.ExamTopic,
			"error", err)
		return nil, err
	}
	return exam, nil
}
