package exam

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Constraint names the composition rule a question set broke.
type Constraint string

const (
	ConstraintCount      Constraint = "count"
	ConstraintMix        Constraint = "mix"
	ConstraintUniqueness Constraint = "uniqueness"
	ConstraintShape      Constraint = "shape"
)

// CompositionError describes why a question set was rejected. QuestionID
// is set when a single question is at fault.
type CompositionError struct {
	Constraint Constraint
	QuestionID string
	Message    string
}

func (e *CompositionError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("exam %s constraint: question %q: %s", e.Constraint, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("exam %s constraint: %s", e.Constraint, e.Message)
}

// Validator checks one composition rule over a whole question set.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in logs.
	Name() string

	// Validate returns nil if the set passes. want is the distribution
	// composed for the request.
	Validate(req Request, want Distribution, questions []GeneratedQuestion) *CompositionError
}

// DefaultValidators returns the rule chain in the order it is applied.
func DefaultValidators() []Validator {
	return []Validator{
		&CountValidator{},
		&MixValidator{},
		&UniqueIDValidator{},
		&SeenQuestionValidator{},
		&ShapeValidator{},
	}
}

// Validate checks a generated set against the request using the default
// chain. It is pure: the same input always yields the same verdict.
func Validate(req Request, questions []GeneratedQuestion) error {
	return ValidateWith(DefaultValidators(), req, questions)
}

// ValidateWith runs validators in order and returns the first failure.
func ValidateWith(validators []Validator, req Request, questions []GeneratedQuestion) error {
	want, err := ComposeDistribution(req.NumQuestions)
	if err != nil {
		return err
	}
	for _, v := range validators {
		if cerr := v.Validate(req, want, questions); cerr != nil {
			return cerr
		}
	}
	return nil
}

// CountValidator requires exactly the requested number of questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(req Request, _ Distribution, questions []GeneratedQuestion) *CompositionError {
	if len(questions) != req.NumQuestions {
		return &CompositionError{
			Constraint: ConstraintCount,
			Message:    fmt.Sprintf("expected %d questions, got %d", req.NumQuestions, len(questions)),
		}
	}
	return nil
}

// MixValidator requires each type to meet its composed minimum.
type MixValidator struct{}

func (v *MixValidator) Name() string { return "mix" }

func (v *MixValidator) Validate(_ Request, want Distribution, questions []GeneratedQuestion) *CompositionError {
	var got Distribution
	for _, q := range questions {
		switch q.Type {
		case MultipleChoice:
			got.MultipleChoice++
		case TrueFalse:
			got.TrueFalse++
		case FreeText:
			got.FreeText++
		}
	}
	for _, t := range []QuestionType{MultipleChoice, TrueFalse, FreeText} {
		if got.Count(t) < want.Count(t) {
			return &CompositionError{
				Constraint: ConstraintMix,
				Message:    fmt.Sprintf("expected at least %d %s questions, got %d", want.Count(t), t, got.Count(t)),
			}
		}
	}
	return nil
}

// UniqueIDValidator requires pairwise distinct question IDs.
type UniqueIDValidator struct{}

func (v *UniqueIDValidator) Name() string { return "unique-id" }

func (v *UniqueIDValidator) Validate(_ Request, _ Distribution, questions []GeneratedQuestion) *CompositionError {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if seen[q.QuestionID] {
			return &CompositionError{
				Constraint: ConstraintUniqueness,
				QuestionID: q.QuestionID,
				Message:    "duplicate questionId",
			}
		}
		seen[q.QuestionID] = true
	}
	return nil
}

// SeenQuestionValidator rejects prompts the learner has already seen,
// compared case-insensitively and ignoring surrounding whitespace.
type SeenQuestionValidator struct{}

func (v *SeenQuestionValidator) Name() string { return "seen-question" }

func (v *SeenQuestionValidator) Validate(req Request, _ Distribution, questions []GeneratedQuestion) *CompositionError {
	if len(req.SeenQuestions) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(req.SeenQuestions))
	for _, s := range req.SeenQuestions {
		seen[normalizePrompt(s)] = true
	}
	for _, q := range questions {
		if seen[normalizePrompt(q.Prompt)] {
			return &CompositionError{
				Constraint: ConstraintUniqueness,
				QuestionID: q.QuestionID,
				Message:    "prompt repeats a previously seen question",
			}
		}
	}
	return nil
}

// normalizePrompt trims and case-folds a prompt for comparison.
func normalizePrompt(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ShapeValidator checks per-type answer shape and positive points.
type ShapeValidator struct{}

func (v *ShapeValidator) Name() string { return "shape" }

func (v *ShapeValidator) Validate(_ Request, _ Distribution, questions []GeneratedQuestion) *CompositionError {
	for _, q := range questions {
		if msg := shapeProblem(q); msg != "" {
			return &CompositionError{
				Constraint: ConstraintShape,
				QuestionID: q.QuestionID,
				Message:    msg,
			}
		}
	}
	return nil
}

func shapeProblem(q GeneratedQuestion) string {
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) != MultipleChoiceOptions {
			return fmt.Sprintf("multipleChoice needs exactly %d options, got %d", MultipleChoiceOptions, len(q.Options))
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Sprintf("correctAnswer %q is not one of the options", q.CorrectAnswer)
		}
	case TrueFalse:
		if len(q.Options) != 0 {
			return "trueFalse must not have options"
		}
		if q.CorrectAnswer != AnswerTrue && q.CorrectAnswer != AnswerFalse {
			return fmt.Sprintf("trueFalse correctAnswer must be %q or %q, got %q", AnswerTrue, AnswerFalse, q.CorrectAnswer)
		}
	case FreeText:
		if len(q.Options) != 0 {
			return "freeText must not have options"
		}
	default:
		return fmt.Sprintf("unknown question type %q", q.Type)
	}
	if q.PointsPossible <= 0 {
		return fmt.Sprintf("pointsPossible must be positive, got %d", q.PointsPossible)
	}
	return ""
}
