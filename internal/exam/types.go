// Package exam generates practice exams: it composes the required mix of
// question types, asks the model for a question set through a schema
// validated flow and accepts the set only if it honours the mix,
// uniqueness and shape rules.
package exam

// QuestionType is the kind of a generated question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multipleChoice"
	TrueFalse      QuestionType = "trueFalse"
	FreeText       QuestionType = "freeText"
)

// Limits on the number of questions per exam.
const (
	MinQuestions = 1
	MaxQuestions = 50
)

// Number of options a multiple choice question must offer.
const MultipleChoiceOptions = 4

// Accepted answers for true/false questions.
const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// GeneratedQuestion is one question in a generated exam.
type GeneratedQuestion struct {
	QuestionID     string       `json:"questionId"`
	Type           QuestionType `json:"type"`
	Prompt         string       `json:"prompt"`
	Options        []string     `json:"options"`
	CorrectAnswer  string       `json:"correctAnswer"`
	PointsPossible int          `json:"pointsPossible"`
}

// Request asks for an exam on a topic. SeenQuestions lists prompts the
// learner has already answered; order does not matter.
type Request struct {
	ExamTopic     string   `json:"examTopic"`
	NumQuestions  int      `json:"numQuestions"`
	SeenQuestions []string `json:"seenQuestions,omitempty"`
}

// Exam is an accepted question set, in the order the model produced it.
type Exam struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// TotalPoints sums PointsPossible over all questions.
func (e *Exam) TotalPoints() int {
	total := 0
	for _, q := range e.Questions {
		total += q.PointsPossible
	}
	return total
}

// Distribution is the number of questions of each type in an exam.
type Distribution struct {
	MultipleChoice int `json:"multipleChoice"`
	TrueFalse      int `json:"trueFalse"`
	FreeText       int `json:"freeText"`
}

// Total returns the number of questions across all types.
func (d Distribution) Total() int {
	return d.MultipleChoice + d.TrueFalse + d.FreeText
}

// Count returns the number of questions of type t.
func (d Distribution) Count(t QuestionType) int {
	switch t {
	case MultipleChoice:
		return d.MultipleChoice
	case TrueFalse:
		return d.TrueFalse
	case FreeText:
		return d.FreeText
	}
	return 0
}
