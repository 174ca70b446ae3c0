package exam

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutorflow/internal/flow"
	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/prompts"
)

func newTestService(t *testing.T, responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	t.Helper()
	reg, err := prompts.Default()
	require.NoError(t, err)
	tpl, err := reg.Latest(PromptName)
	require.NoError(t, err)

	mock := llm.NewMockProvider(responses...)
	svc, err := NewService(mock, tpl, nil)
	require.NoError(t, err)
	return svc, mock
}

func examJSON(t *testing.T, qs []GeneratedQuestion) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(Exam{Questions: qs})
	require.NoError(t, err)
	return raw
}

func TestService_Generate(t *testing.T) {
	qs := validSet(t, 7)
	for i := range qs {
		if qs[i].Options == nil {
			qs[i].Options = []string{}
		}
	}
	svc, mock := newTestService(t, llm.MockResponse{Content: examJSON(t, qs)})

	exam, err := svc.Generate(context.Background(), Request{
		ExamTopic:     "SSC CGL",
		NumQuestions:  7,
		SeenQuestions: []string{"What is the capital of India?"},
	})
	require.NoError(t, err)
	require.Len(t, exam.Questions, 7)
	assert.Equal(t, "q1", exam.Questions[0].QuestionID)
	assert.Equal(t, "q7", exam.Questions[6].QuestionID)

	require.Equal(t, 1, mock.CallCount())
	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, `"SSC CGL"`)
	assert.Contains(t, prompt, `- 3 "multipleChoice"`)
	assert.Contains(t, prompt, `- 2 "trueFalse"`)
	assert.Contains(t, prompt, `- 2 "freeText"`)
	assert.Contains(t, prompt, `- "What is the capital of India?"`)
	assert.Equal(t, OutputSchema, mock.Calls[0].Schema)
}

func TestService_Generate_NumQuestionsOutOfRange(t *testing.T) {
	for _, n := range []int{0, 51} {
		svc, mock := newTestService(t)
		_, err := svc.Generate(context.Background(), Request{ExamTopic: "GATE", NumQuestions: n})

		var sv *flow.SchemaValidationError
		require.ErrorAs(t, err, &sv, "n=%d", n)
		assert.Equal(t, flow.StageInput, sv.Stage)
		assert.Equal(t, "/numQuestions", sv.Field)
		assert.Equal(t, 0, mock.CallCount(), "model must not be called")
	}
}

func TestService_Prompt_NumQuestionsOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Prompt(Request{ExamTopic: "GATE", NumQuestions: 51})

	var ce *CompositionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConstraintCount, ce.Constraint)
}

func TestService_Generate_SchemaViolation(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{
		Content: json.RawMessage(`{"questions":[{"questionId":"q1","type":"essay","prompt":"p","options":[],"correctAnswer":"a","pointsPossible":10}]}`),
	})
	_, err := svc.Generate(context.Background(), Request{ExamTopic: "GATE", NumQuestions: 1})

	var sv *flow.SchemaValidationError
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, flow.StageOutput, sv.Stage)
	assert.Equal(t, "/questions/0/type", sv.Field)
	assert.Equal(t, "enum", sv.Constraint)
}

func TestService_Generate_CompositionViolation(t *testing.T) {
	qs := validSet(t, 4)
	qs[0].Options = qs[0].Options[:3]
	for i := range qs {
		if qs[i].Options == nil {
			qs[i].Options = []string{}
		}
	}
	svc, _ := newTestService(t, llm.MockResponse{Content: examJSON(t, qs)})

	_, err := svc.Generate(context.Background(), Request{ExamTopic: "NEET", NumQuestions: 4})
	var ce *CompositionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConstraintShape, ce.Constraint)
	assert.Equal(t, "q1", ce.QuestionID)
}

func TestService_Generate_ModelErrorNotRetried(t *testing.T) {
	svc, mock := newTestService(t,
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)},
	)
	_, err := svc.Generate(context.Background(), Request{ExamTopic: "NEET", NumQuestions: 1})

	var me *flow.ExternalModelError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, flow.ReasonFailed, me.Reason)
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, mock.CallCount())
}
