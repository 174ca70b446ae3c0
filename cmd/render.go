package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutorflow/internal/exam"
	"github.com/abhisek/tutorflow/internal/prompts"
	"github.com/abhisek/tutorflow/internal/ui/theme"
)

func renderExam(topic string, e *exam.Exam, showAnswers bool) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Practice exam: %s", topic)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d questions, %d points", len(e.Questions), e.TotalPoints())))
	b.WriteString("\n\n")

	for i, q := range e.Questions {
		var card strings.Builder
		fmt.Fprintf(&card, "%s  %s\n", theme.Badge(string(q.Type)), theme.Hint.Render(fmt.Sprintf("%s · %d pts", q.QuestionID, q.PointsPossible)))
		card.WriteString(theme.Body.Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)))
		for j, opt := range q.Options {
			fmt.Fprintf(&card, "\n   %c) %s", 'A'+j, opt)
		}
		if showAnswers {
			card.WriteString("\n")
			card.WriteString(theme.Correct.Render("Answer: " + q.CorrectAnswer))
		}
		b.WriteString(theme.Card.Render(card.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFeedback(reply string) string {
	return theme.Reply.Render(theme.Body.Render(reply))
}

func renderDistribution(n int, d exam.Distribution) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%d questions", n)))
	b.WriteString("\n")
	rows := []struct {
		t exam.QuestionType
		n int
	}{
		{exam.MultipleChoice, d.MultipleChoice},
		{exam.TrueFalse, d.TrueFalse},
		{exam.FreeText, d.FreeText},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-16s %2d\n", r.t, r.n)
	}
	return b.String()
}

func renderPromptList(entries []prompts.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-38s  %-8s  %-6s  %-5s  %s\n", "Name", "Version", "Tokens", "Temp", "Description")
	b.WriteString(strings.Repeat("─", 100))
	b.WriteString("\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-38s  %-8s  %-6d  %-5.2f  %s\n", e.Name, e.Version, e.MaxTokens, e.Temperature, e.Description)
	}
	return b.String()
}
