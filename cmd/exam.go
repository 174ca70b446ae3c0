package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutorflow/internal/exam"
)

func newExamCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "exam",
		Short: "Generate a practice exam",
		Long: "Generate a practice exam on a topic. The set always contains at least 40% multiple choice, " +
			"30% true/false and 30% free text questions, and never repeats a question listed in --seen.",
		RunE: runExam,
	}
	c.Flags().String("topic", "", "Exam topic, e.g. \"UPSC Civil Services\"")
	c.Flags().Int("num", 10, "Number of questions (1-50)")
	c.Flags().String("seen", "", "File with previously seen questions, one per line")
	c.Flags().Bool("json", false, "Print the exam as JSON")
	c.Flags().Bool("answers", false, "Show correct answers")
	_ = c.MarkFlagRequired("topic")
	return c
}

func runExam(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	num, _ := cmd.Flags().GetInt("num")
	seenPath, _ := cmd.Flags().GetString("seen")
	asJSON, _ := cmd.Flags().GetBool("json")
	showAnswers, _ := cmd.Flags().GetBool("answers")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	req := exam.Request{ExamTopic: topic, NumQuestions: num}
	if seenPath != "" {
		if req.SeenQuestions, err = readLines(seenPath); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	provider, err := a.provider(ctx)
	if err != nil {
		return err
	}
	tpl, err := a.template(exam.PromptName, a.cfg.Flows.Exam)
	if err != nil {
		return err
	}
	svc, err := exam.NewService(provider, tpl, a.logger, a.flowOptions(a.cfg.Flows.Exam)...)
	if err != nil {
		return err
	}

	result, err := svc.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate exam: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = lipgloss.Fprint(out, renderExam(topic, result, showAnswers))
	return err
}

// readLines returns the non-blank lines of a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
