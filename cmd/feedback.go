package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutorflow/internal/feedback"
	"github.com/abhisek/tutorflow/internal/speech"
)

func newFeedbackCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "feedback",
		Short: "Get conversational feedback on an English sentence",
		Long: "Get conversational feedback on an English sentence. The text comes from --text " +
			"or from a recorded speech transcript (--transcript, JSON lines of recognition results).",
		RunE: runFeedback,
	}
	c.Flags().String("text", "", "Text to evaluate")
	c.Flags().String("transcript", "", "Recorded speech recognition results (JSON lines)")
	c.Flags().String("context", "", "Conversation setting, e.g. \"a job interview\"")
	c.Flags().String("native-language", "", "Learner's native language for explanations")
	c.Flags().Bool("json", false, "Print the reply as JSON")
	c.MarkFlagsMutuallyExclusive("text", "transcript")
	return c
}

func runFeedback(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	transcript, _ := cmd.Flags().GetString("transcript")
	convContext, _ := cmd.Flags().GetString("context")
	nativeLanguage, _ := cmd.Flags().GetString("native-language")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if transcript != "" {
		rec, err := speech.OpenReplay(transcript, a.logger)
		if err != nil {
			return err
		}
		if text, err = speech.Collect(ctx, rec); err != nil {
			return fmt.Errorf("collect transcript: %w", err)
		}
		a.logger.DebugContext(ctx, "transcript collected", "session_id", rec.SessionID(), "chars", len(text))
	}
	if text == "" {
		return errors.New("nothing to evaluate: pass --text or --transcript")
	}

	provider, err := a.provider(ctx)
	if err != nil {
		return err
	}
	tpl, err := a.template(feedback.PromptName, a.cfg.Flows.Feedback)
	if err != nil {
		return err
	}
	svc, err := feedback.NewService(provider, tpl, a.logger, a.flowOptions(a.cfg.Flows.Feedback)...)
	if err != nil {
		return err
	}

	resp, err := svc.Generate(ctx, feedback.Request{
		Text:           text,
		Context:        convContext,
		NativeLanguage: nativeLanguage,
	})
	if err != nil {
		return fmt.Errorf("generate feedback: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return json.NewEncoder(out).Encode(resp)
	}
	_, err = lipgloss.Fprintln(out, renderFeedback(resp.Response))
	return err
}
