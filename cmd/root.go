package cmd

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tutorflow",
		Short: "AI English tutor and practice exam generator",
		Long: "tutorflow gives conversational feedback on English sentences and generates " +
			"practice exams with a fixed mix of multiple choice, true/false and free text questions.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/tutorflow/config.yaml)")
	pf.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Int("retries", 0, "Total attempts per model call, including the first (0 keeps the configured value)")
	pf.Duration("timeout", 0, "Timeout for each model call (0 keeps the configured value)")

	root.AddCommand(
		newFeedbackCmd(),
		newExamCmd(),
		newDistributionCmd(),
		newPromptsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
