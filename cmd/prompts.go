package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutorflow/internal/exam"
	"github.com/abhisek/tutorflow/internal/feedback"
	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/prompts"
)

func newPromptsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect prompt templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List prompt templates and versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := prompts.Default()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPromptList(reg.List()))
			return nil
		},
	}

	render := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a prompt from a JSON input file without calling a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runPromptsRender,
	}
	render.Flags().String("input", "", "JSON file with the prompt input")
	render.Flags().String("version", "", "Template version (default latest)")
	_ = render.MarkFlagRequired("input")

	c.AddCommand(list, render)
	return c
}

func runPromptsRender(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	version, _ := cmd.Flags().GetString("version")

	reg, err := prompts.Default()
	if err != nil {
		return err
	}
	tpl, err := reg.Get(args[0], version)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var rendered string
	switch args[0] {
	case feedback.PromptName:
		var req feedback.Request
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		svc, err := feedback.NewService(llm.NewMockProvider(), tpl, nil)
		if err != nil {
			return err
		}
		rendered, err = svc.Prompt(req)
		if err != nil {
			return err
		}
	case exam.PromptName:
		var req exam.Request
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		svc, err := exam.NewService(llm.NewMockProvider(), tpl, nil)
		if err != nil {
			return err
		}
		rendered, err = svc.Prompt(req)
		if err != nil {
			return err
		}
	default:
		var in map[string]any
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		if rendered, err = tpl.Render(in); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
