package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutorflow/internal/config"
	"github.com/abhisek/tutorflow/internal/flow"
	"github.com/abhisek/tutorflow/internal/llm"
	"github.com/abhisek/tutorflow/internal/logging"
	"github.com/abhisek/tutorflow/internal/prompts"
)

// app bundles what every command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prompts.Registry
}

func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if p, err := config.FindDefault(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := logging.Setup(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	reg, err := prompts.Default()
	if err != nil {
		return nil, fmt.Errorf("load prompt templates: %w", err)
	}
	return &app{cfg: cfg, logger: logger, registry: reg}, nil
}

// provider builds the configured model provider.
func (a *app) provider(ctx context.Context) (llm.Provider, error) {
	if !a.cfg.LLM.HasAPIKey() {
		return nil, errors.New("no LLM provider configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY, or use --provider mock")
	}
	return llm.NewProvider(ctx, a.cfg.LLM, a.logger)
}

// template returns the pinned or latest version of a prompt.
func (a *app) template(name string, fc config.FlowConfig) (*prompts.Template, error) {
	return a.registry.Get(name, fc.TemplateVersion)
}

// flowOptions turns configuration into flow options.
func (a *app) flowOptions(fc config.FlowConfig) []flow.Option {
	opts := []flow.Option{
		flow.WithTimeout(a.cfg.Flows.Timeout),
		flow.WithMaxTokens(fc.MaxTokens),
	}
	if fc.Temperature != nil {
		opts = append(opts, flow.WithTemperature(*fc.Temperature))
	}
	return opts
}
