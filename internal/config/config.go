// Package config loads tutorflow settings from defaults, an optional YAML
// file, TUTORFLOW_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"time"

	"github.com/abhisek/tutorflow/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	LLM   llm.Config  `mapstructure:"llm"`
	Log   LogConfig   `mapstructure:"log"`
	Flows FlowsConfig `mapstructure:"flows"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// FlowsConfig holds settings shared by all flows and per-flow overrides.
type FlowsConfig struct {
	// Timeout bounds each model invocation. Zero disables it.
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Feedback FlowConfig    `mapstructure:"feedback"`
	Exam     FlowConfig    `mapstructure:"exam"`
}

// FlowConfig overrides a flow's template defaults. Zero values keep the
// manifest settings.
type FlowConfig struct {
	TemplateVersion string   `mapstructure:"template_version" validate:"omitempty,startswith=v"`
	MaxTokens       int      `mapstructure:"max_tokens" validate:"gte=0"`
	Temperature     *float64 `mapstructure:"temperature" validate:"omitempty,gte=0,lte=1"`
}
