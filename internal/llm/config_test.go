package llm

import (
	"context"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "mock needs no key", mutate: func(c *Config) { c.Provider = "mock" }},
		{name: "gemini with key", mutate: func(c *Config) { c.Gemini.APIKey = "k" }},
		{name: "gemini without key", mutate: func(c *Config) {}, wantErr: "TUTORFLOW_LLM_GEMINI_API_KEY"},
		{name: "anthropic without key", mutate: func(c *Config) { c.Provider = "anthropic" }, wantErr: "TUTORFLOW_LLM_ANTHROPIC_API_KEY"},
		{name: "openai without key", mutate: func(c *Config) { c.Provider = "openai" }, wantErr: "TUTORFLOW_LLM_OPENAI_API_KEY"},
		{name: "openrouter without key", mutate: func(c *Config) { c.Provider = "openrouter" }, wantErr: "TUTORFLOW_LLM_OPENROUTER_API_KEY"},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "bard" }, wantErr: "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !cfg.HasAPIKey() {
					t.Fatal("expected HasAPIKey to be true")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider to be discovered")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o-key" {
		t.Fatalf("expected openai to win over anthropic, got %+v", cfg)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*LoggingProvider); !ok {
		t.Fatalf("expected logging decorator without retries, got %T", p)
	}

	cfg.Retry.MaxAttempts = 3
	p, err = NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry decorator, got %T", p)
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing gemini key")
	}
}

func TestStandardAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "")

	if got := StandardAPIKey("anthropic"); got != "sk-ant" {
		t.Errorf("StandardAPIKey(anthropic) = %q, want sk-ant", got)
	}
	if got := StandardAPIKey("openai"); got != "" {
		t.Errorf("StandardAPIKey(openai) = %q, want empty", got)
	}
	if got := StandardAPIKey("mock"); got != "" {
		t.Errorf("StandardAPIKey(mock) = %q, want empty", got)
	}

	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	cfg.SetAPIKey(StandardAPIKey(cfg.Provider))
	if !cfg.HasAPIKey() || cfg.Anthropic.APIKey != "sk-ant" {
		t.Errorf("anthropic key not set: %+v", cfg.Anthropic)
	}
}
