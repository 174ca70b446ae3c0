package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/tutorflow/internal/llm"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TUTORFLOW"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"provider":  "llm.provider",
	"log-level": "log.level",
	"retries":   "llm.retry.max_attempts",
	"timeout":   "flows.timeout",
}

// Load reads configuration. path may be empty; flags may be nil. When the
// selected provider has no key configured, the standard vendor variables
// (GEMINI_API_KEY and friends) are consulted.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if !cfg.LLM.HasAPIKey() {
		if providerExplicit(v, flags) {
			cfg.LLM.SetAPIKey(llm.StandardAPIKey(cfg.LLM.Provider))
		} else if found, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = found.Provider
			cfg.LLM.SetAPIKey(llm.StandardAPIKey(found.Provider))
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.mock.responses_file", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("flows.timeout", 60*time.Second)
	for _, name := range []string{"feedback", "exam"} {
		v.SetDefault("flows."+name+".template_version", "")
		v.SetDefault("flows."+name+".max_tokens", 0)
	}
}

// providerExplicit reports whether the provider was chosen by the user
// rather than left at its default.
func providerExplicit(v *viper.Viper, flags *pflag.FlagSet) bool {
	if flags != nil && flags.Changed("provider") {
		return true
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_LLM_PROVIDER"); ok {
		return true
	}
	return v.InConfig("llm.provider")
}

// ErrNoConfigFile is returned by FindDefault when no config file exists.
var ErrNoConfigFile = errors.New("no config file found")

// FindDefault returns the default config file location if it exists:
// $XDG_CONFIG_HOME/tutorflow/config.yaml, falling back to
// ~/.config/tutorflow/config.yaml.
func FindDefault() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, "tutorflow", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return "", ErrNoConfigFile
	}
	return path, nil
}
