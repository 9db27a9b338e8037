package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every variable read by ConfigFromEnv.
const envPrefix = "GIAITOAN_"

// Config holds all LLM provider configuration. Field tags name the
// environment variables without envPrefix.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds one solve including retries. Multimodal prompts with
	// long worked solutions are slow.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`
}

type AnthropicConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"claude-sonnet"`
	BaseURL string `env:"BASE_URL"`
}

type OpenAIConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gpt-4o"`
	// BaseURL points at any OpenAI-compatible endpoint.
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries: each submission makes one call.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"1"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the configuration with no environment applied.
func DefaultConfig() Config {
	cfg, err := parseConfig(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("llm: bad default config: %v", err))
	}
	return cfg
}

// ConfigFromEnv reads the GIAITOAN_* variables. Unset or empty variables
// keep their defaults; malformed values are an error.
func ConfigFromEnv() (Config, error) {
	return parseConfig(nil)
}

// parseConfig parses environ, or the process environment when nil.
func parseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("llm config: %w", err)
	}
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.Retry.MaxAttempts < 1 {
		return Config{}, fmt.Errorf("llm config: %sLLM_RETRY_MAX_ATTEMPTS must be at least 1", envPrefix)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("llm config: %sLLM_TIMEOUT must be positive", envPrefix)
	}
	return cfg, nil
}

// discoveryOrder lists the conventional key variables DiscoverConfig
// checks. A bare API_KEY is taken as a Gemini key.
var discoveryOrder = []struct {
	envVar   string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig returns base switched to the first provider whose
// conventional key variable is set, or false if none is.
func DiscoverConfig(base Config) (Config, bool) {
	for _, d := range discoveryOrder {
		key := os.Getenv(d.envVar)
		if key == "" {
			continue
		}
		cfg := base
		cfg.Provider = d.provider
		switch d.provider {
		case "gemini":
			cfg.Gemini.APIKey = key
		case "openai":
			cfg.OpenAI.APIKey = key
		case "anthropic":
			cfg.Anthropic.APIKey = key
		case "openrouter":
			cfg.OpenRouter.APIKey = key
		}
		return cfg, true
	}
	return base, false
}

// LoadConfig reads the GIAITOAN_* variables and, when no provider was
// chosen explicitly and the default one lacks a key, falls back to
// DiscoverConfig. The returned Config may still lack a key; callers
// surface that as a configuration error instead of failing at startup.
func LoadConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	if cfg.Validate() == nil || os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return cfg, nil
	}
	discovered, _ := DiscoverConfig(cfg)
	return discovered, nil
}

// APIKey returns the credential of the selected provider, "mock" for the
// mock provider, or "" when none is configured.
func (c Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "gemini":
		return c.Gemini.APIKey
	case "openrouter":
		return c.OpenRouter.APIKey
	case "mock":
		return "mock"
	default:
		return ""
	}
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if c.APIKey() == "" {
			return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
				envPrefix, strings.ToUpper(c.Provider), c.Provider)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
