// Package config loads run settings for the wordlister.
//
// The config file is the credential file the tool has always used:
//
//	{
//	  "GEMINI_API_KEY": "...",
//	  "OPENROUTER_API_KEY": "...",
//	  "GROQ_API_KEY": "..."
//	}
//
// The same file may be written as YAML and may carry any of the optional
// keys on Config. Precedence: defaults, then file, then environment.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/ai-wordlister/pkg/orchestrator"
	"github.com/Sternrassler/ai-wordlister/pkg/provider"
)

// Credential keys, used both in the file and as environment variables.
const (
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvGroqAPIKey       = "GROQ_API_KEY"
)

// Prompt modes.
const (
	ModeSubdomain = "subdomain"
	ModeDirectory = "directory"
)

// Defaults.
const (
	DefaultBatchSize      = 100
	DefaultMaxConcurrency = 10
	DefaultCallTimeout    = 60 * time.Second
	DefaultCacheTTL       = 24 * time.Hour
	DefaultLogLevel       = "info"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full set of run settings.
type Config struct {
	GeminiAPIKey     string `yaml:"GEMINI_API_KEY"`
	OpenRouterAPIKey string `yaml:"OPENROUTER_API_KEY"`
	GroqAPIKey       string `yaml:"GROQ_API_KEY"`

	// BatchSize is the number of seed entries per prompt.
	BatchSize int `yaml:"batch_size"`

	// Prompt overrides the built-in template for Mode.
	Prompt string `yaml:"prompt"`

	// Mode selects the built-in template: subdomain or directory.
	Mode string `yaml:"mode"`

	// Output is a file path, "redis:<key>", or empty for console only.
	Output string `yaml:"output"`

	// VerifyTransport enables TLS certificate verification.
	VerifyTransport bool `yaml:"verify_transport"`

	// MaxConcurrency caps in-flight provider calls. Zero means unbounded.
	MaxConcurrency int `yaml:"max_concurrency"`

	// CallTimeout bounds one provider call.
	CallTimeout time.Duration `yaml:"call_timeout"`

	// RedisAddr enables the response cache when set.
	RedisAddr string        `yaml:"redis_addr"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file"`

	// Base URL overrides, for gateways and proxies.
	GeminiBaseURL     string `yaml:"gemini_base_url"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url"`
	GroqBaseURL       string `yaml:"groq_base_url"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		BatchSize:       DefaultBatchSize,
		Mode:            ModeSubdomain,
		VerifyTransport: true,
		MaxConcurrency:  DefaultMaxConcurrency,
		CallTimeout:     DefaultCallTimeout,
		CacheTTL:        DefaultCacheTTL,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Parse decodes JSON or YAML into cfg. Keys absent from data keep the
// values already in cfg.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}

// ApplyEnv overrides credentials from the environment. A variable that is
// set but empty clears the credential.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGeminiAPIKey); ok {
		c.GeminiAPIKey = v
	}
	if v, ok := lookup(EnvOpenRouterAPIKey); ok {
		c.OpenRouterAPIKey = v
	}
	if v, ok := lookup(EnvGroqAPIKey); ok {
		c.GroqAPIKey = v
	}
}

// Validate reports settings that would make a run fail before any
// provider is called.
func (c Config) Validate() error {
	var errs []error

	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch_size must be positive (got %d)", c.BatchSize))
	}
	if c.Prompt == "" && c.Mode != ModeSubdomain && c.Mode != ModeDirectory {
		errs = append(errs, fmt.Errorf("mode must be %q or %q (got %q)", ModeSubdomain, ModeDirectory, c.Mode))
	}
	if c.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("max_concurrency must not be negative (got %d)", c.MaxConcurrency))
	}
	if c.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("call_timeout must not be negative (got %s)", c.CallTimeout))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must not be negative (got %s)", c.CacheTTL))
	}
	if c.Credentials() == (provider.Credentials{}) {
		errs = append(errs, fmt.Errorf("no API key configured (%s, %s, %s)",
			EnvGeminiAPIKey, EnvOpenRouterAPIKey, EnvGroqAPIKey))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Endpoints returns the base URL overrides.
func (c Config) Endpoints() provider.Endpoints {
	return provider.Endpoints{
		Gemini:     c.GeminiBaseURL,
		OpenRouter: c.OpenRouterBaseURL,
		Groq:       c.GroqBaseURL,
	}
}

// Template returns the custom prompt, or the built-in template for Mode.
func (c Config) Template() string {
	if c.Prompt != "" {
		return c.Prompt
	}
	if c.Mode == ModeDirectory {
		return orchestrator.DirectoryTemplate
	}
	return orchestrator.SubdomainTemplate
}

// Credentials returns the trimmed API keys.
func (c Config) Credentials() provider.Credentials {
	return provider.Credentials{
		Gemini:     strings.TrimSpace(c.GeminiAPIKey),
		OpenRouter: strings.TrimSpace(c.OpenRouterAPIKey),
		Groq:       strings.TrimSpace(c.GroqAPIKey),
	}
}
