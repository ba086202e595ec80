// Package provider adapts external text-generation backends behind one
// interface: prompt text in, generated lines out.
package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Provider names.
const (
	NameGemini   = "gemini"
	NameDeepSeek = "deepseek"
	NameGroq     = "groq"
)

// Provider turns a prompt into generated lines.
//
// Implementations hold no mutable state after construction and are safe
// for concurrent use. Every failure is a *ProviderError.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, prompt string) ([]string, error)
}

// Config holds the per-backend settings. Empty BaseURL and Model select
// the backend defaults.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Options are shared by every adapter.
type Options struct {
	// HTTPClient performs the calls. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Timeout bounds a single Invoke. Zero disables the bound.
	Timeout time.Duration

	Logger zerolog.Logger

	// Endpoints overrides backend base URLs for Configured.
	Endpoints Endpoints
}

// Endpoints holds base URL overrides. Empty fields keep the defaults.
type Endpoints struct {
	Gemini     string
	OpenRouter string
	Groq       string
}

// Credentials is the set of API keys a run may use.
type Credentials struct {
	Gemini     string
	OpenRouter string
	Groq       string
}

// Configured returns an adapter for every backend that has a credential,
// in the fixed order gemini, deepseek, groq.
func Configured(creds Credentials, opts Options) []Provider {
	var out []Provider

	if hasKey(creds.Gemini) {
		out = append(out, NewGemini(Config{APIKey: creds.Gemini, BaseURL: opts.Endpoints.Gemini}, opts))
	} else {
		opts.Logger.Debug().Str("provider", NameGemini).Msg("Provider skipped: no credential")
	}

	if hasKey(creds.OpenRouter) {
		out = append(out, NewDeepSeek(Config{APIKey: creds.OpenRouter, BaseURL: opts.Endpoints.OpenRouter}, opts))
	} else {
		opts.Logger.Debug().Str("provider", NameDeepSeek).Msg("Provider skipped: no credential")
	}

	if hasKey(creds.Groq) {
		out = append(out, NewGroq(Config{APIKey: creds.Groq, BaseURL: opts.Endpoints.Groq}, opts))
	} else {
		opts.Logger.Debug().Str("provider", NameGroq).Msg("Provider skipped: no credential")
	}

	return out
}

// Names returns the names of providers in order.
func Names(providers []Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}

// SplitLines splits generated text on newlines, trims each line and drops
// the empty ones. Order is preserved.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func hasKey(key string) bool {
	return strings.TrimSpace(key) != ""
}
