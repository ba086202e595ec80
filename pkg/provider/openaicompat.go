package provider

import (
	"context"
	"net/http"
	"strings"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	deepSeekModel     = "deepseek/deepseek-r1:free"

	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.3-70b-versatile"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletions calls an OpenAI-compatible /chat/completions endpoint.
// DeepSeek (through OpenRouter) and Groq both use it.
type ChatCompletions struct {
	name   string
	cfg    Config
	header http.Header
	caller caller
}

// NewDeepSeek creates a DeepSeek adapter routed through OpenRouter.
// The credential is the OpenRouter API key.
func NewDeepSeek(cfg Config, opts Options) *ChatCompletions {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = deepSeekModel
	}
	header := http.Header{}
	header.Set("X-Title", "ai-wordlister")
	return newChatCompletions(NameDeepSeek, cfg, header, opts)
}

// NewGroq creates a Groq adapter.
func NewGroq(cfg Config, opts Options) *ChatCompletions {
	if cfg.BaseURL == "" {
		cfg.BaseURL = groqBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = groqModel
	}
	return newChatCompletions(NameGroq, cfg, http.Header{}, opts)
}

func newChatCompletions(name string, cfg Config, header http.Header, opts Options) *ChatCompletions {
	if hasKey(cfg.APIKey) {
		header.Set("Authorization", "Bearer "+strings.TrimSpace(cfg.APIKey))
	}
	return &ChatCompletions{
		name:   name,
		cfg:    cfg,
		header: header,
		caller: newCaller(name, opts),
	}
}

func (c *ChatCompletions) Name() string { return c.name }

// Invoke sends prompt as a single user message and splits the first
// choice's content into lines.
func (c *ChatCompletions) Invoke(ctx context.Context, prompt string) ([]string, error) {
	if !hasKey(c.cfg.APIKey) {
		return nil, c.caller.fail(missingCredential(c.name))
	}

	body := chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	var resp chatResponse
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	if err := c.caller.postJSON(ctx, url, c.header, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, c.caller.fail(parseError(c.name, "response has no choices", nil))
	}
	if resp.Choices[0].Message == nil {
		return nil, c.caller.fail(parseError(c.name, "choice has no message", nil))
	}

	return SplitLines(resp.Choices[0].Message.Content), nil
}
