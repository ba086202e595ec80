package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel   = "gemini-1.5-flash"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// Gemini calls the Google Generative Language generateContent endpoint.
type Gemini struct {
	cfg    Config
	caller caller
}

// NewGemini creates a Gemini adapter.
func NewGemini(cfg Config, opts Options) *Gemini {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = geminiModel
	}
	return &Gemini{cfg: cfg, caller: newCaller(NameGemini, opts)}
}

func (g *Gemini) Name() string { return NameGemini }

// Invoke sends prompt as a single user turn and splits the first
// candidate's text into lines.
func (g *Gemini) Invoke(ctx context.Context, prompt string) ([]string, error) {
	if !hasKey(g.cfg.APIKey) {
		return nil, g.caller.fail(missingCredential(NameGemini))
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(g.cfg.BaseURL, "/"), g.cfg.Model)
	header := http.Header{}
	header.Set("x-goog-api-key", strings.TrimSpace(g.cfg.APIKey))

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp geminiResponse
	if err := g.caller.postJSON(ctx, url, header, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		msg := "response has no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			msg = "prompt blocked: " + resp.PromptFeedback.BlockReason
		}
		return nil, g.caller.fail(parseError(NameGemini, msg, nil))
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return nil, g.caller.fail(parseError(NameGemini, "candidate has no content parts", nil))
	}

	var text strings.Builder
	for _, p := range parts {
		text.WriteString(p.Text)
	}

	return SplitLines(text.String()), nil
}
