// Package testutil provides testing utilities for provider adapters and runs.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines a canned response for every request.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockProvider is an httptest server that speaks the Gemini
// generateContent and OpenAI-compatible chat/completions envelopes.
//
// By default it answers 200 with the configured text wrapped in the
// envelope matching the request path.
type MockProvider struct {
	server *httptest.Server

	mu       sync.RWMutex
	text     string
	response *MockResponse
	handler  func(w http.ResponseWriter, r *http.Request, prompt string)

	requestCount int
	prompts      []string
	lastHeader   http.Header
}

// NewMockProvider starts a mock server that returns text for every prompt.
func NewMockProvider(text string) *MockProvider {
	m := &MockProvider{text: text}
	m.server = httptest.NewServer(http.HandlerFunc(m.serve))
	return m
}

// URL returns the mock server URL, usable as a provider BaseURL.
func (m *MockProvider) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockProvider) Close() {
	m.server.Close()
}

// SetText changes the generated text returned in success envelopes.
func (m *MockProvider) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SetResponse makes every request return resp verbatim.
func (m *MockProvider) SetResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = &resp
}

// SetHandler installs a custom handler. It receives the prompt text
// extracted from the request body; r.Body is still readable.
func (m *MockProvider) SetHandler(handler func(w http.ResponseWriter, r *http.Request, prompt string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// RequestCount returns the number of requests received.
func (m *MockProvider) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// Prompts returns the prompts received, in arrival order.
func (m *MockProvider) Prompts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastHeader returns the headers of the most recent request.
func (m *MockProvider) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

func (m *MockProvider) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	prompt := ExtractPrompt(raw)

	m.mu.Lock()
	m.requestCount++
	m.prompts = append(m.prompts, prompt)
	m.lastHeader = r.Header.Clone()
	text, resp, handler := m.text, m.response, m.handler
	m.mu.Unlock()

	if handler != nil {
		handler(w, r, prompt)
		return
	}

	if resp != nil {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
		return
	}

	WriteSuccess(w, r, text)
}

// WriteSuccess writes text in the envelope matching the request path.
func WriteSuccess(w http.ResponseWriter, r *http.Request, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if strings.HasSuffix(r.URL.Path, ":generateContent") {
		w.Write([]byte(GeminiBody(text)))
		return
	}
	w.Write([]byte(ChatBody(text)))
}

// GeminiBody builds a generateContent success envelope.
func GeminiBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			},
			"finishReason": "STOP",
		}},
	})
	return string(body)
}

// ChatBody builds a chat/completions success envelope.
func ChatBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"id": "chatcmpl-test",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": text},
			"finish_reason": "stop",
		}},
	})
	return string(body)
}

// ExtractPrompt pulls the user text out of either request envelope.
func ExtractPrompt(body []byte) string {
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		return req.Contents[0].Parts[0].Text
	}
	if len(req.Messages) > 0 {
		return req.Messages[0].Content
	}
	return ""
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": {"message": "Internal server error"}}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": {"message": "Rate limit exceeded"}}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Retry-After":  "30",
		},
	}
}

// NewMalformedResponse creates a 200 response whose body is not JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `<html>not json</html>`,
	}
}
