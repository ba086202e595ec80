package provider

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected ErrorClass
	}{
		{name: "bad request", status: 400, expected: ErrorClassClient},
		{name: "unauthorized", status: 401, expected: ErrorClassClient},
		{name: "too many requests", status: 429, expected: ErrorClassRateLimit},
		{name: "internal error", status: 500, expected: ErrorClassServer},
		{name: "bad gateway", status: 502, expected: ErrorClassServer},
		{name: "unfollowed redirect", status: 302, expected: ErrorClassClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestProviderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProviderError
		expected string
	}{
		{
			name: "transport with status",
			err: &ProviderError{
				Provider:   "groq",
				Kind:       KindTransport,
				Class:      ErrorClassServer,
				StatusCode: 500,
				Message:    "500 Internal Server Error",
			},
			expected: "groq transport error (server, status 500): 500 Internal Server Error",
		},
		{
			name: "network with wrapped error",
			err: &ProviderError{
				Provider: "gemini",
				Kind:     KindTransport,
				Class:    ErrorClassNetwork,
				Message:  "request failed",
				Err:      errors.New("connection refused"),
			},
			expected: "gemini transport error (network): request failed: connection refused",
		},
		{
			name:     "missing credential",
			err:      missingCredential("deepseek"),
			expected: "deepseek missing_credential error: no API key configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProviderError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "missing credential", err: missingCredential("gemini"), sentinel: ErrMissingCredential},
		{name: "parse", err: parseError("gemini", "no candidates", nil), sentinel: ErrParse},
		{name: "transport", err: &ProviderError{Provider: "groq", Kind: KindTransport}, sentinel: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			for _, other := range []error{ErrMissingCredential, ErrParse, ErrTransport} {
				if other != tt.sentinel && errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, other)
				}
			}
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	err := &ProviderError{
		Provider: "gemini",
		Kind:     KindTransport,
		Class:    ErrorClassNetwork,
		Message:  "request failed",
		Err:      context.DeadlineExceeded,
	}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should reach the wrapped error")
	}

	var pe *ProviderError
	if !errors.As(error(err), &pe) || pe.Class != ErrorClassNetwork {
		t.Error("errors.As should extract ProviderError")
	}
}
