package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by ProviderError.Is according to its Kind.
var (
	// ErrMissingCredential is returned when a provider has no API key.
	ErrMissingCredential = errors.New("missing credential")

	// ErrTransport is returned for network failures and non-success statuses.
	ErrTransport = errors.New("transport error")

	// ErrParse is returned when a success response cannot be decoded.
	ErrParse = errors.New("parse error")
)

// Kind is the failure category of a provider call.
type Kind string

const (
	// KindMissingCredential means no request was attempted.
	KindMissingCredential Kind = "missing_credential"

	// KindTransport covers network errors, timeouts and non-2xx statuses.
	KindTransport Kind = "transport"

	// KindParse means the response envelope did not have the expected shape.
	KindParse Kind = "parse"
)

// ErrorClass represents a classification of transport errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 Too Many Requests.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// ProviderError is the error returned by every Provider.Invoke failure.
type ProviderError struct {
	Provider   string
	Kind       Kind
	Class      ErrorClass // transport failures only
	StatusCode int        // 0 when no response was received
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	var head string
	switch {
	case e.Class != "" && e.StatusCode != 0:
		head = fmt.Sprintf("%s %s error (%s, status %d)", e.Provider, e.Kind, e.Class, e.StatusCode)
	case e.Class != "":
		head = fmt.Sprintf("%s %s error (%s)", e.Provider, e.Kind, e.Class)
	default:
		head = fmt.Sprintf("%s %s error", e.Provider, e.Kind)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", head, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", head, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's Kind.
func (e *ProviderError) Is(target error) bool {
	switch e.Kind {
	case KindMissingCredential:
		return target == ErrMissingCredential
	case KindTransport:
		return target == ErrTransport
	case KindParse:
		return target == ErrParse
	default:
		return false
	}
}

func missingCredential(provider string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindMissingCredential,
		Message:  "no API key configured",
	}
}

func parseError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindParse,
		Message:  message,
		Err:      err,
	}
}

// classifyStatus categorizes a non-success HTTP status.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == 429:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		// 1xx/3xx that were not followed count as client-side surprises
		return ErrorClassClient
	}
}
