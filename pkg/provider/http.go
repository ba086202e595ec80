package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// maxResponseBytes caps how much of a success body is read.
	maxResponseBytes = 8 << 20

	// maxErrorBytes caps how much of an error body ends up in messages.
	maxErrorBytes = 512
)

// caller performs the JSON POST shared by every adapter.
type caller struct {
	provider string
	client   *http.Client
	timeout  time.Duration
	logger   zerolog.Logger
}

func newCaller(provider string, opts Options) caller {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return caller{
		provider: provider,
		client:   client,
		timeout:  opts.Timeout,
		logger:   opts.Logger.With().Str("provider", provider).Logger(),
	}
}

// postJSON sends payload to url and decodes a 2xx body into out.
// Every returned error is a *ProviderError.
func (c caller) postJSON(ctx context.Context, url string, header http.Header, payload, out any) error {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(c.provider).Observe(time.Since(start).Seconds())
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(&ProviderError{
			Provider: c.provider,
			Kind:     KindTransport,
			Class:    ErrorClassClient,
			Message:  "encode request",
			Err:      err,
		})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return c.fail(&ProviderError{
			Provider: c.provider,
			Kind:     KindTransport,
			Class:    ErrorClassClient,
			Message:  "create request",
			Err:      err,
		})
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Int("prompt_bytes", len(body)).Msg("Sending provider request")

	resp, err := c.client.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(c.provider, "network_error").Inc()
		return c.fail(&ProviderError{
			Provider: c.provider,
			Kind:     KindTransport,
			Class:    ErrorClassNetwork,
			Message:  "request failed",
			Err:      err,
		})
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(c.provider, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(&ProviderError{
			Provider:   c.provider,
			Kind:       KindTransport,
			Class:      classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.fail(&ProviderError{
			Provider:   c.provider,
			Kind:       KindTransport,
			Class:      ErrorClassNetwork,
			StatusCode: resp.StatusCode,
			Message:    "read response body",
			Err:        err,
		})
	}

	if err := json.Unmarshal(data, out); err != nil {
		return c.fail(parseError(c.provider, "decode response envelope", err))
	}

	return nil
}

// fail records metrics and logs for a failed call.
func (c caller) fail(err *ProviderError) *ProviderError {
	errorsTotal.WithLabelValues(c.provider, string(err.Kind)).Inc()

	c.logger.Debug().
		Str("kind", string(err.Kind)).
		Str("error_class", string(err.Class)).
		Int("status", err.StatusCode).
		Msg("Provider request failed")

	return err
}

// errorMessage returns the status line plus the start of the error body.
func errorMessage(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		return resp.Status
	}
	return resp.Status + ": " + msg
}
