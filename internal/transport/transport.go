// Package transport builds the HTTP client shared by all provider adapters.
package transport

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// TLSConfig returns a TLS 1.2+ configuration restricted to AEAD suites.
// With verify false, certificate validation is skipped.
func TLSConfig(verify bool) *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
		},
		InsecureSkipVerify: !verify, //nolint:gosec // opt-in via --disable_ssl
	}
}

// NewTransport returns an http.Transport sized for one connection per
// concurrent batch to each provider host.
func NewTransport(verify bool) *http.Transport {
	return &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: TLSConfig(verify),
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// NewHTTPClient returns a client without an overall timeout; per-call
// deadlines come from the caller's context.
func NewHTTPClient(verify bool) *http.Client {
	return &http.Client{Transport: NewTransport(verify)}
}
