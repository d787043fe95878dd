package workos

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/http2"
)

const (
	DefaultBaseURL = "https://api.workos.com"
	DefaultTimeout = 30 * time.Second
)

// Config contains the settings used to build a Client.
//
// Example configuration (YAML, see internal/appconfig):
//
//	workos:
//	  baseURL: https://api.workos.com
//	  clientId: client_123456789
//	  timeout: 30s
//	  http2: true
//	  caFile: /etc/ssl/certs/workos-ca.pem
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// APIKey is the secret key (sk_...) sent as a bearer token.
	APIKey string

	// ClientID is used by the OAuth code exchanges and authorization URLs.
	ClientID string

	// Timeout for a single request. Default: 30 seconds
	Timeout time.Duration

	// HTTP2 forces an HTTP/2 transport instead of the standard transport.
	HTTP2 bool

	// CACertFile is an optional PEM bundle. When set, only these roots
	// verify the server certificate.
	CACertFile string
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.APIKey == "" {
		result = multierror.Append(result, errors.New("api key is required"))
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid base url: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			result = multierror.Append(result,
				fmt.Errorf("base url must use http or https scheme, got: %q", u.Scheme))
		}
	}

	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative, got: %v", c.Timeout))
	}

	if c.CACertFile != "" {
		if _, err := os.Stat(c.CACertFile); err != nil {
			result = multierror.Append(result, fmt.Errorf("ca file: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// NewHTTPClient creates the HTTP client described by the configuration.
func (c *Config) NewHTTPClient() (*http.Client, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.CACertFile != "" {
		pool, err := loadCertPool(c.CACertFile)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	var transport http.RoundTripper
	if c.HTTP2 {
		transport = &http2.Transport{
			TLSClientConfig: tlsConfig,
		}
	} else {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     tlsConfig,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

func loadCertPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("failed to parse CA certificate %s", path)
	}
	return pool, nil
}
