// Package workos is a client for the WorkOS API.
//
// Operations are grouped by product and reached through accessors on the
// client:
//
//	client := workos.New(os.Getenv("WORKOS_API_KEY"))
//	org, err := client.Organizations().Get(ctx, "org_01EHZNVPK3SFK441A1RGBFSHRT")
//
// Every operation sends exactly one HTTP request. Failures are reported as
// *HTTPError, *OAuthError, *ValidationError or one of the sentinel errors,
// and can be matched with errors.Is and errors.As.
package workos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

const Version = "0.4.0"

// Client is a client for interacting with the WorkOS API.
type Client struct {
	BaseURL    *url.URL
	APIKey     string
	ClientID   string
	HTTPClient *http.Client
	UserAgent  string
}

// New creates a client for the production API using the default HTTP client settings.
func New(apiKey string) *Client {
	baseURL, _ := url.Parse(DefaultBaseURL)
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  "workos-go/" + Version,
	}
}

// NewClient creates a client from cfg after validating it.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workos config: %w", err)
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	httpClient, err := cfg.NewHTTPClient()
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:    baseURL,
		APIKey:     cfg.APIKey,
		ClientID:   cfg.ClientID,
		HTTPClient: httpClient,
		UserAgent:  "workos-go/" + Version,
	}, nil
}

func (c *Client) Organizations() *OrganizationsService {
	return &OrganizationsService{client: c}
}

func (c *Client) DirectorySync() *DirectorySyncService {
	return &DirectorySyncService{client: c}
}

func (c *Client) SSO() *SSOService {
	return &SSOService{client: c}
}

func (c *Client) MFA() *MFAService {
	return &MFAService{client: c}
}

func (c *Client) Passwordless() *PasswordlessService {
	return &PasswordlessService{client: c}
}

func (c *Client) AdminPortal() *AdminPortalService {
	return &AdminPortalService{client: c}
}

func (c *Client) UserManagement() *UserManagementService {
	return &UserManagementService{client: c}
}

// request describes a single API call.
type request struct {
	method string
	path   string
	query  url.Values

	// json is encoded as the request body; form takes precedence.
	json any
	form url.Values

	// bearer replaces the API key in the Authorization header.
	bearer string
	// noAuth omits the Authorization header (credentials are in the form).
	noAuth bool

	idempotencyKey string
}

// endpoint joins an already escaped path onto the base URL.
func (c *Client) endpoint(path string, query url.Values) *url.URL {
	base := *c.BaseURL
	if base.Path == "" {
		base.Path = "/"
	}
	u := base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Helper function for making HTTP requests to the WorkOS API. A 2xx
// response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	for _, segment := range strings.Split(r.path, "/") {
		if isDotSegment(segment) {
			return &ValidationError{Op: r.method + " " + r.path, Err: errors.New("path must not contain dot segments")}
		}
	}
	endpoint := c.endpoint(r.path, r.query)

	var body io.Reader
	var contentType string
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.json != nil:
		b, err := json.Marshal(r.json)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	switch {
	case r.noAuth:
	case r.bearer != "":
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	default:
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if r.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.idempotencyKey)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("method", r.method).
		Str("path", req.URL.Path).
		Logger()

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("workos request failed")
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", resp.Header.Get("X-Request-ID")).
		Msg("workos request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// invalid wraps collected validation failures for op, or returns nil.
func invalid(op string, result *multierror.Error) error {
	if err := result.ErrorOrNil(); err != nil {
		return &ValidationError{Op: op, Err: err}
	}
	return nil
}

func requireID(op, name, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Op: op, Err: fmt.Errorf("%s is required", name)}
	}
	if isDotSegment(id) {
		return &ValidationError{Op: op, Err: fmt.Errorf("%s %q is not a valid id", name, id)}
	}
	return nil
}

// isDotSegment reports whether s would be removed or resolved against its
// parent when the request path is cleaned.
func isDotSegment(s string) bool {
	return s == "." || s == ".."
}

// resourcePath builds an escaped path from a collection and resource ids.
func resourcePath(collection string, ids ...string) string {
	var b strings.Builder
	b.WriteString(collection)
	for _, id := range ids {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(id))
	}
	return b.String()
}
