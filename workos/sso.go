package workos

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

// SSOService groups the single sign-on endpoints.
type SSOService struct {
	client *Client
}

// Provider is an OAuth provider that can be used instead of a connection
// or organization when starting a login.
type Provider string

const (
	GoogleOAuth    Provider = "GoogleOAuth"
	MicrosoftOAuth Provider = "MicrosoftOAuth"
	GitHubOAuth    Provider = "GitHubOAuth"
	AppleOAuth     Provider = "AppleOAuth"
	AuthKit        Provider = "authkit"
)

// AuthorizationURLOpts selects the login to start. Exactly one of
// Connection, Organization or Provider must be set.
type AuthorizationURLOpts struct {
	// ClientID defaults to the client's ClientID.
	ClientID    string
	RedirectURI string

	Connection   string
	Organization string
	Provider     Provider

	State      string
	DomainHint string
	LoginHint  string
}

func (o AuthorizationURLOpts) validate(op string) error {
	var result *multierror.Error
	if o.ClientID == "" {
		result = multierror.Append(result, errors.New("client id is required"))
	}
	if o.RedirectURI == "" {
		result = multierror.Append(result, errors.New("redirect uri is required"))
	}

	selectors := 0
	for _, v := range []string{o.Connection, o.Organization, string(o.Provider)} {
		if v != "" {
			selectors++
		}
	}
	switch selectors {
	case 0:
		result = multierror.Append(result, errors.New("one of connection, organization or provider is required"))
	case 1:
	default:
		result = multierror.Append(result, errors.New("only one of connection, organization or provider may be set"))
	}
	return invalid(op, result)
}

func (o AuthorizationURLOpts) query() url.Values {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", o.ClientID)
	query.Set("redirect_uri", o.RedirectURI)

	switch {
	case o.Connection != "":
		query.Set("connection", o.Connection)
	case o.Organization != "":
		query.Set("organization", o.Organization)
	default:
		query.Set("provider", string(o.Provider))
	}

	if o.State != "" {
		query.Set("state", o.State)
	}
	if o.DomainHint != "" {
		query.Set("domain_hint", o.DomainHint)
	}
	if o.LoginHint != "" {
		query.Set("login_hint", o.LoginHint)
	}
	return query
}

// GetAuthorizationURL builds the URL a user is redirected to in order to
// start an SSO login. No request is sent.
func (s *SSOService) GetAuthorizationURL(opts AuthorizationURLOpts) (*url.URL, error) {
	if opts.ClientID == "" {
		opts.ClientID = s.client.ClientID
	}
	if err := opts.validate("authorization url"); err != nil {
		return nil, err
	}
	return s.client.endpoint("/sso/authorize", opts.query()), nil
}

type GetProfileAndTokenOpts struct {
	// ClientID defaults to the client's ClientID.
	ClientID string
	Code     string
}

// GetProfileAndToken exchanges an authorization code for the user's
// profile and an access token. Rejected client credentials match
// ErrUnauthorized; other 400 responses are returned as *OAuthError.
func (s *SSOService) GetProfileAndToken(ctx context.Context, opts GetProfileAndTokenOpts) (*models.ProfileAndToken, error) {
	clientID := opts.ClientID
	if clientID == "" {
		clientID = s.client.ClientID
	}

	var result *multierror.Error
	if clientID == "" {
		result = multierror.Append(result, errors.New("client id is required"))
	}
	if opts.Code == "" {
		result = multierror.Append(result, errors.New("code is required"))
	}
	if err := invalid("get profile and token", result); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", s.client.APIKey)
	form.Set("grant_type", "authorization_code")
	form.Set("code", opts.Code)

	var resp models.ProfileAndToken
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/sso/token",
		form:   form,
		noAuth: true,
	}, &resp)
	if err != nil {
		return nil, asOAuthError(err)
	}
	return &resp, nil
}

// GetProfile returns the profile belonging to an access token obtained
// from GetProfileAndToken.
func (s *SSOService) GetProfile(ctx context.Context, accessToken string) (*models.Profile, error) {
	if err := requireID("get profile", "access token", accessToken); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/sso/profile",
		bearer: accessToken,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type ListConnectionsOpts struct {
	models.PaginationParams

	OrganizationID string
	ConnectionType models.ConnectionType
}

func (s *SSOService) ListConnections(ctx context.Context, opts ListConnectionsOpts) (*models.List[models.Connection], error) {
	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if opts.OrganizationID != "" {
		query.Set("organization_id", opts.OrganizationID)
	}
	if opts.ConnectionType != "" {
		query.Set("connection_type", string(opts.ConnectionType))
	}

	var list models.List[models.Connection]
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/connections",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *SSOService) GetConnection(ctx context.Context, id string) (*models.Connection, error) {
	if err := requireID("get connection", "connection id", id); err != nil {
		return nil, err
	}

	var conn models.Connection
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/connections", id),
	}, &conn)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (s *SSOService) DeleteConnection(ctx context.Context, id string) error {
	if err := requireID("delete connection", "connection id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("/connections", id),
	}, nil)
}
