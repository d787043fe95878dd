package workos

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

// UserManagementService groups the /user_management endpoints.
type UserManagementService struct {
	client *Client
}

// GetUser returns a user by id. An unknown id matches ErrNotFound.
func (s *UserManagementService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := requireID("get user", "user id", id); err != nil {
		return nil, err
	}

	var user models.User
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/user_management/users", id),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type ListUsersOpts struct {
	models.PaginationParams

	Email          string
	OrganizationID string
}

func (s *UserManagementService) ListUsers(ctx context.Context, opts ListUsersOpts) (*models.List[models.User], error) {
	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if opts.Email != "" {
		query.Set("email", opts.Email)
	}
	if opts.OrganizationID != "" {
		query.Set("organization_id", opts.OrganizationID)
	}

	var list models.List[models.User]
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/user_management/users",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

type CreateUserOpts struct {
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

func (s *UserManagementService) CreateUser(ctx context.Context, opts CreateUserOpts) (*models.User, error) {
	var result *multierror.Error
	if opts.Email == "" {
		result = multierror.Append(result, errors.New("email is required"))
	}
	if err := invalid("create user", result); err != nil {
		return nil, err
	}

	var user models.User
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/user_management/users",
		json:   opts,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserOpts struct {
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	Password      string `json:"password,omitempty"`
}

func (s *UserManagementService) UpdateUser(ctx context.Context, id string, opts UpdateUserOpts) (*models.User, error) {
	if err := requireID("update user", "user id", id); err != nil {
		return nil, err
	}

	var user models.User
	err := s.client.do(ctx, request{
		method: http.MethodPut,
		path:   resourcePath("/user_management/users", id),
		json:   opts,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserManagementService) DeleteUser(ctx context.Context, id string) error {
	if err := requireID("delete user", "user id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("/user_management/users", id),
	}, nil)
}

type AuthenticateWithCodeOpts struct {
	// ClientID defaults to the client's ClientID.
	ClientID  string
	Code      string
	IPAddress string
	UserAgent string
}

// AuthenticateWithCode exchanges an AuthKit authorization code for the
// signed in user. Errors are reported as for SSOService.GetProfileAndToken.
func (s *UserManagementService) AuthenticateWithCode(ctx context.Context, opts AuthenticateWithCodeOpts) (*models.AuthenticateResponse, error) {
	if opts.Code == "" {
		return nil, &ValidationError{Op: "authenticate with code", Err: errors.New("code is required")}
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", opts.Code)
	return s.authenticate(ctx, "authenticate with code", opts.ClientID, form, opts.IPAddress, opts.UserAgent)
}

type AuthenticateWithRefreshTokenOpts struct {
	// ClientID defaults to the client's ClientID.
	ClientID       string
	RefreshToken   string
	OrganizationID string
	IPAddress      string
	UserAgent      string
}

// AuthenticateWithRefreshToken trades a refresh token for a new access
// and refresh token pair.
func (s *UserManagementService) AuthenticateWithRefreshToken(ctx context.Context, opts AuthenticateWithRefreshTokenOpts) (*models.AuthenticateResponse, error) {
	if opts.RefreshToken == "" {
		return nil, &ValidationError{Op: "authenticate with refresh token", Err: errors.New("refresh token is required")}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", opts.RefreshToken)
	if opts.OrganizationID != "" {
		form.Set("organization_id", opts.OrganizationID)
	}
	return s.authenticate(ctx, "authenticate with refresh token", opts.ClientID, form, opts.IPAddress, opts.UserAgent)
}

func (s *UserManagementService) authenticate(ctx context.Context, op, clientID string, form url.Values, ipAddress, userAgent string) (*models.AuthenticateResponse, error) {
	if clientID == "" {
		clientID = s.client.ClientID
	}
	if clientID == "" {
		return nil, &ValidationError{Op: op, Err: errors.New("client id is required")}
	}

	form.Set("client_id", clientID)
	form.Set("client_secret", s.client.APIKey)
	form.Set("ip_address", ipAddress)
	form.Set("user_agent", userAgent)

	var resp models.AuthenticateResponse
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/user_management/authenticate",
		form:   form,
		noAuth: true,
	}, &resp)
	if err != nil {
		return nil, asOAuthError(err)
	}
	return &resp, nil
}

// GetAuthorizationURL builds the AuthKit login URL. Provider defaults to
// AuthKit when no connection or organization is given.
func (s *UserManagementService) GetAuthorizationURL(opts AuthorizationURLOpts) (*url.URL, error) {
	if opts.ClientID == "" {
		opts.ClientID = s.client.ClientID
	}
	if opts.Provider == "" && opts.Connection == "" && opts.Organization == "" {
		opts.Provider = AuthKit
	}
	if err := opts.validate("user management authorization url"); err != nil {
		return nil, err
	}
	return s.client.endpoint("/user_management/authorize", opts.query()), nil
}

// GetJWKS returns the public keys that sign access tokens issued for
// clientID, which defaults to the client's ClientID. The endpoint is
// public, so no API key is sent.
func (s *UserManagementService) GetJWKS(ctx context.Context, clientID string) (*models.JWKS, error) {
	if clientID == "" {
		clientID = s.client.ClientID
	}
	if err := requireID("get jwks", "client id", clientID); err != nil {
		return nil, err
	}

	var jwks models.JWKS
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/sso/jwks", clientID),
		noAuth: true,
	}, &jwks)
	if err != nil {
		return nil, err
	}
	return &jwks, nil
}
