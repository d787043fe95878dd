package models

// User is a user managed by WorkOS user management.
type User struct {
	ID                string  `json:"id"`
	Object            string  `json:"object,omitempty"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	EmailVerified     bool    `json:"email_verified"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	Timestamps
}

type AuthenticateResponse struct {
	User           User   `json:"user"`
	OrganizationID string `json:"organization_id,omitempty"`
	AccessToken    string `json:"access_token,omitempty"`
	RefreshToken   string `json:"refresh_token,omitempty"`
}

// JWKS is the key set that signs user management access tokens.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK is a single RSA signing key. N and E are base64url encoded.
type JWK struct {
	Kty string   `json:"kty"`
	Kid string   `json:"kid"`
	Use string   `json:"use,omitempty"`
	Alg string   `json:"alg,omitempty"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	X5c []string `json:"x5c,omitempty"`
}
