package authn

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrUnknownKey        = errors.New("unknown signing key")
	ErrKeySetUnavailable = errors.New("signing keys unavailable")
	errUnexpectedSigning = errors.New("unexpected signing method")
)

const defaultRefreshBackoff = time.Minute

// KeySource fetches the key set that signs access tokens for a client.
type KeySource interface {
	GetJWKS(ctx context.Context, clientID string) (*models.JWKS, error)
}

// KeySetVerifier checks access tokens against the WorkOS JWKS of one
// client. Keys are cached and refetched when a token names an unknown kid,
// at most once per RefreshBackoff.
type KeySetVerifier struct {
	Source   KeySource
	ClientID string

	// RefreshBackoff defaults to one minute.
	RefreshBackoff time.Duration

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewKeySetVerifier(source KeySource, clientID string) *KeySetVerifier {
	return &KeySetVerifier{Source: source, ClientID: clientID}
}

// Verify checks the RS256 signature and the time claims of token and
// returns its claims. Tokens signed with any other algorithm, including
// none and HMAC, are rejected.
func (v *KeySetVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	claims := Claims{}

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodRS256 {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigning, t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		return v.key(ctx, kid)
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors == jwt.ValidationErrorExpired {
				return claims, ErrTokenExpired
			}
			if errors.Is(ve.Inner, ErrKeySetUnavailable) {
				return claims, ve.Inner
			}
		}
		return claims, fmt.Errorf("%w: %v", ErrInvalidJWT, err)
	}

	if claims.Subject == "" {
		return claims, ErrInvalidClaims
	}
	return claims, nil
}

// key returns the public key for kid, refreshing the cache on a miss.
func (v *KeySetVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok {
		return key, nil
	}

	backoff := v.RefreshBackoff
	if backoff == 0 {
		backoff = defaultRefreshBackoff
	}
	if v.keys != nil && time.Since(v.fetchedAt) < backoff {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, kid)
	}

	jwks, err := v.Source.GetJWKS(ctx, v.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, jwk := range jwks.Keys {
		key, err := RSAPublicKey(jwk)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("kid", jwk.Kid).Msg("Skipping unusable signing key")
			continue
		}
		keys[jwk.Kid] = key
	}
	v.keys = keys
	v.fetchedAt = time.Now()

	if key, ok := v.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, kid)
}

// RSAPublicKey decodes the modulus and exponent of an RSA JWK.
func RSAPublicKey(jwk models.JWK) (*rsa.PublicKey, error) {
	if jwk.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", jwk.Kty)
	}

	n, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	exponent := new(big.Int).SetBytes(e)
	if len(n) == 0 || !exponent.IsInt64() || exponent.Int64() < 3 {
		return nil, errors.New("invalid rsa key")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exponent.Int64())}, nil
}
