package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/EO-DataHub/workos-go/internal/authn"
	"github.com/EO-DataHub/workos-go/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string
type tokenKey string

const ClaimsKey contextKey = "claims"
const TokenKey tokenKey = "token"

// Error codes written by JWTMiddleware.
const (
	CodeMissingToken      = "missing_token"
	CodeInvalidToken      = "invalid_token"
	CodeTokenExpired      = "token_expired"
	CodeKeySetUnavailable = "key_set_unavailable"
)

// TokenVerifier authenticates an access token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (authn.Claims, error)
}

// JWTMiddleware reads the WorkOS access token from the Authorization
// header, verifies it with verifier and adds the token and its claims to
// the request context. A nil verifier rejects every request.
func JWTMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context())

				token, ok := bearerToken(r)
				if !ok {
					logger.Debug().Msg("Missing bearer token")
					unauthorized(w, CodeMissingToken, "bearer token missing")
					return
				}

				if verifier == nil {
					logger.Error().Msg("No token verifier configured")
					unauthorized(w, CodeInvalidToken, "invalid access token")
					return
				}

				claims, err := verifier.Verify(r.Context(), token)
				switch {
				case errors.Is(err, authn.ErrTokenExpired):
					logger.Debug().Msg("Expired access token")
					unauthorized(w, CodeTokenExpired, "access token expired")
					return
				case errors.Is(err, authn.ErrKeySetUnavailable):
					logger.Error().Err(err).Msg("Could not load token signing keys")
					writeError(w, http.StatusServiceUnavailable, CodeKeySetUnavailable, "token signing keys unavailable")
					return
				case err != nil:
					logger.Debug().Err(err).Msg("Invalid access token")
					unauthorized(w, CodeInvalidToken, "invalid access token")
					return
				}

				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)
				ctx = logger.With().Str("user_id", claims.Subject).Logger().WithContext(ctx)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, code, details string) {
	writeError(w, http.StatusUnauthorized, code, details)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse(code, details))
}

// WithLogger attaches a request scoped logger to the context.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			w.Header().Set("X-Request-ID", id)

			logger := log.With().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("request_id", id).
				Logger()

			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		},
	)
}

// requestID reuses an incoming X-Request-ID or generates a new one.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
