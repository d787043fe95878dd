package services

import (
	"net/http"

	"github.com/EO-DataHub/workos-go/api/middleware"
	"github.com/EO-DataHub/workos-go/internal/authn"
	"github.com/EO-DataHub/workos-go/models"
	"github.com/rs/zerolog"
)

// SessionResponse describes the caller of GET /session.
type SessionResponse struct {
	SessionID      string       `json:"session_id"`
	OrganizationID string       `json:"organization_id,omitempty"`
	Role           string       `json:"role,omitempty"`
	Permissions    []string     `json:"permissions,omitempty"`
	User           *models.User `json:"user"`
}

// GetSessionService returns the user behind the access token of the
// request, as currently known to WorkOS.
func GetSessionService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	user, err := svc.Users.GetUser(r.Context(), claims.Subject)
	if err != nil {
		status := StatusFromError(err)
		logger.Error().Err(err).Int("status", status).Msg("Failed to retrieve user")
		HandleErrResponse(w, status, err)
		return
	}

	logger.Info().Msg("Successfully retrieved session")
	WriteResponse(w, http.StatusOK, SessionResponse{
		SessionID:      claims.SessionID,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
		Permissions:    claims.Permissions,
		User:           user,
	})
}
