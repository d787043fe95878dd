package handlers

import (
	"net/http"

	services "github.com/EO-DataHub/workos-go/api/services"
)

// @Summary Get the current session
// @Description Returns the user management user behind the bearer access token.
// @Tags sessions
// @Produce json
// @Success 200 {object} services.SessionResponse
// @Failure 401 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 503 {object} models.Response
// @Router /session [get]
func GetSession(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetSessionService(svc, w, r)
	}
}
