package handlers

import (
	"net/http"

	"github.com/EO-DataHub/workos-go/api/middleware"
	services "github.com/EO-DataHub/workos-go/api/services"
	"github.com/gorilla/mux"
)

// NewRouter registers the relay routes under basePath.
func NewRouter(svc *services.Service, basePath string) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix(basePath).Subrouter()
	api.Use(middleware.WithLogger)

	// Deliveries authenticate with their signature, not a bearer token
	api.HandleFunc("/webhooks", ReceiveWebhook(svc)).Methods(http.MethodPost)

	authenticated := api.NewRoute().Subrouter()
	authenticated.Use(middleware.JWTMiddleware(svc.Tokens))
	authenticated.HandleFunc("/session", GetSession(svc)).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		services.WriteResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
