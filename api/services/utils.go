package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/workos"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes err as a failed models.Response. WorkOS API
// errors carry their code through to the caller.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	response := models.ErrorResponse("", err.Error())

	var httpErr *workos.HTTPError
	var oauthErr *workos.OAuthError
	switch {
	case errors.As(err, &httpErr):
		response.ErrorCode = httpErr.Code
		response.ErrorDetails = httpErr.Message
	case errors.As(err, &oauthErr):
		response.ErrorCode = oauthErr.Code
		response.ErrorDetails = oauthErr.Description
	}

	WriteResponse(w, statusCode, response)
}

// StatusFromError maps an error returned by the WorkOS client to the
// status code the relay answers with.
func StatusFromError(err error) int {
	var httpErr *workos.HTTPError
	var validationErr *workos.ValidationError
	switch {
	case errors.Is(err, workos.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, workos.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.Status
	default:
		return http.StatusInternalServerError
	}
}
