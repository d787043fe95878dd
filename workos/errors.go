package workos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches 401 responses and rejected client credentials.
	ErrUnauthorized = errors.New("workos: unauthorized")

	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("workos: not found")

	// ErrInvalidPhoneNumber is returned by EnrollFactor when the API
	// rejects the SMS phone number.
	ErrInvalidPhoneNumber = errors.New("workos: invalid phone number")
)

// HTTPError is returned for any non-2xx response that no operation
// handles more specifically.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("workos: status %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("workos: status %d: %s", e.Status, msg)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// errorBody covers both error shapes the API uses: {code, message} on
// resource endpoints and {error, error_description} on OAuth endpoints.
type errorBody struct {
	Code             string `json:"code"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status, Body: string(body)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return e
	}

	e.Code = eb.Code
	if e.Code == "" {
		e.Code = eb.Error
	}
	e.Message = eb.Message
	if e.Message == "" {
		e.Message = eb.ErrorDescription
	}
	return e
}

// OAuthError is the error reported by the code exchange endpoints on a
// 400 response.
type OAuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is reports rejected client credentials as ErrUnauthorized.
func (e *OAuthError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Code == "invalid_client" || e.Code == "unauthorized_client")
}

// asOAuthError converts a 400 from a token endpoint into an *OAuthError.
func asOAuthError(err error) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		return err
	}

	var oauthErr OAuthError
	if jsonErr := json.Unmarshal([]byte(httpErr.Body), &oauthErr); jsonErr != nil || oauthErr.Code == "" {
		return err
	}
	return &oauthErr
}

// ValidationError is returned before any request is sent when the
// options of an operation are invalid.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workos: invalid %s request: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
