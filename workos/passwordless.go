package workos

import (
	"context"
	"errors"
	"net/http"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

type PasswordlessService struct {
	client *Client
}

type CreatePasswordlessSessionOpts struct {
	Email       string `json:"email"`
	RedirectURI string `json:"redirect_uri,omitempty"`
	State       string `json:"state,omitempty"`
}

// CreateSession creates a magic link session for an email address. The
// link can be sent by WorkOS with SendSession or delivered by the caller.
func (s *PasswordlessService) CreateSession(ctx context.Context, opts CreatePasswordlessSessionOpts) (*models.PasswordlessSession, error) {
	var result *multierror.Error
	if opts.Email == "" {
		result = multierror.Append(result, errors.New("email is required"))
	}
	if err := invalid("create passwordless session", result); err != nil {
		return nil, err
	}

	body := struct {
		Type string `json:"type"`
		CreatePasswordlessSessionOpts
	}{
		Type:                          "MagicLink",
		CreatePasswordlessSessionOpts: opts,
	}

	var session models.PasswordlessSession
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/passwordless/sessions",
		json:   body,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SendSession emails the magic link of a session to its address.
func (s *PasswordlessService) SendSession(ctx context.Context, id string) error {
	if err := requireID("send passwordless session", "passwordless session id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   resourcePath("/passwordless/sessions", id) + "/send",
		json:   map[string]string{"id": id},
	}, nil)
}
