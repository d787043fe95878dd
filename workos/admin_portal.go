package workos

import (
	"context"
	"errors"
	"net/http"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

type AdminPortalService struct {
	client *Client
}

type GenerateLinkOpts struct {
	Organization string              `json:"organization"`
	Intent       models.PortalIntent `json:"intent"`
	ReturnURL    string              `json:"return_url,omitempty"`
}

// GenerateLink returns a short-lived link to the Admin Portal for an organization.
func (s *AdminPortalService) GenerateLink(ctx context.Context, opts GenerateLinkOpts) (string, error) {
	var result *multierror.Error
	if opts.Organization == "" {
		result = multierror.Append(result, errors.New("organization is required"))
	}
	if opts.Intent == "" {
		result = multierror.Append(result, errors.New("intent is required"))
	}
	if err := invalid("generate portal link", result); err != nil {
		return "", err
	}

	var resp struct {
		Link string `json:"link"`
	}
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/portal/generate_link",
		json:   opts,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Link, nil
}
