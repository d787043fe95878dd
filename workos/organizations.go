package workos

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// OrganizationsService groups the /organizations endpoints.
type OrganizationsService struct {
	client *Client
}

type ListOrganizationsOpts struct {
	models.PaginationParams

	// Domains filters organizations to those with any of these domains.
	Domains []string
}

type CreateOrganizationOpts struct {
	Name                             string   `json:"name"`
	AllowProfilesOutsideOrganization bool     `json:"allow_profiles_outside_organization"`
	Domains                          []string `json:"domains"`

	// IdempotencyKey defaults to a random UUID.
	IdempotencyKey string `json:"-"`
}

func (o CreateOrganizationOpts) validate() error {
	var result *multierror.Error
	if strings.TrimSpace(o.Name) == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	if len(o.Domains) == 0 && !o.AllowProfilesOutsideOrganization {
		result = multierror.Append(result,
			errors.New("at least one domain is required unless profiles outside the organization are allowed"))
	}
	return invalid("create organization", result)
}

// UpdateOrganizationOpts replaces the fields that are set.
type UpdateOrganizationOpts struct {
	Name                             string   `json:"name,omitempty"`
	AllowProfilesOutsideOrganization *bool    `json:"allow_profiles_outside_organization,omitempty"`
	Domains                          []string `json:"domains,omitempty"`
}

// List lists organizations, newest first unless an order is given.
func (s *OrganizationsService) List(ctx context.Context, opts ListOrganizationsOpts) (*models.List[models.Organization], error) {
	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if len(opts.Domains) > 0 {
		query.Set("domains[]", strings.Join(opts.Domains, ","))
	}

	var list models.List[models.Organization]
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/organizations",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *OrganizationsService) Get(ctx context.Context, id string) (*models.Organization, error) {
	if err := requireID("get organization", "organization id", id); err != nil {
		return nil, err
	}

	var org models.Organization
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/organizations", id),
	}, &org)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Create(ctx context.Context, opts CreateOrganizationOpts) (*models.Organization, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.Domains == nil {
		opts.Domains = []string{}
	}

	key := opts.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	var org models.Organization
	err := s.client.do(ctx, request{
		method:         http.MethodPost,
		path:           "/organizations",
		json:           opts,
		idempotencyKey: key,
	}, &org)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Update(ctx context.Context, id string, opts UpdateOrganizationOpts) (*models.Organization, error) {
	if err := requireID("update organization", "organization id", id); err != nil {
		return nil, err
	}

	var org models.Organization
	err := s.client.do(ctx, request{
		method: http.MethodPut,
		path:   resourcePath("/organizations", id),
		json:   opts,
	}, &org)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Delete(ctx context.Context, id string) error {
	if err := requireID("delete organization", "organization id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("/organizations", id),
	}, nil)
}
