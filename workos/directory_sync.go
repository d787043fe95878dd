package workos

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

// DirectorySyncService groups the directory, directory user and directory
// group endpoints.
type DirectorySyncService struct {
	client *Client
}

type ListDirectoriesOpts struct {
	models.PaginationParams

	Domain         string
	Search         string
	OrganizationID string
	Type           models.DirectoryType
}

// ListDirectoryUsersOpts filters users by exactly one of Directory or Group.
type ListDirectoryUsersOpts struct {
	models.PaginationParams

	Directory string
	Group     string
}

// ListDirectoryGroupsOpts filters groups by exactly one of Directory or User.
type ListDirectoryGroupsOpts struct {
	models.PaginationParams

	Directory string
	User      string
}

func exactlyOne(op string, names [2]string, values [2]string) error {
	var result *multierror.Error
	switch {
	case values[0] == "" && values[1] == "":
		result = multierror.Append(result, errors.New("one of "+names[0]+" or "+names[1]+" is required"))
	case values[0] != "" && values[1] != "":
		result = multierror.Append(result, errors.New("only one of "+names[0]+" or "+names[1]+" may be set"))
	}
	return invalid(op, result)
}

func (s *DirectorySyncService) ListDirectories(ctx context.Context, opts ListDirectoriesOpts) (*models.List[models.Directory], error) {
	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if opts.Domain != "" {
		query.Set("domain", opts.Domain)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.OrganizationID != "" {
		query.Set("organization_id", opts.OrganizationID)
	}
	if opts.Type != "" {
		query.Set("directory_type", string(opts.Type))
	}

	var list models.List[models.Directory]
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/directories",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *DirectorySyncService) GetDirectory(ctx context.Context, id string) (*models.Directory, error) {
	if err := requireID("get directory", "directory id", id); err != nil {
		return nil, err
	}

	var dir models.Directory
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/directories", id),
	}, &dir)
	if err != nil {
		return nil, err
	}
	return &dir, nil
}

func (s *DirectorySyncService) DeleteDirectory(ctx context.Context, id string) error {
	if err := requireID("delete directory", "directory id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("/directories", id),
	}, nil)
}

func (s *DirectorySyncService) ListUsers(ctx context.Context, opts ListDirectoryUsersOpts) (*models.List[models.DirectoryUser], error) {
	err := exactlyOne("list directory users",
		[2]string{"directory", "group"}, [2]string{opts.Directory, opts.Group})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if opts.Directory != "" {
		query.Set("directory", opts.Directory)
	} else {
		query.Set("group", opts.Group)
	}

	var list models.List[models.DirectoryUser]
	err = s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/directory_users",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *DirectorySyncService) GetUser(ctx context.Context, id string) (*models.DirectoryUser, error) {
	if err := requireID("get directory user", "directory user id", id); err != nil {
		return nil, err
	}

	var user models.DirectoryUser
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/directory_users", id),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DirectorySyncService) ListGroups(ctx context.Context, opts ListDirectoryGroupsOpts) (*models.List[models.DirectoryGroup], error) {
	err := exactlyOne("list directory groups",
		[2]string{"directory", "user"}, [2]string{opts.Directory, opts.User})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	opts.PaginationParams.Apply(query)
	if opts.Directory != "" {
		query.Set("directory", opts.Directory)
	} else {
		query.Set("user", opts.User)
	}

	var list models.List[models.DirectoryGroup]
	err = s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/directory_groups",
		query:  query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *DirectorySyncService) GetGroup(ctx context.Context, id string) (*models.DirectoryGroup, error) {
	if err := requireID("get directory group", "directory group id", id); err != nil {
		return nil, err
	}

	var group models.DirectoryGroup
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/directory_groups", id),
	}, &group)
	if err != nil {
		return nil, err
	}
	return &group, nil
}
