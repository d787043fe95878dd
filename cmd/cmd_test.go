package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/EO-DataHub/workos-go/internal/authn"
	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a fake API server.
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		t.Setenv("WORKOS_BASE_URL", server.URL)
	}
	t.Setenv("WORKOS_API_KEY", "sk_example_123456789")
	t.Setenv("WORKOS_CLIENT_ID", "client_123456789")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOrganizationsGet(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/org_01EHZNVPK3SFK441A1RGBFSHRT", r.URL.Path)
		assert.Equal(t, "Bearer sk_example_123456789", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "id": "org_01EHZNVPK3SFK441A1RGBFSHRT",
		  "object": "organization",
		  "name": "Foo Corp",
		  "allow_profiles_outside_organization": false,
		  "domains": [],
		  "created_at": "2021-06-25T19:07:33.155Z",
		  "updated_at": "2021-06-25T19:07:33.155Z"
		}`))
	}, "organizations", "get", "org_01EHZNVPK3SFK441A1RGBFSHRT", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "Foo Corp"`)
}

func TestOrganizationsList_YAML(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)
		assert.Equal(t, "foo-corp.com,foo-corp.io", r.URL.Query().Get("domains[]"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "data": [{"id": "org_01EHZNVPK3SFK441A1RGBFSHRT", "name": "Foo Corp", "domains": [],
		    "created_at": "2021-06-25T19:07:33.155Z", "updated_at": "2021-06-25T19:07:33.155Z"}],
		  "list_metadata": {"before": null, "after": "org_01EHZNVPK3SFK441A1RGBFSHRT"}
		}`))
	}, "organizations", "list", "--domain", "foo-corp.com", "--domain", "foo-corp.io", "--limit", "5", "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "- id: org_01EHZNVPK3SFK441A1RGBFSHRT")
	assert.Contains(t, out, "after: org_01EHZNVPK3SFK441A1RGBFSHRT")
}

func TestOrganizationsGet_NotFound(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "entity_not_found", "message": "Organization not found"}`))
	}, "organizations", "get", "org_missing", "-o", "json")

	assert.ErrorContains(t, err, "Organization not found")
}

func TestDirectoriesUsers_RequiresFilter(t *testing.T) {
	_, err := run(t, nil, "directories", "users")
	assert.Error(t, err)
}

func TestSSOAuthorizeURL(t *testing.T) {
	out, err := run(t, nil, "sso", "authorize-url",
		"--redirect-uri", "https://your-app.com/callback",
		"--organization", "org_01EHZNVPK3SFK441A1RGBFSHRT")
	require.NoError(t, err)

	assert.Contains(t, out, "/sso/authorize?")
	assert.Contains(t, out, "client_id=client_123456789")
	assert.Contains(t, out, "organization=org_01EHZNVPK3SFK441A1RGBFSHRT")
}

func TestPortalLink(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/portal/generate_link", r.URL.Path)
		_, _ = w.Write([]byte(`{"link": "https://id.workos.com/portal/launch?secret=secret"}`))
	}, "portal", "link", "--organization", "org_01EHZNVPK3SFK441A1RGBFSHRT", "--intent", "dsync")
	require.NoError(t, err)

	assert.Equal(t, "https://id.workos.com/portal/launch?secret=secret\n", out)
}

func TestTokenInspect(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, authn.Claims{
		StandardClaims: jwt.StandardClaims{Subject: "user_01E4ZCR3C56J083X43JQXF3JK5", ExpiresAt: 1},
		OrganizationID: "org_01EHZNVPK3SFK441A1RGBFSHRT",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	out, err := run(t, nil, "token", "inspect", token, "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"sub": "user_01E4ZCR3C56J083X43JQXF3JK5"`)
	assert.Contains(t, out, `"org_id": "org_01EHZNVPK3SFK441A1RGBFSHRT"`)
	assert.Contains(t, out, `"expired": true`)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workos:
  clientId: client_from_config
`), 0o600))

	out, err := run(t, nil, "--config", path, "sso", "authorize-url",
		"--redirect-uri", "https://your-app.com/callback",
		"--organization", "org_1")
	configPath = ""
	require.NoError(t, err)

	assert.Contains(t, out, "client_id=client_from_config")
}

func TestLogEvent(t *testing.T) {
	for _, wh := range []*webhooks.Webhook{
		{ID: "wh_1", Event: webhooks.DirectoryUserUpdated, Data: []byte(`{"id": "directory_user_1", "previous_attributes": {"title": "Engineer"}}`)},
		{ID: "wh_2", Event: "organization.updated", Data: []byte(`{}`)},
	} {
		assert.NoError(t, logEvent(context.Background(), wh))
	}

	err := logEvent(context.Background(), &webhooks.Webhook{ID: "wh_3", Event: webhooks.DirectoryDeleted, Data: []byte(`"nope"`)})
	assert.ErrorIs(t, err, webhooks.ErrMalformedPayload)
}

func TestDeliveriesList_NoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, nil, "deliveries", "list")
	assert.EqualError(t, err, "database source is not set")
}
