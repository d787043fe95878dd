package workos

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePasswordlessSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/passwordless/sessions", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"type": "MagicLink", "email": "marcelina@foo-corp.com", "state": "abc"}`, string(body))

		writeJSON(w, http.StatusCreated, `{
		  "id": "passwordless_session_01EHDAK2BFGWCSZXP9HGZ3VK8C",
		  "email": "marcelina@foo-corp.com",
		  "expires_at": "2020-08-13T05:50:00.000Z",
		  "link": "https://auth.workos.com/passwordless/token/confirm",
		  "object": "passwordless_session"
		}`)
	})

	session, err := client.Passwordless().CreateSession(context.Background(), CreatePasswordlessSessionOpts{
		Email: "marcelina@foo-corp.com",
		State: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "passwordless_session_01EHDAK2BFGWCSZXP9HGZ3VK8C", session.ID)
	assert.Equal(t, "https://auth.workos.com/passwordless/token/confirm", session.Link)
	assert.Equal(t, 2020, session.ExpiresAt.Year())
}

func TestCreatePasswordlessSession_RequiresEmail(t *testing.T) {
	client := New(testAPIKey)

	_, err := client.Passwordless().CreateSession(context.Background(), CreatePasswordlessSessionOpts{})
	assert.ErrorContains(t, err, "email is required")
}

func TestSendPasswordlessSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/passwordless/sessions/passwordless_session_01EHDAK2BFGWCSZXP9HGZ3VK8C/send", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"success": true}`)
	})

	err := client.Passwordless().SendSession(context.Background(), "passwordless_session_01EHDAK2BFGWCSZXP9HGZ3VK8C")
	assert.NoError(t, err)
}

func TestGeneratePortalLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/portal/generate_link", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"organization": "org_01EHZNVPK3SFK441A1RGBFSHRT", "intent": "sso"}`, string(body))

		writeJSON(w, http.StatusCreated, `{"link": "https://id.workos.com/portal/launch?secret=secret"}`)
	})

	link, err := client.AdminPortal().GenerateLink(context.Background(), GenerateLinkOpts{
		Organization: "org_01EHZNVPK3SFK441A1RGBFSHRT",
		Intent:       models.IntentSSO,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://id.workos.com/portal/launch?secret=secret", link)
}

func TestGeneratePortalLink_WithReturnURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
		  "organization": "org_01EHZNVPK3SFK441A1RGBFSHRT",
		  "intent": "dsync",
		  "return_url": "https://foo-corp.com/settings"
		}`, string(body))
		writeJSON(w, http.StatusCreated, `{"link": "https://id.workos.com/portal/launch?secret=secret"}`)
	})

	_, err := client.AdminPortal().GenerateLink(context.Background(), GenerateLinkOpts{
		Organization: "org_01EHZNVPK3SFK441A1RGBFSHRT",
		Intent:       models.IntentDSync,
		ReturnURL:    "https://foo-corp.com/settings",
	})
	require.NoError(t, err)
}

func TestGeneratePortalLink_Validation(t *testing.T) {
	client := New(testAPIKey)

	_, err := client.AdminPortal().GenerateLink(context.Background(), GenerateLinkOpts{})
	assert.ErrorContains(t, err, "organization is required")
	assert.ErrorContains(t, err, "intent is required")
}
