package webhooks

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directoryUserUpdated = `{
  "id": "wh_08FKJ843CVE8F7BXQSPFH0M53V",
  "event": "dsync.user.updated",
  "data": {
    "object": "directory_user",
    "directory_id": "directory_01E1X194NTJ3PYMAY79DYV0F0P",
    "id": "directory_user_01E1X1B89NH8Z3SDFJR4H7RGX7",
    "idp_id": "8931",
    "first_name": "Veda",
    "last_name": "Block",
    "username": "veda@example.com",
    "emails": [{"type": "work", "value": "veda@example.com", "primary": true}],
    "state": "suspended",
    "created_at": "2021-06-25T19:07:33.155Z",
    "updated_at": "2021-06-25T19:07:33.155Z",
    "raw_attributes": {"idp_id": "8931"},
    "custom_attributes": {"department": "Engineering"},
    "previous_attributes": {"lastName": "Cube"}
  }
}`

func TestParseAndDecode_DirectoryUserUpdated(t *testing.T) {
	wh, err := Parse([]byte(directoryUserUpdated))
	require.NoError(t, err)
	assert.Equal(t, "wh_08FKJ843CVE8F7BXQSPFH0M53V", wh.ID)
	assert.Equal(t, DirectoryUserUpdated, wh.Event)

	event, err := wh.Decode()
	require.NoError(t, err)

	updated, ok := event.(*DirectoryUserUpdatedEvent)
	require.True(t, ok, "unexpected event type %T", event)
	assert.Equal(t, "directory_user_01E1X1B89NH8Z3SDFJR4H7RGX7", updated.ID)
	assert.Equal(t, models.DirectoryUserSuspended, updated.State)
	assert.Equal(t, "Engineering", updated.CustomAttributes["department"])
	assert.Equal(t, map[string]any{"lastName": "Cube"}, updated.PreviousAttributes)
	assert.Equal(t, 2021, updated.CreatedAt.Year())
}

func TestParse_CreatedAt(t *testing.T) {
	wh, err := Parse([]byte(`{
  "id": "wh_01FKJ843CVE8F7BXQSPFH0M53V",
  "event": "connection.deleted",
  "data": {"object": "connection", "id": "conn_01E4ZCR3C56J083X43JQXF3JK5"},
  "created_at": "2024-03-01T12:00:00.000Z"
}`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), wh.CreatedAt)

	wh, err = Parse([]byte(directoryUserUpdated))
	require.NoError(t, err)
	assert.True(t, wh.CreatedAt.IsZero())
}

func TestDecode_Events(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		check func(t *testing.T, v any)
	}{
		{
			name:  "directory activated",
			event: DirectoryActivated,
			data: `{
			  "object": "directory",
			  "name": "Foo Corp's Directory",
			  "organization_id": "org_01EZTR6WYX1A0DSE2CYMGXQ24Y",
			  "id": "directory_01EHWNC0FCBHZ3BJ7EGKYXK0E6",
			  "state": "active",
			  "type": "generic scim v2.0",
			  "created_at": "2021-06-25T19:07:33.155Z",
			  "updated_at": "2021-06-25T19:07:33.155Z"
			}`,
			check: func(t *testing.T, v any) {
				dir := v.(*DirectoryEvent)
				assert.Equal(t, models.GenericSCIMv2_0, dir.Type)
				assert.Equal(t, models.DirectoryActive, dir.State)
			},
		},
		{
			name:  "connection deleted",
			event: ConnectionDeleted,
			data: `{
			  "object": "connection",
			  "id": "conn_01E4ZCR3C56J083X43JQXF3JK5",
			  "organization_id": "org_01EHWNCE74X7JSDV0X3SZ3KJNY",
			  "connection_type": "GoogleOAuth",
			  "name": "Foo Corp",
			  "state": "inactive",
			  "created_at": "2021-06-25T19:07:33.155Z",
			  "updated_at": "2021-06-25T19:07:33.155Z"
			}`,
			check: func(t *testing.T, v any) {
				conn := v.(*ConnectionEvent)
				assert.Equal(t, models.GoogleOAuth, conn.ConnectionType)
				assert.Equal(t, "org_01EHWNCE74X7JSDV0X3SZ3KJNY", conn.OrganizationID)
			},
		},
		{
			name:  "group user removed",
			event: DirectoryGroupUserRemoved,
			data: `{
			  "directory_id": "directory_01ECAZ4NV9QMV47GW873HDCX74",
			  "user": {
			    "id": "directory_user_01E1X56GH84T3FB41SD6PZGDBX",
			    "directory_id": "directory_01ECAZ4NV9QMV47GW873HDCX74",
			    "idp_id": "2936",
			    "emails": [],
			    "state": "active",
			    "created_at": "2021-06-25T19:07:33.155Z",
			    "updated_at": "2021-06-25T19:07:33.155Z"
			  },
			  "group": {
			    "id": "directory_group_01E1X5GPMMXF4T1DCERMVEEPVW",
			    "directory_id": "directory_01ECAZ4NV9QMV47GW873HDCX74",
			    "idp_id": "02grqrue4294w24",
			    "name": "Developers",
			    "created_at": "2021-06-25T19:07:33.155Z",
			    "updated_at": "2021-06-25T19:07:33.155Z"
			  }
			}`,
			check: func(t *testing.T, v any) {
				m := v.(*DirectoryGroupMembershipEvent)
				assert.Equal(t, "directory_01ECAZ4NV9QMV47GW873HDCX74", m.DirectoryID)
				assert.Equal(t, "2936", m.User.IdpID)
				assert.Equal(t, "Developers", m.Group.Name)
			},
		},
		{
			name:  "unknown event",
			event: "organization.created",
			data:  `{"id": "org_1"}`,
			check: func(t *testing.T, v any) {
				u := v.(*UnknownEvent)
				assert.Equal(t, "organization.created", u.Event)
				assert.JSONEq(t, `{"id": "org_1"}`, string(u.Data))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wh := &Webhook{ID: "wh_1", Event: tt.event, Data: []byte(tt.data)}
			v, err := wh.Decode()
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"id": "wh_1"`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = Parse([]byte(`{"data": {}}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	wh := &Webhook{ID: "wh_1", Event: DirectoryUserCreated, Data: []byte(`[]`)}
	_, err = wh.Decode()
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestVerify(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(directoryUserUpdated)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v := Verifier{Secret: secret}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Verify(Header(secret, now.Add(-time.Minute), payload), payload, now))
	})

	t.Run("uppercase hex", func(t *testing.T) {
		ts := now.UnixMilli()
		header := "t=" + strconv.FormatInt(ts, 10) + ",v1=" + strings.ToUpper(Sign(secret, ts, payload))
		assert.NoError(t, v.Verify(header, payload, now))
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := v.Verify(Header("whsec_other", now, payload), payload, now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		err := v.Verify(Header(secret, now, payload), append(payload, ' '), now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		err := v.Verify(Header(secret, now.Add(-4*time.Minute), payload), payload, now)
		assert.ErrorIs(t, err, ErrTimestampExpired)
	})

	t.Run("custom tolerance", func(t *testing.T) {
		lenient := Verifier{Secret: secret, Tolerance: 10 * time.Minute}
		assert.NoError(t, lenient.Verify(Header(secret, now.Add(-4*time.Minute), payload), payload, now))
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{"", "v1=abc", "t=123", "t=abc, v1=def"} {
			assert.ErrorIs(t, v.Verify(header, payload, now), ErrInvalidHeader, header)
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		assert.ErrorIs(t, Verifier{}.Verify(Header(secret, now, payload), payload, now), ErrMissingSecret)
	})
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(directoryUserUpdated)

	wh, err := ConstructEvent(payload, Header("whsec_test", time.Now(), payload), "whsec_test")
	require.NoError(t, err)
	assert.Equal(t, DirectoryUserUpdated, wh.Event)

	_, err = ConstructEvent(payload, Header("whsec_other", time.Now(), payload), "whsec_test")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
