// Package webhooks receives webhook deliveries from WorkOS.
//
// A delivery is verified with a Verifier before it is trusted, then parsed
// into a Webhook whose payload can be decoded into one of the typed events
// below.
package webhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EO-DataHub/workos-go/models"
)

// Event names delivered by WorkOS.
const (
	ConnectionActivated   = "connection.activated"
	ConnectionDeactivated = "connection.deactivated"
	ConnectionDeleted     = "connection.deleted"

	DirectoryActivated   = "dsync.activated"
	DirectoryDeactivated = "dsync.deactivated"
	DirectoryDeleted     = "dsync.deleted"

	DirectoryUserCreated = "dsync.user.created"
	DirectoryUserUpdated = "dsync.user.updated"
	DirectoryUserDeleted = "dsync.user.deleted"

	DirectoryGroupCreated     = "dsync.group.created"
	DirectoryGroupUpdated     = "dsync.group.updated"
	DirectoryGroupDeleted     = "dsync.group.deleted"
	DirectoryGroupUserAdded   = "dsync.group.user_added"
	DirectoryGroupUserRemoved = "dsync.group.user_removed"
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// Webhook is a single delivery. Data holds the event payload undecoded.
type Webhook struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// Parse decodes the envelope of a webhook payload.
func Parse(payload []byte) (*Webhook, error) {
	var wh Webhook
	if err := json.Unmarshal(payload, &wh); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if wh.ID == "" || wh.Event == "" {
		return nil, fmt.Errorf("%w: id and event are required", ErrMalformedPayload)
	}
	return &wh, nil
}

type ConnectionEvent struct {
	models.Connection
}

type DirectoryEvent struct {
	models.Directory
}

type DirectoryUserEvent struct {
	models.DirectoryUser
}

// DirectoryUserUpdatedEvent carries the previous value of every attribute
// that changed.
type DirectoryUserUpdatedEvent struct {
	models.DirectoryUser
	PreviousAttributes map[string]any `json:"previous_attributes"`
}

type DirectoryGroupEvent struct {
	models.DirectoryGroup
}

type DirectoryGroupMembershipEvent struct {
	DirectoryID string                `json:"directory_id"`
	User        models.DirectoryUser  `json:"user"`
	Group       models.DirectoryGroup `json:"group"`
}

// UnknownEvent is returned for events this package does not model.
type UnknownEvent struct {
	Event string
	Data  json.RawMessage
}

// Decode returns the typed payload for the webhook's event. The concrete
// type is a pointer to one of the *Event types of this package.
func (w *Webhook) Decode() (any, error) {
	var v any
	switch w.Event {
	case ConnectionActivated, ConnectionDeactivated, ConnectionDeleted:
		v = &ConnectionEvent{}
	case DirectoryActivated, DirectoryDeactivated, DirectoryDeleted:
		v = &DirectoryEvent{}
	case DirectoryUserCreated, DirectoryUserDeleted:
		v = &DirectoryUserEvent{}
	case DirectoryUserUpdated:
		v = &DirectoryUserUpdatedEvent{}
	case DirectoryGroupCreated, DirectoryGroupUpdated, DirectoryGroupDeleted:
		v = &DirectoryGroupEvent{}
	case DirectoryGroupUserAdded, DirectoryGroupUserRemoved:
		v = &DirectoryGroupMembershipEvent{}
	default:
		return &UnknownEvent{Event: w.Event, Data: w.Data}, nil
	}

	if err := json.Unmarshal(w.Data, v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, w.Event, err)
	}
	return v, nil
}
