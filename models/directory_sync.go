package models

import (
	"encoding/json"
	"fmt"
)

// DirectoryType is the identity provider a directory syncs from.
type DirectoryType string

const (
	AzureSCIMv2_0        DirectoryType = "azure scim v2.0"
	BambooHR             DirectoryType = "bamboohr"
	BreatheHR            DirectoryType = "breathe hr"
	CyberArkSCIMv2_0     DirectoryType = "cyberark scim v2.0"
	GenericSCIMv1_1      DirectoryType = "generic scim v1.1"
	GenericSCIMv2_0      DirectoryType = "generic scim v2.0"
	GoogleWorkspace      DirectoryType = "gsuite directory"
	Hibob                DirectoryType = "hibob"
	JumpCloudSCIMv2_0    DirectoryType = "jump cloud scim v2.0"
	OktaSCIMv1_1         DirectoryType = "okta scim v1.1"
	OktaSCIMv2_0         DirectoryType = "okta scim v2.0"
	OneLoginSCIMv2_0     DirectoryType = "onelogin scim v2.0"
	PeopleHR             DirectoryType = "people hr"
	PingFederateSCIMv2_0 DirectoryType = "pingfederate scim v2.0"
	Rippling             DirectoryType = "rippling"
	Workday              DirectoryType = "workday"
)

func (t DirectoryType) IsKnown() bool {
	return isOneOf(t, AzureSCIMv2_0, BambooHR, BreatheHR, CyberArkSCIMv2_0,
		GenericSCIMv1_1, GenericSCIMv2_0, GoogleWorkspace, Hibob,
		JumpCloudSCIMv2_0, OktaSCIMv1_1, OktaSCIMv2_0, OneLoginSCIMv2_0,
		PeopleHR, PingFederateSCIMv2_0, Rippling, Workday)
}

type DirectoryState string

const (
	DirectoryActive   DirectoryState = "active"
	DirectoryInactive DirectoryState = "inactive"
	DirectoryDeleting DirectoryState = "deleting"
)

func (s DirectoryState) IsKnown() bool {
	return isOneOf(s, DirectoryActive, DirectoryInactive, DirectoryDeleting)
}

type Directory struct {
	ID             string         `json:"id"`
	Object         string         `json:"object,omitempty"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Domain         string         `json:"domain,omitempty"`
	Type           DirectoryType  `json:"type"`
	State          DirectoryState `json:"state"`
	Name           string         `json:"name"`
	Timestamps
}

type DirectoryUserState string

const (
	DirectoryUserActive    DirectoryUserState = "active"
	DirectoryUserInactive  DirectoryUserState = "inactive"
	DirectoryUserSuspended DirectoryUserState = "suspended"
)

func (s DirectoryUserState) IsKnown() bool {
	return isOneOf(s, DirectoryUserActive, DirectoryUserInactive, DirectoryUserSuspended)
}

type DirectoryUserEmail struct {
	Primary *bool  `json:"primary,omitempty"`
	Type    string `json:"type,omitempty"`
	Value   string `json:"value,omitempty"`
}

// DirectoryUser is a user provisioned through directory sync.
type DirectoryUser struct {
	ID               string               `json:"id"`
	Object           string               `json:"object,omitempty"`
	IdpID            string               `json:"idp_id"`
	DirectoryID      string               `json:"directory_id"`
	OrganizationID   string               `json:"organization_id,omitempty"`
	Username         string               `json:"username,omitempty"`
	Emails           []DirectoryUserEmail `json:"emails"`
	FirstName        string               `json:"first_name,omitempty"`
	LastName         string               `json:"last_name,omitempty"`
	JobTitle         string               `json:"job_title,omitempty"`
	State            DirectoryUserState   `json:"state"`
	Groups           []DirectoryGroup     `json:"groups,omitempty"`
	CustomAttributes map[string]any       `json:"custom_attributes"`
	RawAttributes    RawAttributes        `json:"raw_attributes"`
	Timestamps
}

// PrimaryEmail returns the first email marked as primary.
func (u DirectoryUser) PrimaryEmail() (DirectoryUserEmail, bool) {
	for _, e := range u.Emails {
		if e.Primary != nil && *e.Primary {
			return e, true
		}
	}
	return DirectoryUserEmail{}, false
}

// DecodeCustomAttributes decodes the custom attribute map into v, which
// must be a pointer to a struct tagged with the attribute names.
func (u DirectoryUser) DecodeCustomAttributes(v any) error {
	b, err := json.Marshal(u.CustomAttributes)
	if err != nil {
		return fmt.Errorf("failed to encode custom attributes: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode custom attributes: %w", err)
	}
	return nil
}

type DirectoryGroup struct {
	ID             string        `json:"id"`
	Object         string        `json:"object,omitempty"`
	IdpID          string        `json:"idp_id"`
	DirectoryID    string        `json:"directory_id"`
	OrganizationID string        `json:"organization_id,omitempty"`
	Name           string        `json:"name"`
	RawAttributes  RawAttributes `json:"raw_attributes,omitempty"`
	Timestamps
}
