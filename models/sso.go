package models

type ConnectionType string

const (
	ADFSSAML          ConnectionType = "ADFSSAML"
	ADPOIDC           ConnectionType = "ADPOIDC"
	Auth0SAML         ConnectionType = "Auth0SAML"
	AzureSAML         ConnectionType = "AzureSAML"
	CASSAML           ConnectionType = "CASSAML"
	ClassLinkSAML     ConnectionType = "ClassLinkSAML"
	CloudflareSAML    ConnectionType = "CloudflareSAML"
	CyberArkSAML      ConnectionType = "CyberArkSAML"
	DuoSAML           ConnectionType = "DuoSAML"
	GenericOIDC       ConnectionType = "GenericOIDC"
	GenericSAML       ConnectionType = "GenericSAML"
	GoogleOAuth       ConnectionType = "GoogleOAuth"
	GoogleSAML        ConnectionType = "GoogleSAML"
	JumpCloudSAML     ConnectionType = "JumpCloudSAML"
	KeycloakSAML      ConnectionType = "KeycloakSAML"
	MicrosoftOAuth    ConnectionType = "MicrosoftOAuth"
	MiniOrangeSAML    ConnectionType = "MiniOrangeSAML"
	NetIqSAML         ConnectionType = "NetIqSAML"
	OktaSAML          ConnectionType = "OktaSAML"
	OneLoginSAML      ConnectionType = "OneLoginSAML"
	OracleSAML        ConnectionType = "OracleSAML"
	PingFederateSAML  ConnectionType = "PingFederateSAML"
	PingOneSAML       ConnectionType = "PingOneSAML"
	SalesforceSAML    ConnectionType = "SalesforceSAML"
	ShibbolethSAML    ConnectionType = "ShibbolethSAML"
	SimpleSamlPhpSAML ConnectionType = "SimpleSamlPhpSAML"
	VMwareSAML        ConnectionType = "VMwareSAML"
)

func (t ConnectionType) IsKnown() bool {
	return isOneOf(t, ADFSSAML, ADPOIDC, Auth0SAML, AzureSAML, CASSAML,
		ClassLinkSAML, CloudflareSAML, CyberArkSAML, DuoSAML, GenericOIDC,
		GenericSAML, GoogleOAuth, GoogleSAML, JumpCloudSAML, KeycloakSAML,
		MicrosoftOAuth, MiniOrangeSAML, NetIqSAML, OktaSAML, OneLoginSAML,
		OracleSAML, PingFederateSAML, PingOneSAML, SalesforceSAML,
		ShibbolethSAML, SimpleSamlPhpSAML, VMwareSAML)
}

type ConnectionState string

const (
	ConnectionActive   ConnectionState = "active"
	ConnectionInactive ConnectionState = "inactive"
)

func (s ConnectionState) IsKnown() bool {
	return isOneOf(s, ConnectionActive, ConnectionInactive)
}

// Connection is an SSO connection between an organization and an identity provider.
type Connection struct {
	ID             string             `json:"id"`
	Object         string             `json:"object,omitempty"`
	OrganizationID string             `json:"organization_id,omitempty"`
	ConnectionType ConnectionType     `json:"connection_type"`
	Name           string             `json:"name"`
	State          ConnectionState    `json:"state"`
	Domains        []ConnectionDomain `json:"domains,omitempty"`
	Timestamps
}

type ConnectionDomain struct {
	ID     string `json:"id"`
	Object string `json:"object,omitempty"`
	Domain string `json:"domain"`
}

// Profile is the user profile returned by an SSO login.
type Profile struct {
	ID             string         `json:"id"`
	Object         string         `json:"object,omitempty"`
	ConnectionID   string         `json:"connection_id"`
	ConnectionType ConnectionType `json:"connection_type"`
	OrganizationID string         `json:"organization_id,omitempty"`
	IdpID          string         `json:"idp_id"`
	Email          string         `json:"email"`
	FirstName      string         `json:"first_name,omitempty"`
	LastName       string         `json:"last_name,omitempty"`
	RawAttributes  RawAttributes  `json:"raw_attributes,omitempty"`
}

type ProfileAndToken struct {
	AccessToken string  `json:"access_token"`
	Profile     Profile `json:"profile"`
}
