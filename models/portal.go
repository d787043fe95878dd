package models

import "time"

// PasswordlessSession is a magic link session.
type PasswordlessSession struct {
	ID        string    `json:"id"`
	Object    string    `json:"object,omitempty"`
	Email     string    `json:"email"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

type PortalIntent string

const (
	IntentSSO                PortalIntent = "sso"
	IntentDSync              PortalIntent = "dsync"
	IntentAuditLogs          PortalIntent = "audit_logs"
	IntentLogStreams         PortalIntent = "log_streams"
	IntentDomainVerification PortalIntent = "domain_verification"
)

func (i PortalIntent) IsKnown() bool {
	return isOneOf(i, IntentSSO, IntentDSync, IntentAuditLogs, IntentLogStreams, IntentDomainVerification)
}
