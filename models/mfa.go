package models

import "time"

type FactorType string

const (
	FactorTOTP FactorType = "totp"
	FactorSMS  FactorType = "sms"
)

func (t FactorType) IsKnown() bool {
	return isOneOf(t, FactorTOTP, FactorSMS)
}

// AuthenticationFactor is an enrolled MFA factor. Exactly one of TOTP or
// SMS is set, matching Type.
type AuthenticationFactor struct {
	ID     string      `json:"id"`
	Object string      `json:"object,omitempty"`
	Type   FactorType  `json:"type"`
	UserID string      `json:"user_id,omitempty"`
	TOTP   *TOTPFactor `json:"totp,omitempty"`
	SMS    *SMSFactor  `json:"sms,omitempty"`
	Timestamps
}

type TOTPFactor struct {
	Issuer string `json:"issuer,omitempty"`
	User   string `json:"user,omitempty"`
	QRCode string `json:"qr_code,omitempty"`
	Secret string `json:"secret,omitempty"`
	URI    string `json:"uri,omitempty"`
}

type SMSFactor struct {
	PhoneNumber string `json:"phone_number"`
}

type AuthenticationChallenge struct {
	ID                     string     `json:"id"`
	Object                 string     `json:"object,omitempty"`
	AuthenticationFactorID string     `json:"authentication_factor_id"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	Code                   string     `json:"code,omitempty"`
	Timestamps
}

type VerifyChallengeResponse struct {
	Challenge AuthenticationChallenge `json:"challenge"`
	Valid     bool                    `json:"valid"`
}
