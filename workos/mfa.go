package workos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/hashicorp/go-multierror"
)

// MFAService groups the multi-factor authentication endpoints.
type MFAService struct {
	client *Client
}

// EnrollFactorOpts enrolls a TOTP factor (TOTPIssuer and TOTPUser) or an
// SMS factor (PhoneNumber).
type EnrollFactorOpts struct {
	Type        models.FactorType `json:"type"`
	TOTPIssuer  string            `json:"totp_issuer,omitempty"`
	TOTPUser    string            `json:"totp_user,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty"`
}

func (o EnrollFactorOpts) validate() error {
	var result *multierror.Error
	switch o.Type {
	case models.FactorTOTP:
		if o.TOTPIssuer == "" {
			result = multierror.Append(result, errors.New("totp issuer is required"))
		}
		if o.TOTPUser == "" {
			result = multierror.Append(result, errors.New("totp user is required"))
		}
		if o.PhoneNumber != "" {
			result = multierror.Append(result, errors.New("phone number is only valid for sms factors"))
		}
	case models.FactorSMS:
		if o.PhoneNumber == "" {
			result = multierror.Append(result, errors.New("phone number is required"))
		}
		if o.TOTPIssuer != "" || o.TOTPUser != "" {
			result = multierror.Append(result, errors.New("totp issuer and user are only valid for totp factors"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported factor type %q", o.Type))
	}
	return invalid("enroll factor", result)
}

// EnrollFactor enrolls a new authentication factor. A phone number the API
// rejects yields ErrInvalidPhoneNumber.
func (s *MFAService) EnrollFactor(ctx context.Context, opts EnrollFactorOpts) (*models.AuthenticationFactor, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var factor models.AuthenticationFactor
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/factors/enroll",
		json:   opts,
	}, &factor)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnprocessableEntity &&
			httpErr.Code == "invalid_phone_number" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPhoneNumber, httpErr.Message)
		}
		return nil, err
	}
	return &factor, nil
}

// ChallengeFactorOpts challenges an enrolled factor. SMSTemplate is only
// used for SMS factors and must contain {{code}}.
type ChallengeFactorOpts struct {
	FactorID    string `json:"-"`
	SMSTemplate string `json:"sms_template,omitempty"`
}

func (s *MFAService) ChallengeFactor(ctx context.Context, opts ChallengeFactorOpts) (*models.AuthenticationChallenge, error) {
	if err := requireID("challenge factor", "authentication factor id", opts.FactorID); err != nil {
		return nil, err
	}

	var challenge models.AuthenticationChallenge
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   resourcePath("/auth/factors", opts.FactorID) + "/challenge",
		json:   opts,
	}, &challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

type VerifyChallengeOpts struct {
	ChallengeID string `json:"authentication_challenge_id"`
	Code        string `json:"code"`
}

func (o VerifyChallengeOpts) validate() error {
	var result *multierror.Error
	if o.ChallengeID == "" {
		result = multierror.Append(result, errors.New("authentication challenge id is required"))
	}
	if o.Code == "" {
		result = multierror.Append(result, errors.New("code is required"))
	}
	return invalid("verify challenge", result)
}

// VerifyChallenge checks the code a user entered for a challenge. An
// incorrect code is not an error: the response reports Valid false.
func (s *MFAService) VerifyChallenge(ctx context.Context, opts VerifyChallengeOpts) (*models.VerifyChallengeResponse, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var resp models.VerifyChallengeResponse
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/factors/verify",
		json:   opts,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyFactor is the previous name of VerifyChallenge.
//
// Deprecated: use VerifyChallenge.
func (s *MFAService) VerifyFactor(ctx context.Context, opts VerifyChallengeOpts) (*models.VerifyChallengeResponse, error) {
	return s.VerifyChallenge(ctx, opts)
}

func (s *MFAService) GetFactor(ctx context.Context, id string) (*models.AuthenticationFactor, error) {
	if err := requireID("get factor", "authentication factor id", id); err != nil {
		return nil, err
	}

	var factor models.AuthenticationFactor
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("/auth/factors", id),
	}, &factor)
	if err != nil {
		return nil, err
	}
	return &factor, nil
}

func (s *MFAService) DeleteFactor(ctx context.Context, id string) error {
	if err := requireID("delete factor", "authentication factor id", id); err != nil {
		return err
	}

	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("/auth/factors", id),
	}, nil)
}
