package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the timestamp and signature of a delivery.
const SignatureHeader = "WorkOS-Signature"

const DefaultTolerance = 3 * time.Minute

var (
	ErrInvalidHeader    = errors.New("invalid signature header")
	ErrInvalidSignature = errors.New("signature does not match payload")
	ErrTimestampExpired = errors.New("signature timestamp outside tolerance")
	ErrMissingSecret    = errors.New("webhook secret is required")
)

// Verifier checks WorkOS-Signature headers against the endpoint secret.
type Verifier struct {
	Secret string
	// Tolerance bounds the age of a delivery; zero means DefaultTolerance.
	Tolerance time.Duration
}

// Verify checks header against payload at time now. The header has the
// form "t=<unix millis>, v1=<hex hmac-sha256 of t.payload>".
func (v Verifier) Verify(header string, payload []byte, now time.Time) error {
	if v.Secret == "" {
		return ErrMissingSecret
	}

	ts, sig, err := parseHeader(header)
	if err != nil {
		return err
	}

	tolerance := v.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	sent := time.UnixMilli(ts)
	if now.Sub(sent) > tolerance || sent.Sub(now) > tolerance {
		return ErrTimestampExpired
	}

	expected := Sign(v.Secret, ts, payload)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the hex signature of payload sent at the given unix
// millisecond timestamp.
func Sign(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Header formats a signature header for payload.
func Header(secret string, at time.Time, payload []byte) string {
	ts := at.UnixMilli()
	return fmt.Sprintf("t=%d, v1=%s", ts, Sign(secret, ts, payload))
}

func parseHeader(header string) (int64, string, error) {
	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return 0, "", ErrInvalidHeader
	}

	n, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: bad timestamp %q", ErrInvalidHeader, ts)
	}
	return n, strings.ToLower(sig), nil
}

// ConstructEvent verifies a delivery and parses it.
func ConstructEvent(payload []byte, header, secret string) (*Webhook, error) {
	if err := (Verifier{Secret: secret}).Verify(header, payload, time.Now()); err != nil {
		return nil, err
	}
	return Parse(payload)
}
