package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Verifier checks identity-provider webhook signatures: HMAC-SHA256 over
// "{id}.{timestamp}.{body}" with a shared secret, carried base64-encoded in
// the signature header as one or more space-separated "v1,<sig>" entries.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
}

const secretPrefix = "whsec_"

func NewVerifier(signingSecret string, tolerance time.Duration) (*Verifier, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(signingSecret), secretPrefix)
	if trimmed == "" {
		return nil, fmt.Errorf("webhook signing secret is required")
	}

	secret, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decode webhook signing secret: %w", err)
	}

	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}

	return &Verifier{secret: secret, tolerance: tolerance}, nil
}

// Verify validates the signature headers against the raw request body.
func (v *Verifier) Verify(msgID, timestamp, signatures string, body []byte) error {
	return v.verifyAt(msgID, timestamp, signatures, body, time.Now())
}

func (v *Verifier) verifyAt(msgID, timestamp, signatures string, body []byte, now time.Time) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return fmt.Errorf("missing signature headers")
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}

	sent := time.Unix(unix, 0)
	skew := now.Sub(sent)
	if skew < 0 {
		skew = -skew
	}
	if skew > v.tolerance {
		return fmt.Errorf("timestamp outside tolerance")
	}

	expected := v.sign(msgID, timestamp, body)

	for _, entry := range strings.Fields(signatures) {
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		provided, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			continue
		}
		if hmac.Equal(provided, expected) {
			return nil
		}
	}

	return fmt.Errorf("no matching signature")
}

func (v *Verifier) sign(msgID, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

// Sign produces a valid signature header value for the given message. Used by
// tests and local tooling.
func (v *Verifier) Sign(msgID, timestamp string, body []byte) string {
	return "v1," + base64.StdEncoding.EncodeToString(v.sign(msgID, timestamp, body))
}
