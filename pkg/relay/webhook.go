package relay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureTolerance is how far a webhook timestamp may drift from
// local time before verification fails.
const DefaultSignatureTolerance = 5 * time.Minute

// signingVersion is the signature scheme tag in the Relay-Signature header.
const signingVersion = "v1"

// ConstructEvent verifies a webhook payload against its Relay-Signature
// header and returns the parsed event resource. Verification failures are
// SignatureVerificationError.
func ConstructEvent(payload []byte, sigHeader, secret string) (*Resource, error) {
	return ConstructEventWithTolerance(payload, sigHeader, secret, DefaultSignatureTolerance)
}

// ConstructEventWithTolerance is ConstructEvent with an explicit timestamp
// tolerance window.
func ConstructEventWithTolerance(payload []byte, sigHeader, secret string, tolerance time.Duration) (*Resource, error) {
	if err := VerifySignature(payload, sigHeader, secret, tolerance, time.Now()); err != nil {
		return nil, err
	}

	return ResourceFromJSON(payload, "", "")
}

// VerifySignature checks the signature header against the payload without
// parsing the event. The now parameter exists so tests can pin the clock.
func VerifySignature(payload []byte, sigHeader, secret string, tolerance time.Duration, now time.Time) error {
	timestamp, signatures, err := parseSignatureHeader(sigHeader, payload)
	if err != nil {
		return err
	}

	if tolerance > 0 {
		drift := now.Sub(time.Unix(timestamp, 0))
		if drift > tolerance || drift < -tolerance {
			return &SignatureVerificationError{
				Message:   "webhook timestamp outside the tolerance window",
				SigHeader: sigHeader,
				Payload:   payload,
			}
		}
	}

	expected := ComputeSignature(timestamp, payload, secret)
	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return &SignatureVerificationError{
		Message:   "no signature found matching the expected signature for payload",
		SigHeader: sigHeader,
		Payload:   payload,
	}
}

// ComputeSignature produces the hex HMAC-SHA256 of "<timestamp>.<payload>".
func ComputeSignature(timestamp int64, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]".
func parseSignatureHeader(sigHeader string, payload []byte) (int64, []string, error) {
	var (
		timestamp  int64 = -1
		signatures []string
	)

	for _, part := range strings.Split(sigHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, &SignatureVerificationError{
					Message:   "unable to parse webhook timestamp",
					SigHeader: sigHeader,
					Payload:   payload,
				}
			}

			timestamp = parsed
		case signingVersion:
			signatures = append(signatures, value)
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, &SignatureVerificationError{
			Message:   "webhook signature header has an unexpected format",
			SigHeader: sigHeader,
			Payload:   payload,
		}
	}

	return timestamp, signatures, nil
}
