package commands

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const trackingCodeAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

// generateTrackingCode builds a customer-facing tracking code such as
// DSP-20260828-K4QX7M. The alphabet omits easily confused characters.
func generateTrackingCode(now time.Time) (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(trackingCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate tracking code: %w", err)
		}
		suffix[i] = trackingCodeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("DSP-%s-%s", now.UTC().Format("20060102"), suffix), nil
}

// generateVerificationCode builds the six digit one-time handover code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
