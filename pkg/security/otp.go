package security

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

// GenerateOTP produces a zero-padded numeric code of the requested length
// using crypto/rand.
func GenerateOTP(digits int) (string, error) {
	if digits <= 0 || digits > 10 {
		return "", fmt.Errorf("invalid otp length %d", digits)
	}

	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

// CompareOTP reports whether the submitted code matches the stored one
// without leaking timing information.
func CompareOTP(stored, submitted string) bool {
	stored = strings.TrimSpace(stored)
	submitted = strings.TrimSpace(submitted)
	if stored == "" || len(stored) != len(submitted) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
