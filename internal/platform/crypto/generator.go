// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphanumericChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureToken generates a cryptographically secure random
// alphanumeric string of the given length.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}
	result := make([]byte, length)
	charSetLength := big.NewInt(int64(len(alphanumericChars)))
	for i := range result {
		randomIndex, err := rand.Int(rand.Reader, charSetLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		result[i] = alphanumericChars[randomIndex.Int64()]
	}
	return string(result), nil
}

// GenerateNumericCode generates a cryptographically secure numeric code
// of the given length, e.g. a 6-digit email verification code.
// Leading zeros are allowed.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	digits := make([]byte, length)
	ten := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
