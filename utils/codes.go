package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// secureCode generates a secure random code of the specified length.
// It returns a base32 encoded string (without padding) truncated to the
// desired length, so codes are uppercase letters and digits only.
func secureCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// GenerateJoinCode produces a company join code. Codes are 6 characters,
// which keeps them typeable on a phone while leaving collisions to the
// unique index on the companies collection.
func GenerateJoinCode() (string, error) {
	return secureCode(6)
}

// GenerateVerificationToken produces the token embedded in registration
// verification emails.
func GenerateVerificationToken() (string, error) {
	return secureCode(32)
}
