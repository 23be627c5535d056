package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyClientSecret is returned when hashing an empty secret.
var ErrEmptyClientSecret = errors.New("client secret must not be empty")

// HashClientSecret hashes an API client secret with bcrypt for storage in API_CLIENTS.
func HashClientSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptyClientSecret
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckClientSecret compares a plaintext client secret with its bcrypt hash.
func CheckClientSecret(secret, hash string) bool {
	if secret == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
