package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/stampd/internal/errors"
)

const (
	// SecretPrefix marks scan secrets so they are recognisable in logs and config files.
	SecretPrefix = "scn_"

	secretBytes = 32
)

// secretService implements SecretService with Argon2id hashes.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateSecret creates a prefixed 32 byte random secret and its Argon2id hash.
func (s *secretService) GenerateSecret() (string, string, error) {
	randomBytes := make([]byte, secretBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate scan secret")
	}

	plainSecret := SecretPrefix + base64.RawURLEncoding.EncodeToString(randomBytes)

	hashedSecret, err := s.HashSecret(plainSecret)
	if err != nil {
		return "", "", err
	}
	return plainSecret, hashedSecret, nil
}

// HashSecret hashes a plain scan secret using Argon2id.
func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash scan secret")
	}
	return hashedSecret, nil
}

// CompareSecret verifies a plain scan secret against its hash.
// Malformed hashes never match.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	if plainSecret == "" || hashedSecret == "" {
		return false
	}
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// NewSecretService creates a SecretService using the pwdhash Moderate policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// Only reachable with an invalid built-in policy.
		panic(err)
	}

	return &secretService{
		hasher: hasher,
	}
}
