// Package service provides the scan credential service used to authenticate businesses.
package service

// SecretService generates, hashes and verifies business scan secrets.
type SecretService interface {
	// GenerateSecret returns a new random scan secret and its hash.
	// The plain secret is shown to the business owner once and never stored.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}
