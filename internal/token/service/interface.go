// Package service provides collaborators of the token registry that live outside the store.
package service

// QRCodeRenderer renders a token payload into an image.
type QRCodeRenderer interface {
	// Render returns the PNG encoding of a QR code carrying payload.
	Render(payload string) ([]byte, error)
}
