package service

import (
	"github.com/skip2/go-qrcode"

	apperrors "github.com/allisson/stampd/internal/errors"
)

// DefaultQRCodeSize is the side length in pixels used when no size is configured.
const DefaultQRCodeSize = 256

// qrCodeRenderer implements QRCodeRenderer with medium error correction (about 15% recovery).
type qrCodeRenderer struct {
	size int
}

// NewQRCodeRenderer creates a renderer producing size x size PNG images.
func NewQRCodeRenderer(size int) QRCodeRenderer {
	if size <= 0 {
		size = DefaultQRCodeSize
	}
	return &qrCodeRenderer{size: size}
}

// Render encodes payload as a PNG QR code.
func (r *qrCodeRenderer) Render(payload string) ([]byte, error) {
	if payload == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "qr code payload is empty")
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, r.size)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode qr code")
	}
	return png, nil
}
