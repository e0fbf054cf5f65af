package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders share links as QR codes.
type QRService struct {
	baseURL string // public gallery origin, e.g. "https://pixmora.app/i/"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateShareQR returns a PNG QR code pointing at the public page of a
// shared image.
func (s *QRService) GenerateShareQR(imageID string, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", s.baseURL, imageID)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
