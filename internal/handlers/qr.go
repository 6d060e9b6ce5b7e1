package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/skip2/go-qrcode"
)

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// QRHandler renders QR codes as PNG images.
type QRHandler struct{}

func NewQRHandler() *QRHandler {
	return &QRHandler{}
}

func (h *QRHandler) Render(_ context.Context, req *QRRequest) (*QRResponse, error) {
	level, ok := recoveryLevels[req.Level]
	if !ok {
		level = qrcode.Medium
	}

	png, err := qrcode.Encode(req.Content, level, req.Size)
	if err != nil {
		return nil, huma.Error400BadRequest("Content too long for the selected recovery level")
	}

	return &QRResponse{
		ContentType:  "image/png",
		CacheControl: "public, max-age=86400",
		Body:         png,
	}, nil
}
