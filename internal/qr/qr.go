// Package qr renders the join link as an inline QR image for the host
// screen.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// DataURL returns the URL encoded as a PNG QR code, wrapped in a data URL
// suitable for an <img> src.
func DataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
