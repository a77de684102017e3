// Package assets produces the rasters the layout builder consumes as
// already-resolved input: QR codes from URLs and Code 128 barcodes from SKUs.
// The builder never awaits these; it receives a Raster that is either ready
// or empty.
package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

// MaxBarcodeLength is the longest SKU the barcode producer will encode.
// Longer SKUs produce no raster at all, which downstream treats the same as
// "not requested".
const MaxBarcodeLength = 32

const (
	qrMinPixels = 100
	qrMaxPixels = 1024

	barcodeWidthPx  = 400
	barcodeHeightPx = 120
)

// Raster is a rendered asset as a PNG data URL. The empty value is the
// first-class "not ready yet" state.
type Raster string

// Ready reports whether the raster has been produced.
func (r Raster) Ready() bool {
	return r != ""
}

// Bytes decodes the raster's PNG payload. Returns nil for an empty or
// malformed raster.
func (r Raster) Bytes() []byte {
	s := string(r)
	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return data
}

func toDataURL(pngBytes []byte) Raster {
	return Raster("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes))
}

// QRCode rasterizes the given URL as a QR code PNG at the requested pixel
// size, clamped to sane bounds. Empty input produces an empty raster.
func QRCode(url string, sizePx int) (Raster, error) {
	if strings.TrimSpace(url) == "" {
		return "", nil
	}
	if sizePx < qrMinPixels {
		sizePx = qrMinPixels
	}
	if sizePx > qrMaxPixels {
		sizePx = qrMaxPixels
	}
	pngBytes, err := qrcode.Encode(url, qrcode.Medium, sizePx)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return toDataURL(pngBytes), nil
}

// SKUBarcode rasterizes a SKU as a Code 128 barcode PNG. Invalid input
// (empty, too long, or unencodable) is signaled by an empty raster with no
// error: the card simply omits the barcode.
func SKUBarcode(sku string) (Raster, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" || len(sku) > MaxBarcodeLength {
		return "", nil
	}
	code, err := code128.Encode(sku)
	if err != nil {
		return "", nil
	}
	scaled, err := barcode.Scale(code, barcodeWidthPx, barcodeHeightPx)
	if err != nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to encode barcode PNG: %w", err)
	}
	return toDataURL(buf.Bytes()), nil
}
