package cache

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNGDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestQRCodeCached(t *testing.T) {
	Init()
	Clear()

	first, err := QRCode("https://example.com/cached", 256)
	require.NoError(t, err)
	require.True(t, first.Ready())

	second, err := QRCode("https://example.com/cached", 256)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stats := Stats()
	assert.GreaterOrEqual(t, stats["raster_items"].(int), 1)
}

func TestBarcodeCached(t *testing.T) {
	Init()
	Clear()

	first, err := Barcode("SKU-123")
	require.NoError(t, err)
	require.True(t, first.Ready())

	second, err := Barcode("SKU-123")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBarcodeInvalidNotCached(t *testing.T) {
	Init()
	Clear()

	raster, err := Barcode("")
	require.NoError(t, err)
	assert.False(t, raster.Ready())
	assert.Equal(t, 0, Stats()["raster_items"].(int))
}

func TestResolveImagePassesThroughDataURLs(t *testing.T) {
	Init()
	src := testPNGDataURL(t, 8, 8)
	resolved, err := ResolveImage(src)
	require.NoError(t, err)
	assert.Equal(t, src, resolved)
}

func TestResolveImageRejectsEmpty(t *testing.T) {
	Init()
	_, err := ResolveImage("")
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	Init()
	src := testPNGDataURL(t, 256, 128)

	thumb, err := Thumbnail(src, 64)
	require.NoError(t, err)
	assert.NotEmpty(t, thumb)
	// WebP files start with the RIFF header
	assert.Equal(t, "RIFF", string(thumb[:4]))
}

func TestThumbnailRejectsNonDataURL(t *testing.T) {
	Init()
	_, err := Thumbnail("https://example.com/img.png", 64)
	assert.Error(t, err)
}
