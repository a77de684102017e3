// Package cache keeps produced rasters and fetched images warm between
// builds. Everything lives in memory as raw bytes; there is no file I/O on
// the render path.
package cache

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"
	_ "golang.org/x/image/webp"

	"speccard-service/internal/assets"
)

var (
	// Produced QR/barcode rasters keyed by input string
	rasterCache *gocache.Cache

	// Fetched and normalized images keyed by URL
	imageCache *gocache.Cache

	// HTTP client with timeout
	httpClient *http.Client

	once sync.Once
)

func Init() {
	once.Do(func() {
		rasterCache = gocache.New(10*time.Minute, 20*time.Minute)
		imageCache = gocache.New(10*time.Minute, 20*time.Minute)

		transport := &http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 50,
			IdleConnTimeout:     90 * time.Second,
		}
		httpClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: transport,
		}
	})
}

// ============ RASTER PRODUCERS (CACHED) ============

// QRCode returns the cached QR raster for a URL, producing it on miss.
func QRCode(url string, sizePx int) (assets.Raster, error) {
	key := fmt.Sprintf("qr:%s:%d", url, sizePx)
	if cached, found := rasterCache.Get(key); found {
		return cached.(assets.Raster), nil
	}
	raster, err := assets.QRCode(url, sizePx)
	if err != nil {
		return "", err
	}
	if raster.Ready() {
		rasterCache.Set(key, raster, gocache.DefaultExpiration)
	}
	return raster, nil
}

// Barcode returns the cached Code 128 raster for a SKU, producing it on
// miss. Invalid SKUs yield an empty raster, which is not cached.
func Barcode(sku string) (assets.Raster, error) {
	key := "barcode:" + sku
	if cached, found := rasterCache.Get(key); found {
		return cached.(assets.Raster), nil
	}
	raster, err := assets.SKUBarcode(sku)
	if err != nil {
		return "", err
	}
	if raster.Ready() {
		rasterCache.Set(key, raster, gocache.DefaultExpiration)
	}
	return raster, nil
}

// ============ IMAGE FETCHING ============

// ResolveImage turns an image source into a normalized PNG data URL. Data
// URLs pass through untouched; http(s) sources are downloaded, decoded
// (WebP included), normalized, and cached.
func ResolveImage(source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("empty image source")
	}
	if strings.HasPrefix(source, "data:") {
		return source, nil
	}

	hash := md5.Sum([]byte(source))
	key := "img:" + hex.EncodeToString(hash[:])
	if cached, found := imageCache.Get(key); found {
		return cached.(string), nil
	}

	pngBytes, err := fetchAsPNG(source)
	if err != nil {
		return "", err
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	imageCache.Set(key, dataURL, gocache.DefaultExpiration)
	return dataURL, nil
}

// PreloadImages resolves multiple image sources concurrently. Failed sources
// are simply absent from the result.
func PreloadImages(sources []string) map[string]string {
	results := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, 20)

	for _, src := range sources {
		if src == "" {
			continue
		}
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			dataURL, err := ResolveImage(s)
			if err == nil {
				mu.Lock()
				results[s] = dataURL
				mu.Unlock()
			}
		}(src)
	}

	wg.Wait()
	return results
}

func fetchAsPNG(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Normalize to 8-bit NRGBA (gofpdf requirement)
	nrgba := imaging.Clone(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, nrgba, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ============ THUMBNAILS ============

// Thumbnail re-encodes an image data URL as a WebP thumbnail bounded to
// maxPx on the longest side, for lightweight preview payloads.
func Thumbnail(dataURL string, maxPx int) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("not a data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// ============ MANAGEMENT ============

// Clear flushes all cached rasters and images.
func Clear() {
	rasterCache.Flush()
	imageCache.Flush()
}

// Stats returns cache statistics.
func Stats() map[string]interface{} {
	return map[string]interface{}{
		"raster_items": rasterCache.ItemCount(),
		"image_items":  imageCache.ItemCount(),
	}
}
