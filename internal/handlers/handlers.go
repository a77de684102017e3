package handlers

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"speccard-service/internal/brand"
	"speccard-service/internal/cache"
	"speccard-service/internal/layout"
	"speccard-service/internal/models"
	"speccard-service/internal/render"
	"speccard-service/internal/theme"
)

var startTime = time.Now()

// HealthCheck handles health check requests
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
	})
}

// GetCacheStats returns cache statistics
func GetCacheStats(c *fiber.Ctx) error {
	return c.JSON(cache.Stats())
}

// ClearCache flushes cached rasters and images
func ClearCache(c *fiber.Ctx) error {
	cache.Clear()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cache cleared",
	})
}

// ListBrands returns the brand vocabulary and theme presets for selection UIs
func ListBrands(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"brands": brand.AllKnownBrands(),
		"themes": theme.PresetNames(),
	})
}

// buildContext resolves theme colors, produces the QR/barcode rasters, and
// normalizes image sources, then assembles the builder's input. Asset
// failures degrade to omitted elements, never to request failures.
func buildContext(config models.ProductConfig, size models.CardSize, icons []models.BrandIcon) layout.Context {
	ctx := layout.Context{
		Config:     config,
		CardSize:   size,
		Colors:     theme.Resolve(config),
		BrandIcons: icons,
	}

	if config.VisualSettings.ShowQRCode && strings.TrimSpace(config.VisualSettings.QRCodeURL) != "" {
		if raster, err := cache.QRCode(config.VisualSettings.QRCodeURL, 512); err == nil {
			ctx.Assets.QRCode = raster
		}
	}
	if strings.TrimSpace(config.SKU) != "" {
		if raster, err := cache.Barcode(config.SKU); err == nil {
			ctx.Assets.Barcode = raster
		}
	}

	// Remote logo/product images become data URLs so the renderers never
	// perform I/O; unfetchable images drop out of the layout.
	if src := config.StoreLogo; src != "" && !strings.HasPrefix(src, "data:") {
		if resolved, err := cache.ResolveImage(src); err == nil {
			ctx.Config.StoreLogo = resolved
		} else {
			ctx.Config.StoreLogo = ""
		}
	}
	if src := config.VisualSettings.ProductImage; src != "" && !strings.HasPrefix(src, "data:") {
		if resolved, err := cache.ResolveImage(src); err == nil {
			ctx.Config.VisualSettings.ProductImage = resolved
		} else {
			ctx.Config.VisualSettings.ProductImage = ""
		}
	}

	return ctx
}

func emptyConfig(config models.ProductConfig) bool {
	return strings.TrimSpace(config.ModelName) == "" &&
		config.Price == 0 &&
		config.Components.Empty()
}

// BuildLayout returns the layout tree as JSON; this is the on-screen
// renderer's contract surface.
func BuildLayout(c *fiber.Ctx) error {
	var req models.CardRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if emptyConfig(req.Config) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Product config is required",
		})
	}

	result := layout.BuildCardLayout(buildContext(req.Config, req.CardSize, req.BrandIcons))
	return c.JSON(result)
}

// GeneratePDF builds the layout and renders it as a print-ready PDF
func GeneratePDF(c *fiber.Ctx) error {
	var req models.CardRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if emptyConfig(req.Config) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Product config is required",
		})
	}

	cardLayout := layout.BuildCardLayout(buildContext(req.Config, req.CardSize, req.BrandIcons))

	pdfBytes, err := render.NewPDFRenderer(cardLayout).Render()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to generate PDF",
			"details": err.Error(),
		})
	}

	name := strings.TrimSpace(req.Config.SKU)
	if name == "" {
		name = strings.TrimSpace(req.Config.ModelName)
	}
	if name == "" {
		name = "card"
	}
	filename := fmt.Sprintf("card_%s.pdf", sanitizeFilename(name))

	if c.Get("Accept") == "application/json" {
		return c.JSON(fiber.Map{
			"success":    true,
			"pdf_base64": base64.StdEncoding.EncodeToString(pdfBytes),
			"filename":   filename,
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", filename))
	return c.Send(pdfBytes)
}

// GeneratePDFBatch renders multiple cards concurrently
func GeneratePDFBatch(c *fiber.Ctx) error {
	var req models.BatchCardRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if len(req.Cards) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "No cards provided",
		})
	}

	if len(req.Cards) > 500 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Maximum 500 cards per batch",
		})
	}

	results := make([]models.CardResult, len(req.Cards))
	var wg sync.WaitGroup
	sem := make(chan struct{}, 50) // Limit concurrency to 50

	for i, item := range req.Cards {
		wg.Add(1)
		go func(idx int, card models.CardItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := models.CardResult{
				ID:        uuid.NewString(),
				ModelName: card.Config.ModelName,
				SKU:       card.Config.SKU,
			}

			cardLayout := layout.BuildCardLayout(buildContext(card.Config, card.CardSize, req.BrandIcons))

			pdfBytes, err := render.NewPDFRenderer(cardLayout).Render()
			if err != nil {
				result.Success = false
				result.Error = err.Error()
			} else {
				result.Success = true
				result.PDFBase64 = base64.StdEncoding.EncodeToString(pdfBytes)
			}

			results[idx] = result
		}(i, item)
	}

	wg.Wait()

	successCount := 0
	for _, r := range results {
		if r.Success {
			successCount++
		}
	}

	return c.JSON(models.BatchCardResponse{
		Success: successCount == len(results),
		Total:   len(results),
		Results: results,
	})
}

// PreloadAssets warms the image cache with logo/product image URLs
func PreloadAssets(c *fiber.Ctx) error {
	var req struct {
		Sources []string `json:"sources"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cached := cache.PreloadImages(req.Sources)

	return c.JSON(fiber.Map{
		"success":       true,
		"cached_assets": len(cached),
	})
}

// GenerateThumbnail returns a lightweight WebP preview of an image source,
// bounded to maxPx on the longest side. Remote sources are resolved through
// the image cache first.
func GenerateThumbnail(c *fiber.Ctx) error {
	var req struct {
		Source string `json:"source"`
		MaxPx  int    `json:"maxPx"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Source) == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Image source is required",
		})
	}

	if req.MaxPx <= 0 {
		req.MaxPx = 256
	}
	if req.MaxPx > 1024 {
		req.MaxPx = 1024
	}

	dataURL, err := cache.ResolveImage(req.Source)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Failed to resolve image source",
			"details": err.Error(),
		})
	}

	thumb, err := cache.Thumbnail(dataURL, req.MaxPx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to generate thumbnail",
			"details": err.Error(),
		})
	}

	c.Set("Content-Type", "image/webp")
	return c.Send(thumb)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
