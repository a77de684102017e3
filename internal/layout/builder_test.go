package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speccard-service/internal/assets"
	"speccard-service/internal/models"
)

func fullConfig() models.ProductConfig {
	return models.ProductConfig{
		ModelName: "Vortex X9",
		Price:     2499.99,
		Components: models.Components{
			CPU:         "Intel Core i9-14900K",
			GPU:         "NVIDIA GeForce RTX 4090",
			RAM:         "Corsair Vengeance 64GB DDR5",
			Storage:     "Samsung 990 Pro 2TB",
			Motherboard: "ASUS ROG Maximus Z790",
			PSU:         "Corsair RM1000x",
			Case:        "Lian Li O11 Dynamic",
			Cooling:     "NZXT Kraken 360",
		},
		StoreName:    "MicroForge",
		SKU:          "VX9-2024-001",
		OS:           "Windows 11 Pro",
		Warranty:     "3 Years",
		Connectivity: "WiFi 6E + BT 5.3",
		BuildTier:    "FLAGSHIP",
		Features:     []string{"Ray Tracing", "Liquid Cooled", "RGB", "Overclocked", "Quiet", "Compact"},
		Description:  "A no-compromise flagship build for 4K gaming and heavy creative work.",
		ColorTheme:   "steel",
		Condition:    "new",
		StockStatus:  "in-stock",
		SaleInfo:     models.SaleInfo{Enabled: true, OriginalPrice: 2999.99, BadgeText: "HOLIDAY SALE"},
		FinancingInfo: models.FinancingInfo{
			Enabled: true, Months: 24, APR: 9.99,
		},
	}
}

func elementsOfKind(l Layout, kind ElementKind) []Element {
	var out []Element
	for _, el := range l.Elements {
		if el.Kind() == kind {
			out = append(out, el)
		}
	}
	return out
}

func singleOfKind(t *testing.T, l Layout, kind ElementKind) Element {
	t.Helper()
	els := elementsOfKind(l, kind)
	require.Len(t, els, 1, "expected exactly one %s element", kind)
	return els[0]
}

func TestBuildDeterminism(t *testing.T) {
	ctx := Context{Config: fullConfig(), CardSize: models.CardSizePoster}

	first := BuildCardLayout(ctx)
	second := BuildCardLayout(ctx)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	require.Equal(t, len(first.Elements), len(second.Elements))
	for i := range first.Elements {
		assert.Equal(t, first.Elements[i].ID(), second.Elements[i].ID())
		assert.Equal(t, first.Elements[i].Kind(), second.Elements[i].Kind())
	}
}

func TestElementIDsAreSequentialFromOne(t *testing.T) {
	l := BuildCardLayout(Context{Config: fullConfig(), CardSize: models.CardSizePrice})
	require.NotEmpty(t, l.Elements)
	for i, el := range l.Elements {
		assert.Equal(t, i+1, el.ID())
	}
}

func TestDefaultTitle(t *testing.T) {
	for _, size := range []models.CardSize{models.CardSizeShelf, models.CardSizePrice, models.CardSizePoster} {
		l := BuildCardLayout(Context{Config: models.ProductConfig{Price: 100}, CardSize: size})
		var title *Text
		for _, el := range l.Elements {
			if txt, ok := el.(Text); ok && txt.Role == "title" {
				title = &txt
				break
			}
		}
		require.NotNil(t, title, "size %s", size)
		assert.Equal(t, DefaultModelName, title.Text, "size %s", size)
	}
}

func TestHeaderOmittedWithoutStoreName(t *testing.T) {
	cfg := fullConfig()
	cfg.StoreName = ""
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	assert.Empty(t, elementsOfKind(l, KindHeader))

	cfg.StoreName = "MicroForge"
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	header := singleOfKind(t, l, KindHeader).(Header)
	assert.Equal(t, "MicroForge", header.Text)
}

func TestSpecsCanonicalOrderAndOmission(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName: "Partial",
		Price:     999,
		Components: models.Components{
			Cooling: "NZXT Kraken",
			CPU:     "AMD Ryzen 7 7800X3D",
			Case:    "Fractal Design Meshify",
			RAM:     "32GB DDR5",
		},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	specs := singleOfKind(t, l, KindSpecs).(Specs)

	keys := make([]string, len(specs.Entries))
	for i, e := range specs.Entries {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"cpu", "ram", "case", "cooling"}, keys)
}

func TestShelfSpecsRestrictedToFirstFour(t *testing.T) {
	l := BuildCardLayout(Context{Config: fullConfig(), CardSize: models.CardSizeShelf})
	specs := singleOfKind(t, l, KindSpecs).(Specs)

	keys := make([]string, len(specs.Entries))
	for i, e := range specs.Entries {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"cpu", "gpu", "ram", "storage"}, keys)
	assert.Equal(t, 1, specs.Columns)
}

func TestSpecsOmittedWhenNoComponents(t *testing.T) {
	l := BuildCardLayout(Context{Config: models.ProductConfig{ModelName: "Bare", Price: 100}, CardSize: models.CardSizePoster})
	assert.Empty(t, elementsOfKind(l, KindSpecs))
}

func TestBrandIconAttachment(t *testing.T) {
	icons := []models.BrandIcon{{Name: "Intel", Image: "X"}}

	cfg := models.ProductConfig{
		ModelName:  "Icon Test",
		Price:      100,
		Components: models.Components{CPU: "Intel Core i9-14900K"},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice, BrandIcons: icons})
	specs := singleOfKind(t, l, KindSpecs).(Specs)
	require.Len(t, specs.Entries, 1)
	require.NotNil(t, specs.Entries[0].BrandIcon)
	assert.Equal(t, "Intel", specs.Entries[0].BrandIcon.Name)

	cfg.Components.CPU = "AMD Ryzen 9 7950X"
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice, BrandIcons: icons})
	specs = singleOfKind(t, l, KindSpecs).(Specs)
	require.Len(t, specs.Entries, 1)
	assert.Nil(t, specs.Entries[0].BrandIcon)
}

func TestFeatureCap(t *testing.T) {
	cfg := fullConfig() // six features
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})

	var featureRow *BadgeRow
	for _, el := range elementsOfKind(l, KindBadgeRow) {
		row := el.(BadgeRow)
		if row.Purpose == "features" {
			featureRow = &row
		}
	}
	require.NotNil(t, featureRow)
	require.Len(t, featureRow.Badges, 4)
	assert.Equal(t, "Ray Tracing", featureRow.Badges[0].Text)
	assert.Equal(t, "Liquid Cooled", featureRow.Badges[1].Text)
	assert.Equal(t, "RGB", featureRow.Badges[2].Text)
	assert.Equal(t, "Overclocked", featureRow.Badges[3].Text)

	// Poster allows six
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	for _, el := range elementsOfKind(l, KindBadgeRow) {
		row := el.(BadgeRow)
		if row.Purpose == "features" {
			assert.Len(t, row.Badges, 6)
		}
	}

	// Shelf shows none
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizeShelf})
	for _, el := range elementsOfKind(l, KindBadgeRow) {
		assert.NotEqual(t, "features", el.(BadgeRow).Purpose)
	}
}

func TestStatusBadgeComposition(t *testing.T) {
	cfg := fullConfig()
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})

	var statusRow *BadgeRow
	for _, el := range elementsOfKind(l, KindBadgeRow) {
		row := el.(BadgeRow)
		if row.Purpose == "status" {
			statusRow = &row
		}
	}
	require.NotNil(t, statusRow)
	require.Len(t, statusRow.Badges, 4)
	assert.Equal(t, "NEW", statusRow.Badges[0].Text)
	assert.Equal(t, "FLAGSHIP", statusRow.Badges[1].Text)
	assert.Contains(t, statusRow.Badges[2].Text, "HOLIDAY SALE")
	assert.Equal(t, "IN STOCK", statusRow.Badges[3].Text)
}

func TestShelfSuppressesStockBadge(t *testing.T) {
	cfg := fullConfig()
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizeShelf})
	for _, el := range elementsOfKind(l, KindBadgeRow) {
		for _, badge := range el.(BadgeRow).Badges {
			assert.NotEqual(t, "IN STOCK", badge.Text)
		}
	}
}

func TestBadgeRowOmittedWhenNoBadgesApply(t *testing.T) {
	cfg := models.ProductConfig{ModelName: "Plain", Price: 100}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	assert.Empty(t, elementsOfKind(l, KindBadgeRow))
}

func TestSaleBadgeIncludesDiscountPercent(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName: "Deal",
		Price:     800,
		SaleInfo:  models.SaleInfo{Enabled: true, OriginalPrice: 1000, BadgeText: "SALE"},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})

	row := singleOfKind(t, l, KindBadgeRow).(BadgeRow)
	require.Len(t, row.Badges, 1)
	assert.Contains(t, row.Badges[0].Text, "SALE")
	assert.Contains(t, row.Badges[0].Text, "20% OFF")
}

func TestPriceElementWithStrike(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName: "Strike",
		Price:     800,
		SaleInfo:  models.SaleInfo{Enabled: true, OriginalPrice: 1000},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	price := singleOfKind(t, l, KindPrice).(Price)
	assert.Equal(t, 800.0, price.CurrentPrice)
	assert.Equal(t, 1000.0, price.OriginalPrice)
	assert.Equal(t, "$800.00", price.Display)
	assert.Equal(t, "$1,000.00", price.StrikeDisplay)

	// Shelf price has no cents
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizeShelf})
	price = singleOfKind(t, l, KindPrice).(Price)
	assert.Equal(t, "$800", price.Display)
}

func TestPosterFinancingShowsAPR(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName:     "Finance Me",
		Price:         2000,
		FinancingInfo: models.FinancingInfo{Enabled: true, Months: 24, APR: 9.99},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	fin := singleOfKind(t, l, KindFinancing).(Financing)
	assert.Equal(t, 24, fin.Months)
	assert.Equal(t, 9.99, fin.APR)
	assert.True(t, fin.ShowAPR)
	assert.NotEmpty(t, fin.Monthly)

	// Price card carries the APR value but does not surface the text
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	fin = singleOfKind(t, l, KindFinancing).(Financing)
	assert.False(t, fin.ShowAPR)

	// Shelf tags omit financing entirely
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizeShelf})
	assert.Empty(t, elementsOfKind(l, KindFinancing))
}

func TestFinancingOmittedWithoutPrice(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName:     "Free?",
		FinancingInfo: models.FinancingInfo{Enabled: true, Months: 12, APR: 5},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	assert.Empty(t, elementsOfKind(l, KindFinancing))
}

func TestInfoBar(t *testing.T) {
	cfg := fullConfig()
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	bar := singleOfKind(t, l, KindInfoBar).(InfoBar)
	require.Len(t, bar.Entries, 3)
	assert.Equal(t, "OS", bar.Entries[0].Label)
	assert.Equal(t, "Warranty", bar.Entries[1].Label)
	assert.Equal(t, "Connectivity", bar.Entries[2].Label)

	// Partial fields keep order, drop empties
	cfg.Warranty = ""
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	bar = singleOfKind(t, l, KindInfoBar).(InfoBar)
	require.Len(t, bar.Entries, 2)
	assert.Equal(t, "OS", bar.Entries[0].Label)
	assert.Equal(t, "Connectivity", bar.Entries[1].Label)

	// Shelf has no info bar
	l = BuildCardLayout(Context{Config: fullConfig(), CardSize: models.CardSizeShelf})
	assert.Empty(t, elementsOfKind(l, KindInfoBar))
}

func TestAsyncAssetsGateElements(t *testing.T) {
	cfg := fullConfig()
	cfg.VisualSettings.ShowQRCode = true
	cfg.VisualSettings.QRCodeURL = "https://example.com/vx9"

	// Assets not ready: no qrcode/barcode elements
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	assert.Empty(t, elementsOfKind(l, KindQRCode))
	assert.Empty(t, elementsOfKind(l, KindBarcode))

	// Assets supplied: both appear
	ctx := Context{
		Config:   cfg,
		CardSize: models.CardSizePrice,
		Assets: AsyncAssets{
			QRCode:  "data:image/png;base64,QQ==",
			Barcode: "data:image/png;base64,QQ==",
		},
	}
	l = BuildCardLayout(ctx)
	qr := singleOfKind(t, l, KindQRCode).(QRCode)
	assert.Equal(t, "https://example.com/vx9", qr.URL)
	bc := singleOfKind(t, l, KindBarcode).(Barcode)
	assert.Equal(t, cfg.SKU, bc.SKU)

	// QR raster present but not requested: element omitted
	cfg.VisualSettings.ShowQRCode = false
	ctx.Config = cfg
	l = BuildCardLayout(ctx)
	assert.Empty(t, elementsOfKind(l, KindQRCode))
}

func TestSKUElement(t *testing.T) {
	l := BuildCardLayout(Context{Config: fullConfig(), CardSize: models.CardSizePrice})
	sku := singleOfKind(t, l, KindSKU).(SKU)
	assert.Contains(t, sku.Text, "VX9-2024-001")

	cfg := fullConfig()
	cfg.SKU = ""
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	assert.Empty(t, elementsOfKind(l, KindSKU))
}

func TestPosterOnlySections(t *testing.T) {
	cfg := fullConfig()

	poster := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePoster})
	var sectionHeader, description bool
	for _, el := range poster.Elements {
		if txt, ok := el.(Text); ok {
			if txt.Role == "section-header" {
				sectionHeader = true
				assert.Equal(t, SpecsHeaderText, txt.Text)
			}
			if txt.Role == "description" {
				description = true
			}
		}
	}
	assert.True(t, sectionHeader)
	assert.True(t, description)

	for _, size := range []models.CardSize{models.CardSizeShelf, models.CardSizePrice} {
		l := BuildCardLayout(Context{Config: cfg, CardSize: size})
		for _, el := range l.Elements {
			if txt, ok := el.(Text); ok {
				assert.NotEqual(t, "section-header", txt.Role, "size %s", size)
				assert.NotEqual(t, "description", txt.Role, "size %s", size)
			}
		}
	}
}

func TestUnknownSizeDispatchesToPriceCard(t *testing.T) {
	l := BuildCardLayout(Context{Config: fullConfig(), CardSize: models.CardSize("billboard")})
	assert.Equal(t, models.CardSizePrice, l.CardSize)
	assert.Equal(t, models.CardDimensions[models.CardSizePrice], l.Dimensions)
}

func TestShelfMinimalScenario(t *testing.T) {
	cfg := models.ProductConfig{
		ModelName:  "Budget Box",
		Price:      599,
		Components: models.Components{CPU: "AMD Ryzen 5 7600"},
	}
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizeShelf})

	assert.Empty(t, elementsOfKind(l, KindHeader))
	assert.Empty(t, elementsOfKind(l, KindFinancing))
	assert.Empty(t, elementsOfKind(l, KindInfoBar))
	assert.Empty(t, elementsOfKind(l, KindBadgeRow))

	var title *Text
	for _, el := range l.Elements {
		if txt, ok := el.(Text); ok && txt.Role == "title" {
			title = &txt
		}
	}
	require.NotNil(t, title)
	assert.Equal(t, "Budget Box", title.Text)

	price := singleOfKind(t, l, KindPrice).(Price)
	assert.Equal(t, 599.0, price.CurrentPrice)

	specs := singleOfKind(t, l, KindSpecs).(Specs)
	require.Len(t, specs.Entries, 1)
	assert.Equal(t, "cpu", specs.Entries[0].Key)
}

func TestColorsResolvedWhenCallerOmitsThem(t *testing.T) {
	cfg := fullConfig() // steel theme
	l := BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice})
	assert.Equal(t, "#2c3e50", l.Colors.Primary)

	// Pre-resolved colors pass through untouched
	custom := models.ThemeColors{Primary: "#010203", Accent: "#040506", PriceColor: "#070809"}
	l = BuildCardLayout(Context{Config: cfg, CardSize: models.CardSizePrice, Colors: custom})
	assert.Equal(t, custom, l.Colors)
}

func TestElementFramesStayOnCard(t *testing.T) {
	for _, size := range []models.CardSize{models.CardSizeShelf, models.CardSizePrice, models.CardSizePoster} {
		l := BuildCardLayout(Context{Config: fullConfig(), CardSize: size})
		for _, el := range l.Elements {
			f := el.Frame()
			assert.GreaterOrEqual(t, f.X, 0.0, "size %s element %d", size, el.ID())
			assert.GreaterOrEqual(t, f.Y, 0.0, "size %s element %d", size, el.ID())
			assert.LessOrEqual(t, f.X+f.Width, l.Dimensions.Width+1e-9, "size %s element %d", size, el.ID())
			assert.LessOrEqual(t, f.Y+f.Height, l.Dimensions.Height+1e-9, "size %s element %d", size, el.ID())
		}
	}
}

func TestFooterStripeHeightInLayout(t *testing.T) {
	for _, size := range []models.CardSize{models.CardSizeShelf, models.CardSizePrice, models.CardSizePoster} {
		l := BuildCardLayout(Context{Config: fullConfig(), CardSize: size})
		assert.Greater(t, l.FooterStripeHeight, 0.0, "size %s", size)
		assert.Equal(t, ConfigFor(size).Footer.StripeHeight, l.FooterStripeHeight, "size %s", size)
	}
}

func TestDenseConfigKeepsFooterClear(t *testing.T) {
	raster := "data:image/png;base64,QQ=="

	cfg := fullConfig()
	cfg.StoreLogo = raster
	cfg.VisualSettings.ShowQRCode = true
	cfg.VisualSettings.QRCodeURL = "https://example.com/vx9"
	cfg.VisualSettings.ProductImage = raster

	for _, size := range []models.CardSize{models.CardSizeShelf, models.CardSizePrice, models.CardSizePoster} {
		l := BuildCardLayout(Context{
			Config:   cfg,
			CardSize: size,
			Assets:   AsyncAssets{QRCode: assets.Raster(raster), Barcode: assets.Raster(raster)},
		})

		barcode := singleOfKind(t, l, KindBarcode).(Barcode)
		barcodeTop := barcode.Box.Y

		for _, el := range l.Elements {
			f := el.Frame()
			assert.GreaterOrEqual(t, f.Y, 0.0, "size %s element %d", size, el.ID())
			assert.LessOrEqual(t, f.Y+f.Height, l.Dimensions.Height+1e-9, "size %s element %d", size, el.ID())

			// Flowed media must stop above the bottom-anchored barcode
			switch el.Kind() {
			case KindImage, KindQRCode:
				if img, ok := el.(Image); ok && img.Purpose == "logo" {
					continue
				}
				assert.LessOrEqual(t, f.Y+f.Height, barcodeTop+1e-9, "size %s element %d overlaps barcode", size, el.ID())
			}
		}
	}
}
