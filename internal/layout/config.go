package layout

import (
	"fmt"

	"speccard-service/internal/models"
)

// FontSizes holds the point size for every text role on a card.
type FontSizes struct {
	StoreName    float64 `json:"storeName"`
	ModelName    float64 `json:"modelName"`
	Price        float64 `json:"price"`
	StrikePrice  float64 `json:"strikePrice"`
	SpecLabel    float64 `json:"specLabel"`
	SpecValue    float64 `json:"specValue"`
	SKU          float64 `json:"sku"`
	Financing    float64 `json:"financing"`
	FeatureBadge float64 `json:"featureBadge"`
	Description  float64 `json:"description"`
	InfoLabel    float64 `json:"infoLabel"`
	InfoValue    float64 `json:"infoValue"`
}

// Spacing holds the vertical rhythm constants, in inches.
type Spacing struct {
	SectionGap float64 `json:"sectionGap"`
	LineHeight float64 `json:"lineHeight"`
	BadgeGap   float64 `json:"badgeGap"` // gap after a badge row, tighter than SectionGap
	AfterTitle float64 `json:"afterTitle"`
	AfterPrice float64 `json:"afterPrice"`
}

// BadgeGeometry sizes a row of chips (status badges or feature tags).
type BadgeGeometry struct {
	FontSize float64 `json:"fontSize"`
	PadX     float64 `json:"padX"`
	PadY     float64 `json:"padY"`
	Radius   float64 `json:"radius"`
	Gap      float64 `json:"gap"`
}

// HeaderGeometry sizes the store-name bar and its accent stripe.
type HeaderGeometry struct {
	Height       float64 `json:"height"`
	FontSize     float64 `json:"fontSize"`
	StripeHeight float64 `json:"stripeHeight"`
}

// PriceGeometry styles the price section.
type PriceGeometry struct {
	FontSize   float64 `json:"fontSize"`
	StrikeSize float64 `json:"strikeSize"`
	WithCents  bool    `json:"withCents"`
	ShowBox    bool    `json:"showBox"`
	BoxHeight  float64 `json:"boxHeight"`
	BoxRadius  float64 `json:"boxRadius"`
}

// SpecsGeometry sizes the component list section.
type SpecsGeometry struct {
	Columns        int     `json:"columns"`
	IconSize       float64 `json:"iconSize"`
	ColumnGap      float64 `json:"columnGap"`
	LineHeight     float64 `json:"lineHeight"`
	SectionHeight  float64 `json:"sectionHeight"`
	AccentBarWidth float64 `json:"accentBarWidth"`
	Padding        float64 `json:"padding"`
}

// InfoBarGeometry sizes the OS/warranty/connectivity band.
type InfoBarGeometry struct {
	Height        float64 `json:"height"`
	LabelFontSize float64 `json:"labelFontSize"`
	ValueFontSize float64 `json:"valueFontSize"`
}

// FooterGeometry anchors the barcode, SKU, and accent stripes to the card
// bottom.
type FooterGeometry struct {
	BarcodeWidth  float64 `json:"barcodeWidth"`
	BarcodeHeight float64 `json:"barcodeHeight"`
	SKUFontSize   float64 `json:"skuFontSize"`
	BottomOffset  float64 `json:"bottomOffset"`
	StripeHeight  float64 `json:"stripeHeight"`
}

// LayoutConfig is the single source of truth for what differs between card
// sizes. Builders consult it exclusively; a new card size is added with one
// record here plus one builder, never by branching inside existing builders.
type LayoutConfig struct {
	Margin           float64         `json:"margin"`
	Fonts            FontSizes       `json:"fonts"`
	Spacing          Spacing         `json:"spacing"`
	Badge            BadgeGeometry   `json:"badge"`
	FeatureBadge     BadgeGeometry   `json:"featureBadge"`
	Header           HeaderGeometry  `json:"header"`
	Price            PriceGeometry   `json:"price"`
	Specs            SpecsGeometry   `json:"specs"`
	InfoBar          InfoBarGeometry `json:"infoBar"`
	Footer           FooterGeometry  `json:"footer"`
	QRSize           float64         `json:"qrSize"`
	ProductImageSize float64         `json:"productImageSize"`
	LogoMaxHeight    float64         `json:"logoMaxHeight"`
	ShowStockBadge   bool            `json:"showStockBadge"`
	MaxFeatures      int             `json:"maxFeatures"`
	MaxSpecs         int             `json:"maxSpecs"`
	ShowInfoBar      bool            `json:"showInfoBar"`
	ShowFinancing    bool            `json:"showFinancing"`
	ShowAPRText      bool            `json:"showAprText"`
	ShowDescription  bool            `json:"showDescription"`
	ShowSpecsHeader  bool            `json:"showSpecsHeader"`
}

// layoutConfigs parameterizes the three closed card sizes. Geometry is in
// inches, font sizes in points.
var layoutConfigs = map[models.CardSize]LayoutConfig{
	models.CardSizeShelf: {
		Margin: 0.1,
		Fonts: FontSizes{
			StoreName: 8, ModelName: 11, Price: 20, StrikePrice: 9,
			SpecLabel: 5.5, SpecValue: 6.5, SKU: 5, Financing: 6,
			FeatureBadge: 5, Description: 6, InfoLabel: 5, InfoValue: 6,
		},
		Spacing: Spacing{
			SectionGap: 0.06, LineHeight: 0.13, BadgeGap: 0.04,
			AfterTitle: 0.05, AfterPrice: 0.08,
		},
		Badge:        BadgeGeometry{FontSize: 5, PadX: 0.04, PadY: 0.02, Radius: 0.03, Gap: 0.04},
		FeatureBadge: BadgeGeometry{FontSize: 5, PadX: 0.04, PadY: 0.02, Radius: 0.03, Gap: 0.04},
		Header:       HeaderGeometry{Height: 0.28, FontSize: 8, StripeHeight: 0.02},
		Price:        PriceGeometry{FontSize: 20, StrikeSize: 9, WithCents: false, ShowBox: false},
		Specs: SpecsGeometry{
			Columns: 1, IconSize: 0.1, ColumnGap: 0, LineHeight: 0.16,
			SectionHeight: 0.72, AccentBarWidth: 0.025, Padding: 0.05,
		},
		InfoBar: InfoBarGeometry{Height: 0.2, LabelFontSize: 5, ValueFontSize: 6},
		Footer: FooterGeometry{
			BarcodeWidth: 1.1, BarcodeHeight: 0.28, SKUFontSize: 5,
			BottomOffset: 0.12, StripeHeight: 0.02,
		},
		QRSize:           0.45,
		ProductImageSize: 0.5,
		LogoMaxHeight:    0.25,
		ShowStockBadge:   false,
		MaxFeatures:      0,
		MaxSpecs:         4,
		ShowInfoBar:      false,
		ShowFinancing:    false,
		ShowAPRText:      false,
		ShowDescription:  false,
		ShowSpecsHeader:  false,
	},
	models.CardSizePrice: {
		Margin: 0.2,
		Fonts: FontSizes{
			StoreName: 13, ModelName: 18, Price: 34, StrikePrice: 14,
			SpecLabel: 7.5, SpecValue: 9, SKU: 7, Financing: 9.5,
			FeatureBadge: 7.5, Description: 9, InfoLabel: 7, InfoValue: 8.5,
		},
		Spacing: Spacing{
			SectionGap: 0.12, LineHeight: 0.2, BadgeGap: 0.06,
			AfterTitle: 0.08, AfterPrice: 0.14,
		},
		Badge:        BadgeGeometry{FontSize: 7, PadX: 0.07, PadY: 0.035, Radius: 0.05, Gap: 0.06},
		FeatureBadge: BadgeGeometry{FontSize: 7.5, PadX: 0.08, PadY: 0.04, Radius: 0.06, Gap: 0.06},
		Header:       HeaderGeometry{Height: 0.45, FontSize: 13, StripeHeight: 0.035},
		Price:        PriceGeometry{FontSize: 34, StrikeSize: 14, WithCents: true, ShowBox: true, BoxHeight: 0.62, BoxRadius: 0.06},
		Specs: SpecsGeometry{
			Columns: 2, IconSize: 0.14, ColumnGap: 0.12, LineHeight: 0.26,
			SectionHeight: 1.2, AccentBarWidth: 0.035, Padding: 0.08,
		},
		InfoBar: InfoBarGeometry{Height: 0.32, LabelFontSize: 7, ValueFontSize: 8.5},
		Footer: FooterGeometry{
			BarcodeWidth: 1.6, BarcodeHeight: 0.4, SKUFontSize: 7,
			BottomOffset: 0.2, StripeHeight: 0.03,
		},
		QRSize:           0.8,
		ProductImageSize: 1.0,
		LogoMaxHeight:    0.4,
		ShowStockBadge:   true,
		MaxFeatures:      4,
		MaxSpecs:         8,
		ShowInfoBar:      true,
		ShowFinancing:    true,
		ShowAPRText:      false,
		ShowDescription:  false,
		ShowSpecsHeader:  false,
	},
	models.CardSizePoster: {
		Margin: 0.5,
		Fonts: FontSizes{
			StoreName: 26, ModelName: 40, Price: 72, StrikePrice: 28,
			SpecLabel: 13, SpecValue: 16, SKU: 12, Financing: 18,
			FeatureBadge: 14, Description: 14, InfoLabel: 12, InfoValue: 15,
		},
		Spacing: Spacing{
			SectionGap: 0.25, LineHeight: 0.4, BadgeGap: 0.1,
			AfterTitle: 0.18, AfterPrice: 0.3,
		},
		Badge:        BadgeGeometry{FontSize: 13, PadX: 0.14, PadY: 0.07, Radius: 0.1, Gap: 0.12},
		FeatureBadge: BadgeGeometry{FontSize: 14, PadX: 0.16, PadY: 0.08, Radius: 0.12, Gap: 0.12},
		Header:       HeaderGeometry{Height: 0.95, FontSize: 26, StripeHeight: 0.07},
		Price:        PriceGeometry{FontSize: 72, StrikeSize: 28, WithCents: true, ShowBox: true, BoxHeight: 1.3, BoxRadius: 0.12},
		Specs: SpecsGeometry{
			Columns: 2, IconSize: 0.28, ColumnGap: 0.3, LineHeight: 0.5,
			SectionHeight: 2.4, AccentBarWidth: 0.07, Padding: 0.16,
		},
		InfoBar: InfoBarGeometry{Height: 0.6, LabelFontSize: 12, ValueFontSize: 15},
		Footer: FooterGeometry{
			BarcodeWidth: 2.6, BarcodeHeight: 0.65, SKUFontSize: 12,
			BottomOffset: 0.4, StripeHeight: 0.06,
		},
		QRSize:           1.5,
		ProductImageSize: 2.2,
		LogoMaxHeight:    0.8,
		ShowStockBadge:   true,
		MaxFeatures:      6,
		MaxSpecs:         8,
		ShowInfoBar:      true,
		ShowFinancing:    true,
		ShowAPRText:      true,
		ShowDescription:  true,
		ShowSpecsHeader:  true,
	},
}

// ConfigFor returns the layout configuration for a card size, defaulting to
// the price card for unrecognized sizes.
func ConfigFor(size models.CardSize) LayoutConfig {
	if cfg, ok := layoutConfigs[size]; ok {
		return cfg
	}
	return layoutConfigs[models.CardSizePrice]
}

// ValidateConfigs checks every size table for the fields a builder depends
// on, so a newly added card size cannot silently omit required geometry.
// Exercised by tests and callable at startup.
func ValidateConfigs() error {
	for size, cfg := range layoutConfigs {
		if _, ok := models.CardDimensions[size]; !ok {
			return fmt.Errorf("layout config %q has no physical dimensions", size)
		}
		checks := map[string]float64{
			"margin":              cfg.Margin,
			"fonts.storeName":     cfg.Fonts.StoreName,
			"fonts.modelName":     cfg.Fonts.ModelName,
			"fonts.price":         cfg.Fonts.Price,
			"fonts.strikePrice":   cfg.Fonts.StrikePrice,
			"fonts.specLabel":     cfg.Fonts.SpecLabel,
			"fonts.specValue":     cfg.Fonts.SpecValue,
			"fonts.sku":           cfg.Fonts.SKU,
			"fonts.financing":     cfg.Fonts.Financing,
			"fonts.featureBadge":  cfg.Fonts.FeatureBadge,
			"fonts.description":   cfg.Fonts.Description,
			"fonts.infoLabel":     cfg.Fonts.InfoLabel,
			"fonts.infoValue":     cfg.Fonts.InfoValue,
			"spacing.sectionGap":  cfg.Spacing.SectionGap,
			"spacing.lineHeight":  cfg.Spacing.LineHeight,
			"spacing.badgeGap":    cfg.Spacing.BadgeGap,
			"badge.fontSize":      cfg.Badge.FontSize,
			"header.height":       cfg.Header.Height,
			"header.fontSize":     cfg.Header.FontSize,
			"price.fontSize":      cfg.Price.FontSize,
			"specs.lineHeight":    cfg.Specs.LineHeight,
			"specs.sectionHeight": cfg.Specs.SectionHeight,
			"footer.barcodeWidth": cfg.Footer.BarcodeWidth,
			"footer.skuFontSize":  cfg.Footer.SKUFontSize,
			"footer.stripeHeight": cfg.Footer.StripeHeight,
			"qrSize":              cfg.QRSize,
			"logoMaxHeight":       cfg.LogoMaxHeight,
		}
		for field, v := range checks {
			if v <= 0 {
				return fmt.Errorf("layout config %q: %s must be positive", size, field)
			}
		}
		if cfg.Specs.Columns < 1 {
			return fmt.Errorf("layout config %q: specs.columns must be at least 1", size)
		}
		if cfg.MaxSpecs < 1 || cfg.MaxSpecs > len(models.ComponentKeys) {
			return fmt.Errorf("layout config %q: maxSpecs out of range", size)
		}
		if cfg.MaxFeatures < 0 {
			return fmt.Errorf("layout config %q: maxFeatures must not be negative", size)
		}
		if cfg.ShowInfoBar && cfg.InfoBar.Height <= 0 {
			return fmt.Errorf("layout config %q: info bar enabled without geometry", size)
		}
		if cfg.Price.ShowBox && cfg.Price.BoxHeight <= 0 {
			return fmt.Errorf("layout config %q: price box enabled without height", size)
		}
	}
	return nil
}
