// Package layout turns a product configuration and a target card size into a
// fully positioned, themed element list consumed identically by the screen
// preview and the PDF exporter. Builders are pure and total: missing optional
// fields suppress elements, malformed numbers degrade to zero, and nothing
// here ever fails a render outright.
package layout

import (
	"fmt"
	"strings"

	"speccard-service/internal/assets"
	"speccard-service/internal/brand"
	"speccard-service/internal/models"
	"speccard-service/internal/money"
	"speccard-service/internal/theme"
)

// DefaultModelName is rendered when the config has no model name; a card
// never shows a blank title.
const DefaultModelName = "PC Build"

// SpecsHeaderText is the poster-only section header above the spec block.
const SpecsHeaderText = "SPECIFICATIONS"

const badgeTextColor = "#ffffff"

// AsyncAssets carries the already-resolved rasters from the asynchronous
// producers. An empty raster means the asset was not requested or is not
// ready; either way the element is omitted from this build.
type AsyncAssets struct {
	QRCode  assets.Raster `json:"qrCodeImage,omitempty"`
	Barcode assets.Raster `json:"barcodeImage,omitempty"`
}

// Context is the builder's complete input. Colors are expected pre-resolved
// by the caller; a zero triple is tolerated and resolved from the config.
type Context struct {
	Config     models.ProductConfig `json:"config"`
	CardSize   models.CardSize      `json:"cardSize"`
	Colors     models.ThemeColors   `json:"colors"`
	BrandIcons []models.BrandIcon   `json:"brandIcons,omitempty"`
	Assets     AsyncAssets          `json:"asyncData"`
}

// BuildCardLayout dispatches to the builder for the requested card size,
// defaulting to the price card for unrecognized sizes. Each call owns a
// fresh ID sequence, so identical inputs reproduce identical element IDs.
func BuildCardLayout(ctx Context) Layout {
	seq := newIDSequence()
	switch ctx.CardSize {
	case models.CardSizeShelf:
		return buildShelfLayout(ctx, seq)
	case models.CardSizePoster:
		return buildPosterLayout(ctx, seq)
	default:
		return buildPriceCardLayout(ctx, seq)
	}
}

// cardBuilder accumulates elements top to bottom with a vertical flow
// cursor; footer elements anchor from the card bottom instead.
type cardBuilder struct {
	cfg      LayoutConfig
	ctx      Context
	colors   models.ThemeColors
	dims     models.Dimensions
	seq      *idSequence
	cursor   float64
	elements []Element
}

func newCardBuilder(size models.CardSize, ctx Context, seq *idSequence) *cardBuilder {
	colors := ctx.Colors
	if colors == (models.ThemeColors{}) {
		colors = theme.Resolve(ctx.Config)
	}
	cfg := ConfigFor(size)
	return &cardBuilder{
		cfg:    cfg,
		ctx:    ctx,
		colors: colors,
		dims:   models.CardDimensions[size],
		seq:    seq,
		cursor: cfg.Margin,
	}
}

func (b *cardBuilder) finish(size models.CardSize) Layout {
	return Layout{
		CardSize:           size,
		Dimensions:         b.dims,
		Colors:             b.colors,
		FontFamily:         theme.ResolveFontFamily(b.ctx.Config.VisualSettings),
		Background:         theme.ResolveBackground(b.ctx.Config.VisualSettings),
		FooterStripeHeight: b.cfg.Footer.StripeHeight,
		Elements:           b.elements,
	}
}

func (b *cardBuilder) contentWidth() float64 {
	return b.dims.Width - 2*b.cfg.Margin
}

func (b *cardBuilder) newBase(kind ElementKind, frame Frame) base {
	return base{ElemID: b.seq.Next(), ElemKind: kind, Box: frame}
}

// flowFrame reserves a full-width band at the cursor and advances it.
func (b *cardBuilder) flowFrame(height, gapAfter float64) Frame {
	f := Frame{X: b.cfg.Margin, Y: b.cursor, Width: b.contentWidth(), Height: height}
	b.cursor += height + gapAfter
	return f
}

// footerTop is the Y where the bottom-anchored footer region begins. Flow
// content that would cross it is clamped or omitted.
func (b *cardBuilder) footerTop() float64 {
	top := b.dims.Height - b.cfg.Footer.BottomOffset
	if b.ctx.Assets.Barcode.Ready() {
		top -= b.cfg.Footer.BarcodeHeight
	}
	return top
}

// addHeader emits the store-name bar. No store name, no header element.
func (b *cardBuilder) addHeader() {
	name := strings.TrimSpace(b.ctx.Config.StoreName)
	if name == "" {
		return
	}
	h := b.cfg.Header
	frame := Frame{X: 0, Y: 0, Width: b.dims.Width, Height: h.Height}
	b.cursor = h.Height + h.StripeHeight + b.cfg.Spacing.SectionGap
	b.elements = append(b.elements, Header{
		base:         b.newBase(KindHeader, frame),
		Text:         name,
		FontSize:     h.FontSize,
		StripeHeight: h.StripeHeight,
	})
}

// addLogo emits the store logo capped to the size's max height, centered.
func (b *cardBuilder) addLogo() {
	logo := strings.TrimSpace(b.ctx.Config.StoreLogo)
	if logo == "" {
		return
	}
	h := b.cfg.LogoMaxHeight
	w := h * 2 // frame is wide; renderers preserve the source aspect inside it
	frame := Frame{X: (b.dims.Width - w) / 2, Y: b.cursor, Width: w, Height: h}
	b.cursor += h + b.cfg.Spacing.SectionGap
	b.elements = append(b.elements, Image{
		base:    b.newBase(KindImage, frame),
		Source:  logo,
		Purpose: "logo",
	})
}

// addTitle emits the model name, defaulting to DefaultModelName.
func (b *cardBuilder) addTitle() {
	title := strings.TrimSpace(b.ctx.Config.ModelName)
	if title == "" {
		title = DefaultModelName
	}
	frame := b.flowFrame(b.cfg.Spacing.LineHeight*1.4, b.cfg.Spacing.AfterTitle)
	b.elements = append(b.elements, Text{
		base:     b.newBase(KindText, frame),
		Text:     title,
		Role:     "title",
		FontSize: b.cfg.Fonts.ModelName,
		Bold:     true,
		Align:    "center",
		Color:    b.colors.Primary,
	})
}

// addStatusBadges composes the condition/tier/sale/stock badge row in that
// fixed order. The row is omitted entirely when no badge applies.
func (b *cardBuilder) addStatusBadges() {
	cfg := b.ctx.Config
	var badges []Badge

	if label, ok := models.ConditionLabels[cfg.Condition]; ok {
		badges = append(badges, Badge{Text: label, Background: b.colors.Accent, TextColor: badgeTextColor})
	}
	if tier := strings.TrimSpace(cfg.BuildTier); tier != "" {
		badges = append(badges, Badge{Text: tier, Background: b.colors.Primary, TextColor: badgeTextColor})
	}
	if cfg.SaleInfo.Enabled {
		text := strings.TrimSpace(cfg.SaleInfo.BadgeText)
		if text == "" {
			text = "SALE"
		}
		if pct := money.DiscountPercent(cfg.SaleInfo.OriginalPrice, cfg.Price); pct > 0 {
			text = fmt.Sprintf("%s %d%% OFF", text, pct)
		}
		badges = append(badges, Badge{Text: text, Background: b.colors.PriceColor, TextColor: badgeTextColor})
	}
	if b.cfg.ShowStockBadge {
		if label, ok := models.StockStatusLabels[cfg.StockStatus]; ok {
			badges = append(badges, Badge{Text: label, Background: b.colors.Accent, TextColor: badgeTextColor})
		}
	}

	if len(badges) == 0 {
		return
	}
	b.addBadgeRow("status", badges, b.cfg.Badge)
}

// addFeatureBadges emits up to MaxFeatures feature tags, silently truncating
// the rest.
func (b *cardBuilder) addFeatureBadges() {
	features := b.ctx.Config.Features
	if len(features) == 0 || b.cfg.MaxFeatures == 0 {
		return
	}
	if len(features) > b.cfg.MaxFeatures {
		features = features[:b.cfg.MaxFeatures]
	}
	badges := make([]Badge, 0, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		badges = append(badges, Badge{Text: f, Background: b.colors.Accent, TextColor: badgeTextColor})
	}
	if len(badges) == 0 {
		return
	}
	b.addBadgeRow("features", badges, b.cfg.FeatureBadge)
}

func (b *cardBuilder) addBadgeRow(purpose string, badges []Badge, geo BadgeGeometry) {
	rowHeight := geo.FontSize/72 + 2*geo.PadY
	frame := b.flowFrame(rowHeight, b.cfg.Spacing.BadgeGap)
	b.elements = append(b.elements, BadgeRow{
		base:     b.newBase(KindBadgeRow, frame),
		Purpose:  purpose,
		Badges:   badges,
		FontSize: geo.FontSize,
		PadX:     geo.PadX,
		PadY:     geo.PadY,
		Radius:   geo.Radius,
		Gap:      geo.Gap,
	})
}

// addPrice emits the price section with the struck-through original when the
// sale is enabled and an original price is known.
func (b *cardBuilder) addPrice() {
	cfg := b.ctx.Config
	p := b.cfg.Price

	height := p.FontSize / 72 * 1.25
	if p.ShowBox {
		height = p.BoxHeight
	}
	frame := b.flowFrame(height, b.cfg.Spacing.AfterPrice)

	el := Price{
		base:         b.newBase(KindPrice, frame),
		CurrentPrice: cfg.Price,
		Display:      money.FormatCurrency(cfg.Price, p.WithCents),
		FontSize:     p.FontSize,
		ShowBox:      p.ShowBox,
		BoxRadius:    p.BoxRadius,
	}
	if cfg.SaleInfo.Enabled && cfg.SaleInfo.OriginalPrice > 0 {
		el.OriginalPrice = cfg.SaleInfo.OriginalPrice
		el.StrikeDisplay = money.FormatCurrency(cfg.SaleInfo.OriginalPrice, p.WithCents)
		el.StrikeSize = p.StrikeSize
	}
	b.elements = append(b.elements, el)
}

// addFinancing emits the monthly-payment line when financing is enabled and
// there is a price to finance. APR text only surfaces where the size's
// template asks for it.
func (b *cardBuilder) addFinancing() {
	cfg := b.ctx.Config
	if !b.cfg.ShowFinancing || !cfg.FinancingInfo.Enabled || cfg.Price <= 0 {
		return
	}
	monthly := money.MonthlyPayment(cfg.Price, cfg.FinancingInfo.Months, cfg.FinancingInfo.APR)
	if monthly == "" {
		return
	}
	frame := b.flowFrame(b.cfg.Spacing.LineHeight, b.cfg.Spacing.SectionGap)
	b.elements = append(b.elements, Financing{
		base:     b.newBase(KindFinancing, frame),
		Monthly:  monthly,
		Months:   cfg.FinancingInfo.Months,
		APR:      cfg.FinancingInfo.APR,
		ShowAPR:  b.cfg.ShowAPRText && cfg.FinancingInfo.APR > 0,
		FontSize: b.cfg.Fonts.Financing,
	})
}

// addSpecsHeader emits the literal section header above the spec block on
// sizes that use one.
func (b *cardBuilder) addSpecsHeader() {
	if !b.cfg.ShowSpecsHeader {
		return
	}
	if b.ctx.Config.Components.Empty() {
		return
	}
	frame := b.flowFrame(b.cfg.Spacing.LineHeight, b.cfg.Spacing.SectionGap/2)
	b.elements = append(b.elements, Text{
		base:     b.newBase(KindText, frame),
		Text:     SpecsHeaderText,
		Role:     "section-header",
		FontSize: b.cfg.Fonts.SpecLabel * 1.3,
		Bold:     true,
		Align:    "left",
		Color:    b.colors.Accent,
	})
}

// addSpecs emits one entry per non-empty component in canonical order,
// restricted to the size's MaxSpecs. Detected brands with uploaded icons are
// attached; missing either yields a plain entry.
func (b *cardBuilder) addSpecs() {
	cfg := b.ctx.Config
	keys := models.ComponentKeys
	if b.cfg.MaxSpecs < len(keys) {
		keys = keys[:b.cfg.MaxSpecs]
	}

	var entries []SpecEntry
	for _, key := range keys {
		value := strings.TrimSpace(cfg.Components.Get(key))
		if value == "" {
			continue
		}
		entries = append(entries, SpecEntry{
			Key:       key,
			Label:     models.ComponentLabels[key],
			Value:     value,
			BrandIcon: brand.FindIcon(value, b.ctx.BrandIcons),
		})
	}
	if len(entries) == 0 {
		return
	}

	s := b.cfg.Specs
	rows := (len(entries) + s.Columns - 1) / s.Columns
	height := float64(rows)*s.LineHeight + 2*s.Padding
	if height > s.SectionHeight {
		height = s.SectionHeight
	}
	frame := b.flowFrame(height, b.cfg.Spacing.SectionGap)
	b.elements = append(b.elements, Specs{
		base:           b.newBase(KindSpecs, frame),
		Entries:        entries,
		Columns:        s.Columns,
		LabelFontSize:  b.cfg.Fonts.SpecLabel,
		ValueFontSize:  b.cfg.Fonts.SpecValue,
		IconSize:       s.IconSize,
		LineHeight:     s.LineHeight,
		ColumnGap:      s.ColumnGap,
		AccentBarWidth: s.AccentBarWidth,
		Padding:        s.Padding,
	})
}

// addInfoBar emits one entry per non-empty field in OS/Warranty/Connectivity
// order on sizes that support the bar.
func (b *cardBuilder) addInfoBar() {
	if !b.cfg.ShowInfoBar {
		return
	}
	cfg := b.ctx.Config
	var entries []InfoEntry
	for _, pair := range []InfoEntry{
		{Label: "OS", Value: strings.TrimSpace(cfg.OS)},
		{Label: "Warranty", Value: strings.TrimSpace(cfg.Warranty)},
		{Label: "Connectivity", Value: strings.TrimSpace(cfg.Connectivity)},
	} {
		if pair.Value != "" {
			entries = append(entries, pair)
		}
	}
	if len(entries) == 0 {
		return
	}
	frame := b.flowFrame(b.cfg.InfoBar.Height, b.cfg.Spacing.SectionGap)
	b.elements = append(b.elements, InfoBar{
		base:          b.newBase(KindInfoBar, frame),
		Entries:       entries,
		LabelFontSize: b.cfg.InfoBar.LabelFontSize,
		ValueFontSize: b.cfg.InfoBar.ValueFontSize,
	})
}

// addMedia emits the product image and, when requested and resolved, the QR
// code. The builder never awaits asset production; an asset that is not
// ready is simply absent from this build. Both rasters shrink to the space
// left above the footer region so a dense card never runs into the barcode.
func (b *cardBuilder) addMedia() {
	visual := b.ctx.Config.VisualSettings

	avail := b.footerTop() - b.cursor
	if avail <= 0 {
		return
	}

	taller := 0.0

	if img := strings.TrimSpace(visual.ProductImage); img != "" {
		size := b.cfg.ProductImageSize
		if size > avail {
			size = avail
		}
		frame := Frame{X: b.cfg.Margin, Y: b.cursor, Width: size, Height: size}
		b.elements = append(b.elements, Image{
			base:    b.newBase(KindImage, frame),
			Source:  img,
			Purpose: "product",
		})
		taller = size
	}

	if visual.ShowQRCode && b.ctx.Assets.QRCode.Ready() {
		size := b.cfg.QRSize
		if size > avail {
			size = avail
		}
		frame := Frame{
			X:      b.dims.Width - b.cfg.Margin - size,
			Y:      b.cursor,
			Width:  size,
			Height: size,
		}
		b.elements = append(b.elements, QRCode{
			base:  b.newBase(KindQRCode, frame),
			Image: string(b.ctx.Assets.QRCode),
			URL:   visual.QRCodeURL,
		})
		if size > taller {
			taller = size
		}
	}

	if taller > 0 {
		b.cursor += taller + b.cfg.Spacing.SectionGap
	}
}

// addBarcode places a pre-rasterized SKU barcode anchored above the footer.
func (b *cardBuilder) addBarcode() {
	if !b.ctx.Assets.Barcode.Ready() {
		return
	}
	f := b.cfg.Footer
	frame := Frame{
		X:      (b.dims.Width - f.BarcodeWidth) / 2,
		Y:      b.dims.Height - f.BottomOffset - f.BarcodeHeight,
		Width:  f.BarcodeWidth,
		Height: f.BarcodeHeight,
	}
	b.elements = append(b.elements, Barcode{
		base:  b.newBase(KindBarcode, frame),
		Image: string(b.ctx.Assets.Barcode),
		SKU:   b.ctx.Config.SKU,
	})
}

// addSKU emits the SKU text in the footer.
func (b *cardBuilder) addSKU() {
	sku := strings.TrimSpace(b.ctx.Config.SKU)
	if sku == "" {
		return
	}
	f := b.cfg.Footer
	height := f.SKUFontSize / 72 * 1.3
	frame := Frame{
		X:      b.cfg.Margin,
		Y:      b.dims.Height - f.BottomOffset + 0.02,
		Width:  b.contentWidth(),
		Height: height,
	}
	b.elements = append(b.elements, SKU{
		base:     b.newBase(KindSKU, frame),
		Text:     "SKU: " + sku,
		FontSize: f.SKUFontSize,
	})
}

// addDescription emits the free-text description on sizes whose template
// supports it. Truncation to a max line count is the renderer's concern.
func (b *cardBuilder) addDescription() {
	if !b.cfg.ShowDescription {
		return
	}
	desc := strings.TrimSpace(b.ctx.Config.Description)
	if desc == "" {
		return
	}
	height := b.cfg.Spacing.LineHeight * 3
	if avail := b.footerTop() - b.cursor; height > avail {
		height = avail
	}
	if height < b.cfg.Spacing.LineHeight {
		// Less than one line of room left above the footer
		return
	}
	frame := b.flowFrame(height, b.cfg.Spacing.SectionGap)
	b.elements = append(b.elements, Text{
		base:     b.newBase(KindText, frame),
		Text:     desc,
		Role:     "description",
		FontSize: b.cfg.Fonts.Description,
		Align:    "left",
		Color:    b.colors.Primary,
	})
}
