package layout

import (
	"speccard-service/internal/models"
	"speccard-service/internal/theme"
)

// ElementKind discriminates the closed set of layout element types. Both
// renderers must map every kind to a drawing routine; adding a kind here
// requires updating both.
type ElementKind string

const (
	KindText      ElementKind = "text"
	KindHeader    ElementKind = "header"
	KindPrice     ElementKind = "price"
	KindSpecs     ElementKind = "specs"
	KindBadgeRow  ElementKind = "badge-row"
	KindFinancing ElementKind = "financing"
	KindQRCode    ElementKind = "qrcode"
	KindBarcode   ElementKind = "barcode"
	KindSKU       ElementKind = "sku"
	KindImage     ElementKind = "image"
	KindInfoBar   ElementKind = "info-bar"
)

// Frame is an absolute position and size on the card, in inches.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is one typed, positioned unit of visual content. The concrete set
// is closed; consumers switch exhaustively on Kind.
type Element interface {
	ID() int
	Kind() ElementKind
	Frame() Frame
	element()
}

// base carries the fields shared by every element. IDs are assigned in
// creation order from the build's sequence, so identical inputs reproduce
// identical IDs.
type base struct {
	ElemID   int         `json:"id"`
	ElemKind ElementKind `json:"type"`
	Box      Frame       `json:"frame"`
}

func (b base) ID() int           { return b.ElemID }
func (b base) Kind() ElementKind { return b.ElemKind }
func (b base) Frame() Frame      { return b.Box }
func (b base) element()          {}

// Header is the store-name bar, absent when the store name is empty.
type Header struct {
	base
	Text         string  `json:"text"`
	FontSize     float64 `json:"fontSize"`
	StripeHeight float64 `json:"stripeHeight"`
}

// Text is a generic text element. Role distinguishes the title, description,
// and section-header uses without opening the payload.
type Text struct {
	base
	Text     string  `json:"text"`
	Role     string  `json:"role"`
	FontSize float64 `json:"fontSize"`
	Bold     bool    `json:"bold"`
	Align    string  `json:"align"`
	Color    string  `json:"color"`
}

// Image places a raster (store logo or product photo), aspect preserved by
// the renderers within the frame.
type Image struct {
	base
	Source  string `json:"source"`
	Purpose string `json:"purpose"` // "logo" or "product"
}

// Badge is one chip inside a badge row.
type Badge struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	TextColor  string `json:"textColor"`
}

// BadgeRow aggregates ordered chips. Purpose is "status" for the
// condition/tier/sale/stock row and "features" for the feature-tag row.
type BadgeRow struct {
	base
	Purpose  string  `json:"purpose"`
	Badges   []Badge `json:"badges"`
	FontSize float64 `json:"fontSize"`
	PadX     float64 `json:"padX"`
	PadY     float64 `json:"padY"`
	Radius   float64 `json:"radius"`
	Gap      float64 `json:"gap"`
}

// Price carries the current price and, on sale, the struck-through original.
// Display strings are precomputed so both renderers agree byte-for-byte.
type Price struct {
	base
	CurrentPrice  float64 `json:"currentPrice"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Display       string  `json:"display"`
	StrikeDisplay string  `json:"strikeDisplay,omitempty"`
	FontSize      float64 `json:"fontSize"`
	StrikeSize    float64 `json:"strikeSize,omitempty"`
	ShowBox       bool    `json:"showBox"`
	BoxRadius     float64 `json:"boxRadius,omitempty"`
}

// Financing shows the amortized monthly payment.
type Financing struct {
	base
	Monthly  string  `json:"monthly"`
	Months   int     `json:"months"`
	APR      float64 `json:"apr"`
	ShowAPR  bool    `json:"showApr"`
	FontSize float64 `json:"fontSize"`
}

// SpecEntry is one component line: category key, display label, value, and
// an optional matched brand icon. A nil icon means no brand was detected or
// no icon was uploaded; the two cases are deliberately not distinguished.
type SpecEntry struct {
	Key       string            `json:"key"`
	Label     string            `json:"label"`
	Value     string            `json:"value"`
	BrandIcon *models.BrandIcon `json:"brandIcon,omitempty"`
}

// Specs lists the non-empty components in canonical order.
type Specs struct {
	base
	Entries        []SpecEntry `json:"entries"`
	Columns        int         `json:"columns"`
	LabelFontSize  float64     `json:"labelFontSize"`
	ValueFontSize  float64     `json:"valueFontSize"`
	IconSize       float64     `json:"iconSize"`
	LineHeight     float64     `json:"lineHeight"`
	ColumnGap      float64     `json:"columnGap"`
	AccentBarWidth float64     `json:"accentBarWidth"`
	Padding        float64     `json:"padding"`
}

// InfoEntry is one label/value pair in the info bar.
type InfoEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InfoBar renders OS/warranty/connectivity as a single horizontal band.
type InfoBar struct {
	base
	Entries       []InfoEntry `json:"entries"`
	LabelFontSize float64     `json:"labelFontSize"`
	ValueFontSize float64     `json:"valueFontSize"`
}

// QRCode places a pre-rasterized QR image supplied by the caller.
type QRCode struct {
	base
	Image string `json:"image"`
	URL   string `json:"url"`
}

// Barcode places a pre-rasterized SKU barcode supplied by the caller.
type Barcode struct {
	base
	Image string `json:"image"`
	SKU   string `json:"sku"`
}

// SKU is the small SKU text near the footer.
type SKU struct {
	base
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
}

// Layout is the builder's output: a derived, disposable view rebuilt from
// scratch on every input change and never mutated in place.
type Layout struct {
	CardSize   models.CardSize    `json:"cardSize"`
	Dimensions models.Dimensions  `json:"dimensions"`
	Colors     models.ThemeColors `json:"colors"`
	FontFamily string             `json:"fontFamily"`
	Background theme.Background   `json:"background"`
	// Accent stripe along the bottom edge, in inches
	FooterStripeHeight float64   `json:"footerStripeHeight"`
	Elements           []Element `json:"elements"`
}

// idSequence assigns element IDs in creation order. Each top-level build owns
// a fresh sequence, so concurrent builds never share mutable state.
type idSequence struct {
	next int
}

func newIDSequence() *idSequence {
	return &idSequence{next: 1}
}

func (s *idSequence) Next() int {
	id := s.next
	s.next++
	return id
}
