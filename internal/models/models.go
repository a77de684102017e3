package models

import "strings"

// ============ PRODUCT CONFIG STRUCTURES ============

// ComponentKeys is the canonical component slot order. Builders and the
// per-component price map iterate slots in exactly this order.
var ComponentKeys = []string{"cpu", "gpu", "ram", "storage", "motherboard", "psu", "case", "cooling"}

// ComponentLabels maps a slot key to its display label.
var ComponentLabels = map[string]string{
	"cpu":         "CPU",
	"gpu":         "GPU",
	"ram":         "RAM",
	"storage":     "Storage",
	"motherboard": "Motherboard",
	"psu":         "PSU",
	"case":        "Case",
	"cooling":     "Cooling",
}

// Components holds the fixed set of 8 component slots. Empty string means
// the slot is unset and is omitted from layouts, never rendered blank.
type Components struct {
	CPU         string `json:"cpu"`
	GPU         string `json:"gpu"`
	RAM         string `json:"ram"`
	Storage     string `json:"storage"`
	Motherboard string `json:"motherboard"`
	PSU         string `json:"psu"`
	Case        string `json:"case"`
	Cooling     string `json:"cooling"`
}

// Get returns the slot value for a canonical key.
func (c Components) Get(key string) string {
	switch key {
	case "cpu":
		return c.CPU
	case "gpu":
		return c.GPU
	case "ram":
		return c.RAM
	case "storage":
		return c.Storage
	case "motherboard":
		return c.Motherboard
	case "psu":
		return c.PSU
	case "case":
		return c.Case
	case "cooling":
		return c.Cooling
	}
	return ""
}

// Empty reports whether no slot is set.
func (c Components) Empty() bool {
	for _, key := range ComponentKeys {
		if strings.TrimSpace(c.Get(key)) != "" {
			return false
		}
	}
	return true
}

// ComponentPrices mirrors Components with per-slot price strings as entered
// by the user (currency symbols and separators allowed).
type ComponentPrices struct {
	CPU         string `json:"cpu"`
	GPU         string `json:"gpu"`
	RAM         string `json:"ram"`
	Storage     string `json:"storage"`
	Motherboard string `json:"motherboard"`
	PSU         string `json:"psu"`
	Case        string `json:"case"`
	Cooling     string `json:"cooling"`
}

func (p ComponentPrices) Get(key string) string {
	switch key {
	case "cpu":
		return p.CPU
	case "gpu":
		return p.GPU
	case "ram":
		return p.RAM
	case "storage":
		return p.Storage
	case "motherboard":
		return p.Motherboard
	case "psu":
		return p.PSU
	case "case":
		return p.Case
	case "cooling":
		return p.Cooling
	}
	return ""
}

type SaleInfo struct {
	Enabled       bool    `json:"enabled"`
	OriginalPrice float64 `json:"originalPrice"`
	BadgeText     string  `json:"badgeText"`
}

type FinancingInfo struct {
	Enabled bool    `json:"enabled"`
	Months  int     `json:"months"`
	APR     float64 `json:"apr"`
}

type VisualSettings struct {
	BackgroundPattern string `json:"backgroundPattern"`
	CardTemplate      string `json:"cardTemplate"`
	FontFamily        string `json:"fontFamily"`
	ShowQRCode        bool   `json:"showQrCode"`
	QRCodeURL         string `json:"qrCodeUrl"`
	ProductImage      string `json:"productImage,omitempty"` // data URL or http URL
}

type CustomColors struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	PriceColor string `json:"priceColor"`
}

// ProductConfig is the complete description of one PC build to be rendered.
type ProductConfig struct {
	ModelName       string          `json:"modelName"`
	Price           float64         `json:"price"`
	Components      Components      `json:"components"`
	ComponentPrices ComponentPrices `json:"componentPrices"`
	StoreName       string          `json:"storeName"`
	StoreLogo       string          `json:"storeLogo,omitempty"` // data URL or http URL
	SKU             string          `json:"sku"`
	OS              string          `json:"os"`
	Warranty        string          `json:"warranty"`
	Connectivity    string          `json:"connectivity"`
	BuildTier       string          `json:"buildTier"`
	Features        []string        `json:"features"`
	Description     string          `json:"description"`
	ColorTheme      string          `json:"colorTheme"`
	CustomColors    CustomColors    `json:"customColors"`
	Condition       string          `json:"condition"`
	StockStatus     string          `json:"stockStatus"`
	Quantity        int             `json:"quantity"`
	SaleInfo        SaleInfo        `json:"saleInfo"`
	FinancingInfo   FinancingInfo   `json:"financingInfo"`
	VisualSettings  VisualSettings  `json:"visualSettings"`
}

// ============ CONDITION / STOCK LABEL TABLES ============

// ConditionLabels maps condition values to the short badge label.
var ConditionLabels = map[string]string{
	"new":         "NEW",
	"refurbished": "REFURBISHED",
	"open-box":    "OPEN BOX",
	"used":        "USED",
}

// StockStatusLabels maps stock status values to the badge label.
var StockStatusLabels = map[string]string{
	"in-stock":     "IN STOCK",
	"low-stock":    "LOW STOCK",
	"out-of-stock": "OUT OF STOCK",
	"pre-order":    "PRE-ORDER",
}

// ============ CARD SIZE / THEME STRUCTURES ============

type CardSize string

const (
	CardSizeShelf  CardSize = "shelf"
	CardSizePrice  CardSize = "price"
	CardSizePoster CardSize = "poster"
)

// Dimensions is a physical card size in inches.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CardDimensions holds the fixed physical format per card size.
// Card sizes are closed, not user-extensible.
var CardDimensions = map[CardSize]Dimensions{
	CardSizeShelf:  {Width: 2, Height: 3},
	CardSizePrice:  {Width: 4, Height: 6},
	CardSizePoster: {Width: 8.5, Height: 11},
}

// ThemeColors is the resolved color triple applied across one card.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	PriceColor string `json:"priceColor"`
}

// BrandIcon pairs a brand name with an uploaded icon image (data URL).
// Name matching is case-insensitive; at most one icon per normalized name.
type BrandIcon struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// FindBrandIcon returns the icon whose name matches case-insensitively.
func FindBrandIcon(icons []BrandIcon, name string) *BrandIcon {
	for i := range icons {
		if strings.EqualFold(icons[i].Name, name) {
			return &icons[i]
		}
	}
	return nil
}

// ============ REQUEST/RESPONSE STRUCTURES ============

type CardRequest struct {
	Config     ProductConfig `json:"config"`
	CardSize   CardSize      `json:"cardSize"`
	BrandIcons []BrandIcon   `json:"brandIcons,omitempty"`
}

type BatchCardRequest struct {
	Cards      []CardItem  `json:"cards"`
	BrandIcons []BrandIcon `json:"brandIcons,omitempty"`
}

type CardItem struct {
	Config   ProductConfig `json:"config"`
	CardSize CardSize      `json:"cardSize"`
}

type BatchCardResponse struct {
	Success bool         `json:"success"`
	Total   int          `json:"total"`
	Results []CardResult `json:"results"`
}

type CardResult struct {
	ID        string `json:"id"`
	ModelName string `json:"model_name"`
	SKU       string `json:"sku,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	PDFBase64 string `json:"pdf_base64,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
