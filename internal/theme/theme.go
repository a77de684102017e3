// Package theme resolves a config's color theme, font choice, and background
// pattern into the concrete values both renderers consume. Resolution is a
// pure read over fixed tables.
package theme

import (
	"sort"

	"speccard-service/internal/models"
)

// DefaultTheme is used when a config names an unknown theme.
const DefaultTheme = "midnight"

// presets are the named theme triples. The map is never mutated after init.
var presets = map[string]models.ThemeColors{
	"midnight": {Primary: "#1a1a2e", Accent: "#e94560", PriceColor: "#e94560"},
	"steel":    {Primary: "#2c3e50", Accent: "#3498db", PriceColor: "#2980b9"},
	"emerald":  {Primary: "#1e3a2f", Accent: "#2ecc71", PriceColor: "#27ae60"},
	"crimson":  {Primary: "#2d132c", Accent: "#ee4540", PriceColor: "#ee4540"},
	"violet":   {Primary: "#2b2040", Accent: "#9b59b6", PriceColor: "#8e44ad"},
	"amber":    {Primary: "#3e2723", Accent: "#ff9800", PriceColor: "#ef6c00"},
	"mono":     {Primary: "#212121", Accent: "#616161", PriceColor: "#212121"},
}

// fontStacks maps the font choice in visual settings to a concrete CSS font
// stack shared by the preview renderer and the PDF font mapping.
var fontStacks = map[string]string{
	"sans":    "Helvetica, Arial, sans-serif",
	"serif":   "Georgia, 'Times New Roman', serif",
	"mono":    "'Courier New', Courier, monospace",
	"display": "'Arial Black', Helvetica, sans-serif",
}

const defaultFontStack = "Helvetica, Arial, sans-serif"

// backgroundPatterns is the closed set of background treatments.
var backgroundPatterns = map[string]bool{
	"solid":    true,
	"diagonal": true,
	"dots":     true,
	"grid":     true,
}

// Background describes the card background for both renderers.
type Background struct {
	Pattern string `json:"pattern"`
}

// Resolve returns the custom color triple when the config selects the custom
// theme, otherwise the fixed preset. Unknown theme names fall back to the
// default preset, so resolution is total.
func Resolve(config models.ProductConfig) models.ThemeColors {
	if config.ColorTheme == "custom" {
		return models.ThemeColors{
			Primary:    config.CustomColors.Primary,
			Accent:     config.CustomColors.Accent,
			PriceColor: config.CustomColors.PriceColor,
		}
	}
	if preset, ok := presets[config.ColorTheme]; ok {
		return preset
	}
	return presets[DefaultTheme]
}

// ResolveFontFamily maps the configured font choice to its CSS stack.
func ResolveFontFamily(visual models.VisualSettings) string {
	if stack, ok := fontStacks[visual.FontFamily]; ok {
		return stack
	}
	return defaultFontStack
}

// ResolveBackground maps the configured pattern to a background description,
// defaulting to solid for unknown patterns.
func ResolveBackground(visual models.VisualSettings) Background {
	if backgroundPatterns[visual.BackgroundPattern] {
		return Background{Pattern: visual.BackgroundPattern}
	}
	return Background{Pattern: "solid"}
}

// PresetNames returns the named themes (excluding custom) for selection UIs.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
