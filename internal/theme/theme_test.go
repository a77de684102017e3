package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"speccard-service/internal/models"
)

func TestResolveNamedPreset(t *testing.T) {
	config := models.ProductConfig{ColorTheme: "steel"}
	colors := Resolve(config)
	assert.Equal(t, "#2c3e50", colors.Primary)
	assert.Equal(t, "#3498db", colors.Accent)
	assert.Equal(t, "#2980b9", colors.PriceColor)
}

func TestResolveCustom(t *testing.T) {
	config := models.ProductConfig{
		ColorTheme: "custom",
		CustomColors: models.CustomColors{
			Primary:    "#111111",
			Accent:     "#222222",
			PriceColor: "#333333",
		},
	}
	colors := Resolve(config)
	assert.Equal(t, models.ThemeColors{Primary: "#111111", Accent: "#222222", PriceColor: "#333333"}, colors)
}

func TestResolveUnknownFallsBack(t *testing.T) {
	unknown := Resolve(models.ProductConfig{ColorTheme: "does-not-exist"})
	def := Resolve(models.ProductConfig{ColorTheme: DefaultTheme})
	assert.Equal(t, def, unknown)

	empty := Resolve(models.ProductConfig{})
	assert.Equal(t, def, empty)
}

func TestResolveIdempotent(t *testing.T) {
	config := models.ProductConfig{ColorTheme: "crimson"}
	assert.Equal(t, Resolve(config), Resolve(config))
}

func TestResolveFontFamily(t *testing.T) {
	assert.Contains(t, ResolveFontFamily(models.VisualSettings{FontFamily: "serif"}), "Georgia")
	assert.Contains(t, ResolveFontFamily(models.VisualSettings{FontFamily: "mono"}), "Courier")
	assert.Equal(t, defaultFontStack, ResolveFontFamily(models.VisualSettings{}))
	assert.Equal(t, defaultFontStack, ResolveFontFamily(models.VisualSettings{FontFamily: "bogus"}))
}

func TestResolveBackground(t *testing.T) {
	assert.Equal(t, "dots", ResolveBackground(models.VisualSettings{BackgroundPattern: "dots"}).Pattern)
	assert.Equal(t, "solid", ResolveBackground(models.VisualSettings{}).Pattern)
	assert.Equal(t, "solid", ResolveBackground(models.VisualSettings{BackgroundPattern: "plaid"}).Pattern)
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	assert.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.NotContains(t, names, "custom")
}
