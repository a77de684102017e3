package money

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speccard-service/internal/models"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		withCents bool
		want      string
	}{
		{"zero with cents", 0, true, "$0.00"},
		{"zero without cents", 0, false, "$0"},
		{"cents rounding", 599.999, true, "$600.00"},
		{"thousands separator", 1234.56, true, "$1,234.56"},
		{"millions", 1234567.89, true, "$1,234,567.89"},
		{"no cents rounds", 1499.5, false, "$1,500"},
		{"nan formats as zero", math.NaN(), true, "$0.00"},
		{"inf formats as zero", math.Inf(1), false, "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount, tt.withCents))
		})
	}
}

func TestParseCurrencyInput(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"$1,234.56", 1234.56},
		{"1234.56", 1234.56},
		{"  $ 599 ", 599},
		{"", 0},
		{"abc", 0},
		{"USD 2,000", 2000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCurrencyInput(tt.input), "input %q", tt.input)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 1, 99.99, 1234.56, 987654.32} {
		formatted := FormatCurrency(amount, true)
		assert.Equal(t, amount, ParseCurrencyInput(formatted), "round trip of %s", formatted)
	}
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 20, DiscountPercent(1000, 800))
	assert.Equal(t, 50, DiscountPercent(200, 100))
	assert.Equal(t, 33, DiscountPercent(300, 200))

	// Degenerate inputs never produce a displayable discount
	assert.Equal(t, 0, DiscountPercent(0, 100))
	assert.Equal(t, 0, DiscountPercent(-10, 5))
	assert.Equal(t, 0, DiscountPercent(100, 100))
	assert.Equal(t, 0, DiscountPercent(100, 150))
	assert.Equal(t, 0, DiscountPercent(100, -1))
}

func TestDiscountPercentBounds(t *testing.T) {
	for original := 1.0; original <= 2000; original += 97 {
		for sale := 0.0; sale < original; sale += 53 {
			pct := DiscountPercent(original, sale)
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
		}
	}
}

func TestMonthlyPayment(t *testing.T) {
	assert.Equal(t, "", MonthlyPayment(0, 12, 5))
	assert.Equal(t, "", MonthlyPayment(-100, 12, 5))
	assert.Equal(t, "", MonthlyPayment(1000, 0, 5))

	// Zero APR is straight division
	assert.Equal(t, "100.00", MonthlyPayment(1200, 12, 0))

	// Non-zero APR uses the amortizing formula
	got := MonthlyPayment(2000, 24, 9.99)
	require.NotEmpty(t, got)
	v, err := strconv.ParseFloat(got, 64)
	require.NoError(t, err)
	assert.Greater(t, v, 2000.0/24) // interest always costs something
	assert.InDelta(t, 92.27, v, 0.1)
}

func TestMonthlyPaymentMonotonicInAPR(t *testing.T) {
	prev := 0.0
	for apr := 0.0; apr <= 30; apr += 2.5 {
		got := MonthlyPayment(1500, 36, apr)
		require.NotEmpty(t, got)
		v, err := strconv.ParseFloat(got, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, prev, "payment at apr %.1f", apr)
		prev = v
	}
}

func TestComponentTotal(t *testing.T) {
	prices := models.ComponentPrices{
		CPU:     "$399.99",
		GPU:     "1,199",
		RAM:     "not a price",
		Storage: "",
		PSU:     "129.50",
	}
	assert.InDelta(t, 399.99+1199+129.50, ComponentTotal(prices), 0.001)

	assert.Equal(t, 0.0, ComponentTotal(models.ComponentPrices{}))
}
