// Package money holds the currency and financing math shared by every card
// layout. All functions are total: malformed input degrades to zero or an
// empty string, never to NaN reaching rendered text.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"speccard-service/internal/models"
)

// FormatCurrency formats an amount with a dollar sign and thousands
// separators. Invalid amounts (NaN, Inf) format as zero. Cards that are short
// on space format without cents.
func FormatCurrency(amount float64, withCents bool) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	negative := amount < 0
	amount = math.Abs(amount)

	var whole int64
	var cents int64
	if withCents {
		total := int64(math.Round(amount * 100))
		whole = total / 100
		cents = total % 100
	} else {
		whole = int64(math.Round(amount))
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := "$" + b.String()
	if withCents {
		out = fmt.Sprintf("%s.%02d", out, cents)
	}
	if negative && (whole != 0 || cents != 0) {
		out = "-" + out
	}
	return out
}

// ParseCurrencyInput strips currency symbols, separators, and whitespace from
// user-entered text and parses the remainder. Empty or invalid input yields 0,
// making it the left inverse of FormatCurrency for round-trip editing.
func ParseCurrencyInput(text string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// DiscountPercent returns the rounded percent discount from original to sale
// price. Degenerate inputs (original <= 0, sale < 0, sale >= original) return
// 0 so discount badges never display negative or absurd values.
func DiscountPercent(originalPrice, salePrice float64) int {
	if originalPrice <= 0 || salePrice < 0 || salePrice >= originalPrice {
		return 0
	}
	return int(math.Round((originalPrice - salePrice) / originalPrice * 100))
}

// MonthlyPayment computes the amortized monthly payment as a string with two
// decimals, or "" when there is nothing to finance. At zero APR the payment is
// straight division; otherwise the standard amortizing-loan formula applies.
func MonthlyPayment(price float64, months int, apr float64) string {
	if price <= 0 || months <= 0 {
		return ""
	}
	if apr == 0 {
		return fmt.Sprintf("%.2f", price/float64(months))
	}
	r := apr / 100 / 12
	n := float64(months)
	factor := math.Pow(1+r, n)
	payment := price * (r * factor) / (factor - 1)
	return fmt.Sprintf("%.2f", payment)
}

// ComponentTotal sums the per-component price fields, treating unparseable
// entries as 0.
func ComponentTotal(prices models.ComponentPrices) float64 {
	var total float64
	for _, key := range models.ComponentKeys {
		total += ParseCurrencyInput(prices.Get(key))
	}
	return total
}
