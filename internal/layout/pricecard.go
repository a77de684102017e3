package layout

import "speccard-service/internal/models"

// buildPriceCardLayout assembles the 4x6in price card, the default format:
// stock badges, financing (without APR text), up to four feature tags, the
// full two-column spec grid, and the info bar.
func buildPriceCardLayout(ctx Context, seq *idSequence) Layout {
	b := newCardBuilder(models.CardSizePrice, ctx, seq)

	b.addHeader()
	b.addLogo()
	b.addTitle()
	b.addStatusBadges()
	b.addPrice()
	b.addFinancing()
	b.addFeatureBadges()
	b.addSpecs()
	b.addInfoBar()
	b.addMedia()
	b.addBarcode()
	b.addSKU()
	b.addDescription()

	return b.finish(models.CardSizePrice)
}
