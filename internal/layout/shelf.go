package layout

import "speccard-service/internal/models"

// buildShelfLayout assembles the 2x3in shelf tag: the densest format. The
// shelf config pins the differences (no stock badges, no financing, no info
// bar, no feature tags, first four components only, single column, price
// without cents).
func buildShelfLayout(ctx Context, seq *idSequence) Layout {
	b := newCardBuilder(models.CardSizeShelf, ctx, seq)

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

	return b.finish(models.CardSizeShelf)
}
