package layout

import "speccard-service/internal/models"

// buildPosterLayout assembles the 8.5x11in poster: everything the price card
// shows plus APR text on financing, six feature tags, the free-text
// description, and a literal section header before the spec block.
func buildPosterLayout(ctx Context, seq *idSequence) Layout {
	b := newCardBuilder(models.CardSizePoster, ctx, seq)

	b.addHeader()
	b.addLogo()
	b.addTitle()
	b.addStatusBadges()
	b.addPrice()
	b.addFinancing()
	b.addFeatureBadges()
	b.addSpecsHeader()
	b.addSpecs()
	b.addInfoBar()
	b.addMedia()
	b.addBarcode()
	b.addSKU()
	b.addDescription()

	return b.finish(models.CardSizePoster)
}
