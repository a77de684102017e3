// Package render walks a card layout and draws it into a print-ready PDF at
// the card's exact physical size. It maps every element kind to a drawing
// routine; a failure in one element never aborts the card.
package render

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/webp"

	"speccard-service/internal/layout"
)

// PDFRenderer draws one layout into one single-page PDF.
type PDFRenderer struct {
	layout layout.Layout
	pdf    *gofpdf.Fpdf
	font   string
}

// NewPDFRenderer creates a renderer for the given layout. The page is sized
// to the card's physical inches with no margins and no page breaks.
func NewPDFRenderer(l layout.Layout) *PDFRenderer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size: gofpdf.SizeType{
			Wd: l.Dimensions.Width,
			Ht: l.Dimensions.Height,
		},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	return &PDFRenderer{
		layout: l,
		pdf:    pdf,
		font:   coreFontFor(l.FontFamily),
	}
}

// coreFontFor maps the layout's CSS font stack onto a gofpdf core font.
func coreFontFor(stack string) string {
	lower := strings.ToLower(stack)
	switch {
	case strings.Contains(lower, "georgia"), strings.Contains(lower, "times"):
		return "Times"
	case strings.Contains(lower, "courier"):
		return "Courier"
	default:
		return "Helvetica"
	}
}

// Render draws every element and returns the PDF bytes.
func (r *PDFRenderer) Render() ([]byte, error) {
	r.drawBackground()

	for _, el := range r.layout.Elements {
		if err := r.renderElement(el); err != nil {
			fmt.Fprintf(os.Stderr, "render error for element %d (%s): %v\n", el.ID(), el.Kind(), err)
		}
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to output PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// renderElement covers the closed element set; the schema has no other
// kinds, so there is nothing to silently drop.
func (r *PDFRenderer) renderElement(el layout.Element) error {
	switch e := el.(type) {
	case layout.Header:
		return r.renderHeader(e)
	case layout.Text:
		return r.renderText(e)
	case layout.Image:
		return r.renderImage(e)
	case layout.BadgeRow:
		return r.renderBadgeRow(e)
	case layout.Price:
		return r.renderPrice(e)
	case layout.Financing:
		return r.renderFinancing(e)
	case layout.Specs:
		return r.renderSpecs(e)
	case layout.InfoBar:
		return r.renderInfoBar(e)
	case layout.QRCode:
		return r.renderRasterImage(e.Frame(), e.Image, "qr")
	case layout.Barcode:
		return r.renderRasterImage(e.Frame(), e.Image, "barcode")
	case layout.SKU:
		return r.renderSKU(e)
	default:
		return fmt.Errorf("unhandled element kind %q", el.Kind())
	}
}

func (r *PDFRenderer) drawBackground() {
	w := r.layout.Dimensions.Width
	h := r.layout.Dimensions.Height

	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.Rect(0, 0, w, h, "F")

	pr, pg, pb := hexToRGB(r.layout.Colors.Primary)
	r.pdf.SetDrawColor(tint(pr), tint(pg), tint(pb))
	r.pdf.SetLineWidth(0.004)

	switch r.layout.Background.Pattern {
	case "diagonal":
		for x := -h; x < w; x += 0.25 {
			r.pdf.Line(x, 0, x+h, h)
		}
	case "dots":
		r.pdf.SetFillColor(tint(pr), tint(pg), tint(pb))
		for y := 0.1; y < h; y += 0.2 {
			for x := 0.1; x < w; x += 0.2 {
				r.pdf.Circle(x, y, 0.008, "F")
			}
		}
	case "grid":
		for x := 0.0; x < w; x += 0.25 {
			r.pdf.Line(x, 0, x, h)
		}
		for y := 0.0; y < h; y += 0.25 {
			r.pdf.Line(0, y, w, y)
		}
	}

	// Accent stripe along the bottom edge, mirroring the header stripe
	if s := r.layout.FooterStripeHeight; s > 0 {
		ar, ag, ab := hexToRGB(r.layout.Colors.Accent)
		r.pdf.SetFillColor(ar, ag, ab)
		r.pdf.Rect(0, h-s, w, s, "F")
	}
}

func (r *PDFRenderer) renderHeader(e layout.Header) error {
	f := e.Frame()
	pr, pg, pb := hexToRGB(r.layout.Colors.Primary)
	r.pdf.SetFillColor(pr, pg, pb)
	r.pdf.Rect(f.X, f.Y, f.Width, f.Height, "F")

	ar, ag, ab := hexToRGB(r.layout.Colors.Accent)
	r.pdf.SetFillColor(ar, ag, ab)
	r.pdf.Rect(f.X, f.Y+f.Height, f.Width, e.StripeHeight, "F")

	r.pdf.SetFont(r.font, "B", e.FontSize)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetXY(f.X, f.Y)
	r.pdf.CellFormat(f.Width, f.Height, e.Text, "", 0, "CM", false, 0, "")
	return nil
}

func (r *PDFRenderer) renderText(e layout.Text) error {
	if strings.TrimSpace(e.Text) == "" {
		return nil
	}
	style := ""
	if e.Bold {
		style = "B"
	}
	r.pdf.SetFont(r.font, style, e.FontSize)
	tr, tg, tb := hexToRGB(e.Color)
	r.pdf.SetTextColor(tr, tg, tb)

	align := "LM"
	switch e.Align {
	case "center":
		align = "CM"
	case "right":
		align = "RM"
	}

	f := e.Frame()
	r.pdf.SetXY(f.X, f.Y)

	// Long text wraps; description text is clamped to the frame.
	textWidth := r.pdf.GetStringWidth(e.Text)
	if strings.Contains(e.Text, "\n") || textWidth > f.Width*0.95 {
		lineHeight := e.FontSize / 72 * 1.3
		if lineHeight > f.Height {
			lineHeight = f.Height
		}
		r.pdf.MultiCell(f.Width, lineHeight, e.Text, "", align, false)
	} else {
		r.pdf.CellFormat(f.Width, f.Height, e.Text, "", 0, align, false, 0, "")
	}
	return nil
}

func (r *PDFRenderer) renderImage(e layout.Image) error {
	return r.renderRasterImage(e.Frame(), e.Source, e.Purpose)
}

// renderRasterImage registers an image from a data URL and draws it
// preserving the source aspect ratio inside the frame.
func (r *PDFRenderer) renderRasterImage(f layout.Frame, source, purpose string) error {
	data := dataURLBytes(source)
	if data == nil {
		return fmt.Errorf("%s image is not a decodable data URL", purpose)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode %s image: %w", purpose, err)
	}

	// Normalize to PNG for gofpdf
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", purpose, err)
	}

	hash := md5.Sum(data)
	name := fmt.Sprintf("%s_%x", purpose, hash[:8])
	info := r.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if info == nil {
		return fmt.Errorf("failed to register %s image", purpose)
	}

	// Fit inside the frame, centered
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	scale := f.Width / iw
	if s := f.Height / ih; s < scale {
		scale = s
	}
	dw, dh := iw*scale, ih*scale
	x := f.X + (f.Width-dw)/2
	y := f.Y + (f.Height-dh)/2

	r.pdf.ImageOptions(name, x, y, dw, dh, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func (r *PDFRenderer) renderBadgeRow(e layout.BadgeRow) error {
	f := e.Frame()
	r.pdf.SetFont(r.font, "B", e.FontSize)

	// Measure total width to center the row
	var total float64
	widths := make([]float64, len(e.Badges))
	for i, badge := range e.Badges {
		widths[i] = r.pdf.GetStringWidth(badge.Text) + 2*e.PadX
		total += widths[i]
	}
	total += e.Gap * float64(len(e.Badges)-1)

	x := f.X + (f.Width-total)/2
	if x < f.X {
		x = f.X
	}

	for i, badge := range e.Badges {
		if x+widths[i] > f.X+f.Width {
			break // row does not wrap; overflowing chips are clipped
		}
		br, bg, bb := hexToRGB(badge.Background)
		r.pdf.SetFillColor(br, bg, bb)
		r.pdf.RoundedRect(x, f.Y, widths[i], f.Height, e.Radius, "1234", "F")

		tr, tg, tb := hexToRGB(badge.TextColor)
		r.pdf.SetTextColor(tr, tg, tb)
		r.pdf.SetXY(x, f.Y)
		r.pdf.CellFormat(widths[i], f.Height, badge.Text, "", 0, "CM", false, 0, "")

		x += widths[i] + e.Gap
	}
	return nil
}

func (r *PDFRenderer) renderPrice(e layout.Price) error {
	f := e.Frame()

	if e.ShowBox {
		pr, pg, pb := hexToRGB(r.layout.Colors.Primary)
		r.pdf.SetFillColor(tint(pr), tint(pg), tint(pb))
		r.pdf.RoundedRect(f.X, f.Y, f.Width, f.Height, e.BoxRadius, "1234", "F")
	}

	cr, cg, cb := hexToRGB(r.layout.Colors.PriceColor)
	r.pdf.SetFont(r.font, "B", e.FontSize)
	r.pdf.SetTextColor(cr, cg, cb)

	priceWidth := r.pdf.GetStringWidth(e.Display)

	if e.StrikeDisplay != "" {
		r.pdf.SetFont(r.font, "", e.StrikeSize)
		strikeWidth := r.pdf.GetStringWidth(e.StrikeDisplay)
		gap := 0.06 * f.Height

		startX := f.X + (f.Width-priceWidth-strikeWidth-gap)/2
		if startX < f.X {
			startX = f.X
		}

		// Struck-through original, vertically centered with the price
		r.pdf.SetTextColor(130, 130, 130)
		r.pdf.SetXY(startX, f.Y)
		r.pdf.CellFormat(strikeWidth, f.Height, e.StrikeDisplay, "", 0, "LM", false, 0, "")
		lineY := f.Y + f.Height/2
		r.pdf.SetDrawColor(130, 130, 130)
		r.pdf.SetLineWidth(0.008)
		r.pdf.Line(startX, lineY, startX+strikeWidth, lineY)

		r.pdf.SetFont(r.font, "B", e.FontSize)
		r.pdf.SetTextColor(cr, cg, cb)
		r.pdf.SetXY(startX+strikeWidth+gap, f.Y)
		r.pdf.CellFormat(priceWidth, f.Height, e.Display, "", 0, "LM", false, 0, "")
		return nil
	}

	r.pdf.SetXY(f.X, f.Y)
	r.pdf.CellFormat(f.Width, f.Height, e.Display, "", 0, "CM", false, 0, "")
	return nil
}

func (r *PDFRenderer) renderFinancing(e layout.Financing) error {
	f := e.Frame()
	text := fmt.Sprintf("From $%s/mo for %d months", e.Monthly, e.Months)
	if e.ShowAPR {
		text = fmt.Sprintf("%s at %.2f%% APR", text, e.APR)
	}
	cr, cg, cb := hexToRGB(r.layout.Colors.PriceColor)
	r.pdf.SetFont(r.font, "", e.FontSize)
	r.pdf.SetTextColor(cr, cg, cb)
	r.pdf.SetXY(f.X, f.Y)
	r.pdf.CellFormat(f.Width, f.Height, text, "", 0, "CM", false, 0, "")
	return nil
}

func (r *PDFRenderer) renderSpecs(e layout.Specs) error {
	f := e.Frame()

	ar, ag, ab := hexToRGB(r.layout.Colors.Accent)
	r.pdf.SetFillColor(ar, ag, ab)
	r.pdf.Rect(f.X, f.Y, e.AccentBarWidth, f.Height, "F")

	innerX := f.X + e.AccentBarWidth + e.Padding
	innerW := f.Width - e.AccentBarWidth - 2*e.Padding
	colW := innerW
	if e.Columns > 1 {
		colW = (innerW - e.ColumnGap*float64(e.Columns-1)) / float64(e.Columns)
	}
	rows := (len(e.Entries) + e.Columns - 1) / e.Columns

	pr, pg, pb := hexToRGB(r.layout.Colors.Primary)

	for i, entry := range e.Entries {
		col := i / rows
		row := i % rows
		x := innerX + float64(col)*(colW+e.ColumnGap)
		y := f.Y + e.Padding + float64(row)*e.LineHeight

		textX := x
		if entry.BrandIcon != nil {
			if err := r.renderRasterImage(layout.Frame{
				X: x, Y: y + (e.LineHeight-e.IconSize)/2,
				Width: e.IconSize, Height: e.IconSize,
			}, entry.BrandIcon.Image, "brand"); err == nil {
				textX += e.IconSize + e.Padding/2
			}
		}

		r.pdf.SetFont(r.font, "B", e.LabelFontSize)
		r.pdf.SetTextColor(ar, ag, ab)
		r.pdf.SetXY(textX, y)
		labelH := e.LineHeight * 0.4
		r.pdf.CellFormat(colW-(textX-x), labelH, strings.ToUpper(entry.Label), "", 0, "LM", false, 0, "")

		r.pdf.SetFont(r.font, "", e.ValueFontSize)
		r.pdf.SetTextColor(pr, pg, pb)
		r.pdf.SetXY(textX, y+labelH)
		r.pdf.CellFormat(colW-(textX-x), e.LineHeight-labelH, entry.Value, "", 0, "LM", false, 0, "")
	}
	return nil
}

func (r *PDFRenderer) renderInfoBar(e layout.InfoBar) error {
	f := e.Frame()
	pr, pg, pb := hexToRGB(r.layout.Colors.Primary)
	r.pdf.SetFillColor(tint(pr), tint(pg), tint(pb))
	r.pdf.Rect(f.X, f.Y, f.Width, f.Height, "F")

	cellW := f.Width / float64(len(e.Entries))
	ar, ag, ab := hexToRGB(r.layout.Colors.Accent)

	for i, entry := range e.Entries {
		x := f.X + float64(i)*cellW

		r.pdf.SetFont(r.font, "B", e.LabelFontSize)
		r.pdf.SetTextColor(ar, ag, ab)
		r.pdf.SetXY(x, f.Y)
		r.pdf.CellFormat(cellW, f.Height*0.45, strings.ToUpper(entry.Label), "", 0, "CM", false, 0, "")

		r.pdf.SetFont(r.font, "", e.ValueFontSize)
		r.pdf.SetTextColor(pr, pg, pb)
		r.pdf.SetXY(x, f.Y+f.Height*0.45)
		r.pdf.CellFormat(cellW, f.Height*0.55, entry.Value, "", 0, "CM", false, 0, "")
	}
	return nil
}

func (r *PDFRenderer) renderSKU(e layout.SKU) error {
	f := e.Frame()
	r.pdf.SetFont(r.font, "", e.FontSize)
	r.pdf.SetTextColor(130, 130, 130)
	r.pdf.SetXY(f.X, f.Y)
	r.pdf.CellFormat(f.Width, f.Height, e.Text, "", 0, "LM", false, 0, "")
	return nil
}

// ============ HELPER FUNCTIONS ============

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}

// tint pushes a channel toward white for light fills and pattern strokes.
func tint(c int) int {
	return 235 + c*20/255
}

func dataURLBytes(source string) []byte {
	s := source
	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}
