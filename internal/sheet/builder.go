// Package sheet renders one side of one printed sheet: a white paper-sized
// canvas with a centered grid of bleed-bordered card images.
package sheet

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/pkg/logger"
	"github.com/mkarlsen/cardpress/pkg/models"
)

// borderColor marks each placed card's bleed footprint for visual
// inspection. Reference only, not part of cut geometry.
var borderColor = color.RGBA{B: 255, A: 255}

type Builder struct {
	model    *layout.Model
	preparer *Preparer
	log      *logger.Logger
}

func NewBuilder(m *layout.Model, preparer *Preparer, log *logger.Logger) *Builder {
	return &Builder{
		model:    m,
		preparer: preparer,
		log:      log,
	}
}

// Build renders the front or back canvas for the given sheet index. On the
// back side the column order is mirrored so that flipping the printed sheet
// along its vertical axis lands each back exactly behind its front.
// Unfilled slots on the last sheet stay white.
func (b *Builder) Build(pairs []models.CardPair, sheetIndex int, back bool) *image.RGBA {
	m := b.model

	canvas := image.NewRGBA(image.Rect(0, 0, m.PaperWidthPx, m.PaperHeightPx))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	start, end := m.SliceBounds(sheetIndex, len(pairs))

	for i := start; i < end; i++ {
		slot := i - start
		row := slot / m.Columns
		col := slot % m.Columns
		if back {
			col = m.Columns - 1 - col
		}

		x, y := m.SlotOriginPx(col, row)

		path := pairs[i].Front
		if back {
			path = pairs[i].Back
		}

		prepared := b.preparer.Prepare(path)
		if prepared.Fallback {
			b.log.Debug("sheet %d slot %d: blank card substituted for %s", sheetIndex, slot, path)
		}

		bounds := prepared.Image.Bounds()
		draw.Draw(canvas, image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy()),
			prepared.Image, bounds.Min, draw.Src)
		drawOutline(canvas, image.Rect(x, y, x+m.CardBleedWidthPx, y+m.CardBleedHeightPx))
	}

	return canvas
}

func drawOutline(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, borderColor)
		img.Set(x, r.Max.Y-1, borderColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, borderColor)
		img.Set(r.Max.X-1, y, borderColor)
	}
}
