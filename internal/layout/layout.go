// Package layout derives the pixel and millimeter geometry shared by the
// sheet builder and the cutting-guide generator. Both consume the same
// Model instance, which is what keeps rendered geometry and cut geometry
// in agreement.
package layout

import (
	"fmt"
	"math"

	"github.com/mkarlsen/cardpress/pkg/logger"
	"github.com/mkarlsen/cardpress/pkg/models"
)

const MMPerInch = 25.4

// ToPixels converts a length in millimeters to a pixel count at the given
// resolution, rounding down.
func ToPixels(mm float64, dpi int) int {
	return int(math.Floor(mm * float64(dpi) / MMPerInch))
}

// ToMillimeters is the inverse conversion, used when comparing rendered
// pixel positions against physical cut coordinates.
func ToMillimeters(px int, dpi int) float64 {
	return float64(px) * MMPerInch / float64(dpi)
}

// Model holds every derived dimension for one imposition run. It is
// immutable once computed.
//
// The bleed-inclusive card size is converted from millimeters in one step,
// ToPixels(card + 2*bleed), while BleedPx is converted independently. The
// two conventions can differ by a pixel; every consumer works from these
// fields rather than re-deriving them, so the choice is applied uniformly.
type Model struct {
	Spec models.PhysicalSpec
	DPI  int

	Columns       int
	Rows          int
	CardsPerSheet int

	PaperWidthPx  int
	PaperHeightPx int
	CardWidthPx   int
	CardHeightPx  int
	BleedPx       int

	CardBleedWidthMM  float64
	CardBleedHeightMM float64
	CardBleedWidthPx  int
	CardBleedHeightPx int

	// GridFits is false when the grid footprint exceeds the paper in
	// either dimension. Advisory only; layout proceeds regardless.
	GridFits bool
}

func New(spec models.PhysicalSpec, dpi, columns, rows int, log *logger.Logger) (*Model, error) {
	if spec.PaperWidthMM <= 0 || spec.PaperHeightMM <= 0 {
		return nil, fmt.Errorf("invalid paper size: %.2fx%.2fmm", spec.PaperWidthMM, spec.PaperHeightMM)
	}
	if spec.CardWidthMM <= 0 || spec.CardHeightMM <= 0 {
		return nil, fmt.Errorf("invalid card size: %.2fx%.2fmm", spec.CardWidthMM, spec.CardHeightMM)
	}
	if spec.BleedMM <= 0 {
		return nil, fmt.Errorf("invalid bleed: %.2fmm", spec.BleedMM)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid resolution: %d dpi", dpi)
	}
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid grid: %dx%d", columns, rows)
	}

	m := &Model{
		Spec:              spec,
		DPI:               dpi,
		Columns:           columns,
		Rows:              rows,
		CardsPerSheet:     columns * rows,
		PaperWidthPx:      ToPixels(spec.PaperWidthMM, dpi),
		PaperHeightPx:     ToPixels(spec.PaperHeightMM, dpi),
		CardWidthPx:       ToPixels(spec.CardWidthMM, dpi),
		CardHeightPx:      ToPixels(spec.CardHeightMM, dpi),
		BleedPx:           ToPixels(spec.BleedMM, dpi),
		CardBleedWidthMM:  spec.CardWidthMM + 2*spec.BleedMM,
		CardBleedHeightMM: spec.CardHeightMM + 2*spec.BleedMM,
	}
	m.CardBleedWidthPx = ToPixels(m.CardBleedWidthMM, dpi)
	m.CardBleedHeightPx = ToPixels(m.CardBleedHeightMM, dpi)

	neededW := float64(columns) * m.CardBleedWidthMM
	neededH := float64(rows) * m.CardBleedHeightMM
	m.GridFits = neededW <= spec.PaperWidthMM && neededH <= spec.PaperHeightMM

	log.Info("Paper: %.0fx%.0fmm at %d DPI", spec.PaperWidthMM, spec.PaperHeightMM, dpi)
	log.Info("Cards: %.0fx%.0fmm + %.0fmm bleed", spec.CardWidthMM, spec.CardHeightMM, spec.BleedMM)
	log.Info("Layout: %dx%d = %d cards per sheet", columns, rows, m.CardsPerSheet)
	log.Info("Space used: %.0fx%.0fmm", neededW, neededH)

	if !m.GridFits {
		log.Warn("card grid (%.0fx%.0fmm) exceeds paper (%.0fx%.0fmm)",
			neededW, neededH, spec.PaperWidthMM, spec.PaperHeightMM)
	}

	return m, nil
}

// GridOffsetMM is the top-left position of the centered card grid, in
// millimeters. Identical for front and back sheets; the cutting guide
// works from this directly.
func (m *Model) GridOffsetMM() (x, y float64) {
	x = (m.Spec.PaperWidthMM - float64(m.Columns)*m.CardBleedWidthMM) / 2
	y = (m.Spec.PaperHeightMM - float64(m.Rows)*m.CardBleedHeightMM) / 2
	return x, y
}

// SlotOriginPx is the top-left pixel of the bleed-inclusive footprint for
// the grid cell at (col, row). The position is accumulated in millimeters
// and converted once, rounding to the nearest pixel, so slot positions
// never drift from the cut coordinates by more than a pixel no matter how
// far from the origin the cell sits.
func (m *Model) SlotOriginPx(col, row int) (x, y int) {
	offsetX, offsetY := m.GridOffsetMM()
	x = roundToPixels(offsetX+float64(col)*m.CardBleedWidthMM, m.DPI)
	y = roundToPixels(offsetY+float64(row)*m.CardBleedHeightMM, m.DPI)
	return x, y
}

func roundToPixels(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / MMPerInch))
}

// SheetCount returns how many sheets are needed for totalCards.
func (m *Model) SheetCount(totalCards int) int {
	return (totalCards + m.CardsPerSheet - 1) / m.CardsPerSheet
}

// SliceBounds returns the half-open range of global card indices placed on
// the given sheet. The last sheet may be partially filled.
func (m *Model) SliceBounds(sheetIndex, totalCards int) (start, end int) {
	start = sheetIndex * m.CardsPerSheet
	end = start + m.CardsPerSheet
	if end > totalCards {
		end = totalCards
	}
	return start, end
}
