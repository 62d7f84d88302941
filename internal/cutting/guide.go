// Package cutting computes the physical cut geometry for each sheet and
// serializes it as a JDF cutting document. Geometry depends only on the
// layout model and the sheet index, never on card image content.
package cutting

import (
	"fmt"
	"time"

	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/pkg/models"
)

// Guide is the full set of cut rectangles for one sheet, one per grid
// cell whether or not the cell holds a card.
type Guide struct {
	SheetIndex int
	Rects      []models.CutRect
}

type Generator struct {
	model *layout.Model
	now   func() time.Time
}

type Option func(*Generator)

// WithClock overrides the timestamp source used in document metadata.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func NewGenerator(m *layout.Model, options ...Option) *Generator {
	g := &Generator{
		model: m,
		now:   time.Now,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Build computes the finished-card rectangle for every grid cell. The grid
// offset is derived in millimeters, mirroring the pixel centering of the
// sheet builder; the bleed margin is excluded since the cut line sits at
// the trim edge.
func (g *Generator) Build(sheetIndex int) Guide {
	m := g.model
	offsetX, offsetY := m.GridOffsetMM()

	rects := make([]models.CutRect, 0, m.CardsPerSheet)
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Columns; col++ {
			cardX := offsetX + float64(col)*m.CardBleedWidthMM + m.Spec.BleedMM
			cardY := offsetY + float64(row)*m.CardBleedHeightMM + m.Spec.BleedMM

			rects = append(rects, models.CutRect{
				SheetIndex: sheetIndex,
				Col:        col,
				Row:        row,
				LLxMM:      cardX,
				LLyMM:      cardY,
				URxMM:      cardX + m.Spec.CardWidthMM,
				URyMM:      cardY + m.Spec.CardHeightMM,
			})
		}
	}

	return Guide{SheetIndex: sheetIndex, Rects: rects}
}

// FileName returns the per-sheet guide filename, 1-based and zero-padded.
func FileName(sheetIndex int) string {
	return fmt.Sprintf("sheet_%02d_cutting.jdf", sheetIndex+1)
}
