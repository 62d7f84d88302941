package models

// PhysicalSpec holds the physical print dimensions, all in millimeters.
type PhysicalSpec struct {
	PaperWidthMM  float64
	PaperHeightMM float64
	CardWidthMM   float64
	CardHeightMM  float64
	BleedMM       float64
}

// CardPair references the front and back image files for one card.
// Pairs are immutable once formed; their position in the merged list
// determines sheet and slot assignment.
type CardPair struct {
	Front string
	Back  string
}

// CutRect is the finished (non-bleed) card rectangle for one grid cell,
// in millimeters. LL is the lower-left corner, UR the upper-right.
type CutRect struct {
	SheetIndex int
	Col        int
	Row        int
	LLxMM      float64
	LLyMM      float64
	URxMM      float64
	URyMM      float64
}

func (r CutRect) CenterMM() (x, y float64) {
	return (r.LLxMM + r.URxMM) / 2, (r.LLyMM + r.URyMM) / 2
}

func (r CutRect) SizeMM() (w, h float64) {
	return r.URxMM - r.LLxMM, r.URyMM - r.LLyMM
}
