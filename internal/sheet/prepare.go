package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	// Card faces are decoded through image.Decode.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/pkg/logger"
)

// PreparedCard is the outcome of preparing one card face. Image is always
// non-nil and always the exact bleed-expanded size; Fallback reports
// whether the blank-card path was taken, with Err holding the reason.
type PreparedCard struct {
	Image    *image.RGBA
	Fallback bool
	Err      error
}

// Preparer scales and crops raw card images to the exact card pixel size
// and composites them onto a black bleed border. Prepare never fails: any
// load or decode problem yields a blank fallback card instead.
type Preparer struct {
	cardW   int
	cardH   int
	bleedPx int
	log     *logger.Logger
}

func NewPreparer(m *layout.Model, log *logger.Logger) *Preparer {
	return &Preparer{
		cardW:   m.CardWidthPx,
		cardH:   m.CardHeightPx,
		bleedPx: m.BleedPx,
		log:     log,
	}
}

// FinalWidth is the width of every prepared card image, bleed included.
func (p *Preparer) FinalWidth() int { return p.cardW + 2*p.bleedPx }

// FinalHeight is the height of every prepared card image, bleed included.
func (p *Preparer) FinalHeight() int { return p.cardH + 2*p.bleedPx }

func (p *Preparer) Prepare(path string) PreparedCard {
	src, err := p.load(path)
	if err != nil {
		p.log.Warn("problem with %s: %v", path, err)
		return PreparedCard{Image: p.fallback(), Fallback: true, Err: err}
	}
	return PreparedCard{Image: p.compose(src)}
}

func (p *Preparer) load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("empty image")
	}
	return src, nil
}

// compose scales by the larger axis ratio so the source fully covers the
// card area, center-crops to the exact card size, then insets the result
// by the bleed width on a black canvas.
func (p *Preparer) compose(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	scaleW := float64(p.cardW) / float64(bounds.Dx())
	scaleH := float64(p.cardH) / float64(bounds.Dy())
	scale := math.Max(scaleW, scaleH)

	newW := int(math.Ceil(float64(bounds.Dx()) * scale))
	newH := int(math.Ceil(float64(bounds.Dy()) * scale))
	if newW < p.cardW {
		newW = p.cardW
	}
	if newH < p.cardH {
		newH = p.cardH
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Src, nil)

	left := (newW - p.cardW) / 2
	top := (newH - p.cardH) / 2

	final := p.blackCanvas()
	cardRect := image.Rect(p.bleedPx, p.bleedPx, p.bleedPx+p.cardW, p.bleedPx+p.cardH)
	draw.Draw(final, cardRect, scaled, image.Pt(left, top), draw.Src)
	return final
}

// fallback is a black canvas with a plain white card-sized rectangle
// centered in it.
func (p *Preparer) fallback() *image.RGBA {
	final := p.blackCanvas()
	cardRect := image.Rect(p.bleedPx, p.bleedPx, p.bleedPx+p.cardW, p.bleedPx+p.cardH)
	draw.Draw(final, cardRect, image.NewUniform(color.White), image.Point{}, draw.Src)
	return final
}

func (p *Preparer) blackCanvas() *image.RGBA {
	final := image.NewRGBA(image.Rect(0, 0, p.FinalWidth(), p.FinalHeight()))
	draw.Draw(final, final.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return final
}
