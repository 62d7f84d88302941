// Package pdfout assembles the per-sheet duplex PDF: page 1 front canvas,
// page 2 mirrored back canvas, both filling a page of the paper's physical
// size so the embedded images carry the configured resolution.
package pdfout

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/pkg/logger"
)

const pointsPerInch = 72

type Writer struct {
	model     *layout.Model
	outputDir string
	tempDir   string
	log       *logger.Logger
}

func NewWriter(m *layout.Model, outputDir string, log *logger.Logger) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "cardpress-sheets-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Writer{
		model:     m,
		outputDir: outputDir,
		tempDir:   tempDir,
		log:       log,
	}, nil
}

// WriteSheet encodes the two canvases and imports them as the two pages of
// sheet_NN.pdf. Returns the written file path.
func (w *Writer) WriteSheet(front, back image.Image, sheetIndex int) (string, error) {
	frontPath := filepath.Join(w.tempDir, fmt.Sprintf("sheet_%02d_front.png", sheetIndex+1))
	backPath := filepath.Join(w.tempDir, fmt.Sprintf("sheet_%02d_back.png", sheetIndex+1))

	if err := saveImage(front, frontPath); err != nil {
		return "", fmt.Errorf("failed to save front canvas for sheet %d: %w", sheetIndex, err)
	}
	if err := saveImage(back, backPath); err != nil {
		return "", fmt.Errorf("failed to save back canvas for sheet %d: %w", sheetIndex, err)
	}

	widthPt := w.model.Spec.PaperWidthMM / layout.MMPerInch * pointsPerInch
	heightPt := w.model.Spec.PaperHeightMM / layout.MMPerInch * pointsPerInch

	imp, err := api.Import(fmt.Sprintf("dim:%.2f %.2f, pos:full", widthPt, heightPt), types.POINTS)
	if err != nil {
		return "", fmt.Errorf("failed to configure page import: %w", err)
	}

	outPath := filepath.Join(w.outputDir, FileName(sheetIndex))
	if err := api.ImportImagesFile([]string{frontPath, backPath}, outPath, imp, nil); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	w.log.Debug("wrote %s", outPath)
	return outPath, nil
}

func (w *Writer) Cleanup() error {
	return os.RemoveAll(w.tempDir)
}

// FileName returns the per-sheet PDF filename, 1-based and zero-padded.
func FileName(sheetIndex int) string {
	return fmt.Sprintf("sheet_%02d.pdf", sheetIndex+1)
}

func saveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
