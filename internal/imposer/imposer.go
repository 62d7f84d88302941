// Package imposer drives the batch pipeline: aggregate card sources,
// partition the pair list into sheets, and emit each sheet's duplex PDF
// and cutting guide.
package imposer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mkarlsen/cardpress/internal/cards"
	"github.com/mkarlsen/cardpress/internal/cutting"
	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/internal/pdfout"
	"github.com/mkarlsen/cardpress/internal/sheet"
	"github.com/mkarlsen/cardpress/pkg/logger"
)

// ErrNoCards aborts the run: with an empty merged pair list there is
// nothing to lay out.
var ErrNoCards = errors.New("no cards found in any source")

type Sources struct {
	NormalDir    string
	DoubleDir    string
	BackfacePath string
}

type Report struct {
	SingleBackface int
	DoubleFaced    int
	TotalCards     int
	SheetCount     int
	StartTime      time.Time
	EndTime        time.Time
}

func (r *Report) Print(log *logger.Logger) {
	log.Info("Run summary:")
	log.Info("- Single-backface cards: %d", r.SingleBackface)
	log.Info("- Double-faced cards: %d", r.DoubleFaced)
	log.Info("- Total cards: %d", r.TotalCards)
	log.Info("- Sheets written: %d", r.SheetCount)
	log.Info("- Elapsed: %s", r.EndTime.Sub(r.StartTime).Round(time.Millisecond))
}

type Service struct {
	model     *layout.Model
	collector *cards.Collector
	builder   *sheet.Builder
	writer    *pdfout.Writer
	generator *cutting.Generator
	outputDir string
	log       *logger.Logger
}

func New(m *layout.Model, collector *cards.Collector, builder *sheet.Builder,
	writer *pdfout.Writer, generator *cutting.Generator, outputDir string,
	log *logger.Logger) *Service {

	return &Service{
		model:     m,
		collector: collector,
		builder:   builder,
		writer:    writer,
		generator: generator,
		outputDir: outputDir,
		log:       log,
	}
}

// Run executes one full imposition pass. Per-image failures are absorbed
// by the preparer's fallback card; only an empty merged card list is
// fatal.
func (s *Service) Run(ctx context.Context, sources Sources) (*Report, error) {
	report := &Report{StartTime: time.Now()}

	s.log.Info("Looking for cards...")
	single, err := s.collector.CollectSingleBackface(ctx, sources.NormalDir, sources.BackfacePath)
	if err != nil {
		return report, fmt.Errorf("collecting single-backface cards: %w", err)
	}
	double, err := s.collector.CollectDoubleFaced(ctx, sources.DoubleDir)
	if err != nil {
		return report, fmt.Errorf("collecting double-faced cards: %w", err)
	}

	report.SingleBackface = len(single)
	report.DoubleFaced = len(double)
	s.log.Info("Found %d single-backface cards", len(single))
	s.log.Info("Found %d double-faced cards", len(double))

	pairs := cards.Merge(single, double)
	report.TotalCards = len(pairs)
	if len(pairs) == 0 {
		return report, ErrNoCards
	}

	sheetCount := s.model.SheetCount(len(pairs))
	s.log.Info("Total: %d cards across %d sheets", len(pairs), sheetCount)

	for i := 0; i < sheetCount; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		s.log.Info("Making sheet %d of %d...", i+1, sheetCount)

		front := s.builder.Build(pairs, i, false)
		back := s.builder.Build(pairs, i, true)

		pdfPath, err := s.writer.WriteSheet(front, back, i)
		if err != nil {
			return report, fmt.Errorf("sheet %d: %w", i, err)
		}

		guide := s.generator.Build(i)
		guidePath := filepath.Join(s.outputDir, cutting.FileName(i))
		if err := s.generator.WriteJDF(guide, guidePath); err != nil {
			return report, fmt.Errorf("sheet %d: %w", i, err)
		}

		s.log.Info("  Saved: %s", filepath.Base(pdfPath))
		s.log.Info("  Saved: %s", filepath.Base(guidePath))
		report.SheetCount++
	}

	report.EndTime = time.Now()
	return report, nil
}
