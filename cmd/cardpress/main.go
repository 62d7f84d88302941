package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mkarlsen/cardpress/internal/cards"
	"github.com/mkarlsen/cardpress/internal/config"
	"github.com/mkarlsen/cardpress/internal/cutting"
	"github.com/mkarlsen/cardpress/internal/imposer"
	"github.com/mkarlsen/cardpress/internal/layout"
	"github.com/mkarlsen/cardpress/internal/pdfout"
	"github.com/mkarlsen/cardpress/internal/sheet"
	"github.com/mkarlsen/cardpress/pkg/logger"
	"github.com/mkarlsen/cardpress/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	normalDir := flag.String("normal-dir", "", "directory of single-backface card fronts (overrides config)")
	doubleDir := flag.String("double-dir", "", "directory of double-faced card sets (overrides config)")
	backface := flag.String("backface", "", "shared backface image (overrides config)")
	outputDir := flag.String("output-dir", "", "directory for sheet PDFs and cutting guides (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(
		logger.WithPrefix("[cardpress] "),
	)
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	if *normalDir != "" {
		cfg.NormalDir = *normalDir
	}
	if *doubleDir != "" {
		cfg.DoubleDir = *doubleDir
	}
	if *backface != "" {
		cfg.BackfacePath = *backface
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	model, err := layout.New(cfg.PhysicalSpec(), cfg.DPI, cfg.Grid.Columns, cfg.Grid.Rows, log)
	if err != nil {
		log.Fatal("Error computing layout: %v", err)
	}

	writer, err := pdfout.NewWriter(model, cfg.OutputDir, log)
	if err != nil {
		log.Fatal("Error initializing PDF writer: %v", err)
	}
	defer writer.Cleanup()

	collector := cards.NewCollector(cards.NewDirLister(), log)
	preparer := sheet.NewPreparer(model, log)
	builder := sheet.NewBuilder(model, preparer, log)
	generator := cutting.NewGenerator(model)

	service := imposer.New(model, collector, builder, writer, generator, cfg.OutputDir, log)

	report, err := service.Run(context.Background(), imposer.Sources{
		NormalDir:    cfg.NormalDir,
		DoubleDir:    cfg.DoubleDir,
		BackfacePath: cfg.BackfacePath,
	})
	if err != nil {
		if errors.Is(err, imposer.ErrNoCards) {
			log.Fatal("No cards found. Check %s, %s and %s.",
				cfg.NormalDir, cfg.DoubleDir, cfg.BackfacePath)
		}
		log.Fatal("Error generating sheets: %v", err)
	}

	report.Print(log)
	log.Info("All done! Check the %q folder.", cfg.OutputDir)
	log.Info("To print: print page 1, flip the paper, print page 2.")
	log.Info("Blue lines show the division between cards.")
}

// loadConfig falls back to built-in defaults when the default config file
// is simply absent; an explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && os.IsNotExist(err) && path == "config.yaml" {
		return config.Default(), nil
	}
	return cfg, err
}
