// Command preview rasterizes a generated sheet PDF back to PNG images,
// one per page, for eyeballing duplex alignment before committing paper.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

func main() {
	pdfPath := flag.String("pdf", "", "path to a sheet PDF")
	outDir := flag.String("out", ".", "directory for page PNGs")
	dpi := flag.Float64("dpi", 150, "rasterization resolution")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a sheet PDF path using -pdf flag")
		os.Exit(1)
	}

	doc, err := fitz.New(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(*pdfPath), filepath.Ext(*pdfPath))

	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		img, err := doc.ImageDPI(pageNum, *dpi)
		if err != nil {
			fmt.Printf("Error rendering page %d: %v\n", pageNum, err)
			os.Exit(1)
		}

		side := "front"
		if pageNum%2 == 1 {
			side = "back"
		}
		outPath := filepath.Join(*outDir, fmt.Sprintf("%s_page%d_%s.png", base, pageNum+1, side))

		if err := savePNG(img, outPath); err != nil {
			fmt.Printf("Error saving %s: %v\n", outPath, err)
			os.Exit(1)
		}
		fmt.Printf("Saved: %s\n", outPath)
	}
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
