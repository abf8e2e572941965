// Package pdfimage rasterizes PDF pages to images via the external
// pdftoppm binary and stitches them into one tall composite.
package pdfimage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const rasterDPI = 250

var pdftoppmBin = "pdftoppm"

func init() {
	if p := os.Getenv("DOSSIER_PDFTOPPM_BIN"); p != "" {
		pdftoppmBin = p
	}
}

// SetBinary overrides the pdftoppm path (config takes precedence over
// the env default).
func SetBinary(p string) {
	if p != "" {
		pdftoppmBin = p
	}
}

// Rasterize renders every page of the PDF to a PNG under workDir and
// returns the page image paths in page order.
func Rasterize(ctx context.Context, pdfPath, workDir string) ([]string, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, err
	}
	prefix := filepath.Join(workDir, "page")
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(ctx, pdftoppmBin, "-png", "-r", fmt.Sprint(rasterDPI), pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logrus.WithError(err).WithField("stderr", stderr.String()).Error("pdftoppm failed")
		return nil, fmt.Errorf("pdftoppm %s: %w", pdfPath, err)
	}
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm %s: no pages produced", pdfPath)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)
	return matches, nil
}

// Stitch vertically concatenates the page images into one composite PNG
// at outPath, preserving page order and the first page's width.
func Stitch(pagePaths []string, outPath string) error {
	if len(pagePaths) == 0 {
		return fmt.Errorf("stitch: no pages")
	}
	pages := make([]image.Image, 0, len(pagePaths))
	width, height := 0, 0
	for _, p := range pagePaths {
		img, err := loadPNG(p)
		if err != nil {
			return fmt.Errorf("stitch: %w", err)
		}
		if width == 0 {
			width = img.Bounds().Dx()
		}
		height += img.Bounds().Dy()
		pages = append(pages, img)
	}
	composite := image.NewRGBA(image.Rect(0, 0, width, height))
	yOffset := 0
	for _, img := range pages {
		b := img.Bounds()
		dst := image.Rect(0, yOffset, b.Dx(), yOffset+b.Dy())
		draw.Draw(composite, dst, img, b.Min, draw.Src)
		yOffset += b.Dy()
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, composite)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
