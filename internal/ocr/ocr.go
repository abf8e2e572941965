// Package ocr wraps the external text-recognition collaborator. The
// engine sits behind an interface so extraction logic never depends on
// which recognizer produced the text.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine turns a page image into raw text.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// engineSem limits concurrent recognizer processes; a multi-thousand
// pixel composite makes tesseract memory-hungry.
var engineSem = make(chan struct{}, 2)

// Tesseract shells out to the tesseract binary.
type Tesseract struct {
	Bin string
}

// NewTesseract builds an engine using bin, the DOSSIER_TESSERACT_BIN
// env var, or plain "tesseract" from PATH, in that order.
func NewTesseract(bin string) *Tesseract {
	if bin == "" {
		bin = os.Getenv("DOSSIER_TESSERACT_BIN")
	}
	if bin == "" {
		bin = "tesseract"
	}
	return &Tesseract{Bin: bin}
}

// Recognize runs tesseract over the image and returns stdout. Stderr is
// logged on failure but never mixed into the returned text.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	engineSem <- struct{}{}
	defer func() { <-engineSem }()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(ctx, t.Bin, imagePath, "stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logrus.WithError(err).WithField("stderr", stderr.String()).Error("tesseract failed")
		return "", fmt.Errorf("tesseract %s: %w", imagePath, err)
	}
	return stdout.String(), nil
}
