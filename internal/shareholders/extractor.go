// Package shareholders recovers a company's shareholder breakdown from
// the OCR text of its latest confirmation-statement-with-updates filing.
package shareholders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/companywatch/dossier/internal/ocr"
	"github.com/companywatch/dossier/internal/pdfimage"
	"github.com/companywatch/dossier/internal/registry"
)

const withUpdatesNeedle = "confirmation-statement-with-updates"

// FilingAPI is the slice of the registry client the extractor uses.
type FilingAPI interface {
	ConfirmationStatements(ctx context.Context, companyNumber string) ([]registry.FilingHistoryItem, error)
	DocumentLink(ctx context.Context, metadataLink string) (string, error)
	Document(ctx context.Context, documentLink string) ([]byte, error)
}

// Extractor fetches a filing, renders it to text, and extracts the
// ownership statement.
type Extractor struct {
	Filings    FilingAPI
	Engine     ocr.Engine
	SourcesDir string
}

func NewExtractor(filings FilingAPI, engine ocr.Engine, sourcesDir string) *Extractor {
	return &Extractor{Filings: filings, Engine: engine, SourcesDir: sourcesDir}
}

// OwnershipStatement produces the shareholder statement for one company.
// Missing filings, an absent shareholder table, and a zero share total
// all degrade to the no-ownership sentence; only transport and
// collaborator failures surface as errors.
func (e *Extractor) OwnershipStatement(ctx context.Context, companyNumber, companyName string) (string, error) {
	filings, err := e.Filings.ConfirmationStatements(ctx, companyNumber)
	if err != nil {
		return "", fmt.Errorf("filing history %s: %w", companyNumber, err)
	}
	var selected *registry.FilingHistoryItem
	for i := range filings {
		if strings.Contains(strings.ToLower(filings[i].Description), withUpdatesNeedle) {
			selected = &filings[i]
			break
		}
	}
	if selected == nil {
		logrus.WithField("company_number", companyNumber).Debug("no with-updates confirmation statement")
		return NoOwnershipStatement, nil
	}

	docLink, err := e.Filings.DocumentLink(ctx, selected.Links.DocumentMetadata)
	if err != nil {
		return "", fmt.Errorf("document metadata %s: %w", companyNumber, err)
	}
	pdfBytes, err := e.Filings.Document(ctx, docLink)
	if err != nil {
		return "", fmt.Errorf("document download %s: %w", companyNumber, err)
	}

	text, err := e.filingText(ctx, companyNumber, companyName, pdfBytes)
	if err != nil {
		return "", err
	}
	return StatementFromText(text), nil
}

// filingText archives the PDF under the sources dir, rasterizes and
// stitches its pages, and runs the composite through the OCR engine.
func (e *Extractor) filingText(ctx context.Context, companyNumber, companyName string, pdfBytes []byte) (string, error) {
	if err := os.MkdirAll(e.SourcesDir, 0755); err != nil {
		return "", err
	}
	pdfPath := filepath.Join(e.SourcesDir, companyName+" confirmation statement.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0600); err != nil {
		return "", fmt.Errorf("archive filing %s: %w", companyNumber, err)
	}

	workDir, err := os.MkdirTemp("", "dossier-ocr-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(workDir)

	pages, err := pdfimage.Rasterize(ctx, pdfPath, workDir)
	if err != nil {
		return "", fmt.Errorf("rasterize %s: %w", companyNumber, err)
	}
	composite := filepath.Join(workDir, "composite.png")
	if err := pdfimage.Stitch(pages, composite); err != nil {
		return "", fmt.Errorf("stitch %s: %w", companyNumber, err)
	}
	text, err := e.Engine.Recognize(ctx, composite)
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", companyNumber, err)
	}
	return text, nil
}

// StatementFromText runs the pure text pipeline: normalize, check the
// marker, extract share lines, compute percentages, render.
func StatementFromText(raw string) string {
	text := Normalize(raw)
	if !HasShareholderTable(text) {
		return NoOwnershipStatement
	}
	shares := Percentages(Extract(text))
	return Statement(shares)
}
