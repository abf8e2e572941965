// Package pipeline runs the whole dossier build: resolve the officer,
// walk the appointment pages, enrich every appointment, and render the
// narrative and spreadsheet outputs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/companywatch/dossier/internal/appointments"
	"github.com/companywatch/dossier/internal/audit"
	"github.com/companywatch/dossier/internal/config"
	"github.com/companywatch/dossier/internal/enrich"
	"github.com/companywatch/dossier/internal/identity"
	"github.com/companywatch/dossier/internal/models"
	"github.com/companywatch/dossier/internal/ocr"
	"github.com/companywatch/dossier/internal/registry"
	"github.com/companywatch/dossier/internal/report"
	"github.com/companywatch/dossier/internal/shareholders"
	"github.com/companywatch/dossier/internal/store"
)

// ErrAmbiguousIdentity is returned when several officer records match
// exactly and the configuration forbids processing them as a union.
var ErrAmbiguousIdentity = errors.New("pipeline: multiple officer records match name and date of birth")

// Summary is what the CLI reports after a run.
type Summary struct {
	Identities    int
	Appointments  int
	Enriched      int
	Failed        int
	NarrativePath string
	WorkbookPath  string
}

type Pipeline struct {
	cfg   *config.Config
	reg   *registry.Client
	cache *store.Store
	runID string
}

func New(cfg *config.Config, reg *registry.Client, cache *store.Store, runID string) *Pipeline {
	return &Pipeline{cfg: cfg, reg: reg, cache: cache, runID: runID}
}

// Run executes the pipeline end to end. The report is always produced,
// possibly empty or partially annotated with sentinel values; the run
// aborts early only on identity-resolution failure or on a refused
// ambiguous identity.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	tracer := otel.Tracer("dossier/pipeline")
	log := logrus.WithField("run_id", p.runID)

	officerDir := filepath.Join(p.cfg.OutputDir, p.cfg.OfficerName)
	sourcesDir := filepath.Join(officerDir, "sources")
	if err := os.MkdirAll(sourcesDir, 0755); err != nil {
		return nil, fmt.Errorf("create output folders: %w", err)
	}

	ctx, resolveSpan := tracer.Start(ctx, "resolve")
	result, err := identity.Resolve(ctx, p.reg, p.cfg.OfficerName, p.cfg.OfficerDOB)
	resolveSpan.End()
	if err != nil {
		return nil, err
	}
	if result.Multiple() && !p.cfg.AllowMultipleMatches {
		return nil, fmt.Errorf("%w: %d records for %q", ErrAmbiguousIdentity, len(result.Identities), p.cfg.OfficerName)
	}
	if result.NoMatch() {
		log.WithField("officer", p.cfg.OfficerName).Warn("no exact officer match; writing empty report")
	}
	if result.Multiple() {
		log.WithField("matches", len(result.Identities)).
			Warn("multiple officer records match; processing the union of their appointments")
	}

	summary := &Summary{Identities: len(result.Identities)}

	ctx, pageSpan := tracer.Start(ctx, "paginate")
	merged := make([]models.Appointment, 0)
	seen := make(map[string]bool)
	for _, officer := range result.Identities {
		cache := appointments.NewPageCache(officerDir, p.cfg.OfficerName)
		appts, err := appointments.FetchAll(ctx, p.reg, cache, officer)
		if err != nil {
			// Pagination failure aborts this identity only.
			log.WithError(err).WithField("officer", officer.SelfLink).Error("pagination failed")
			continue
		}
		for _, a := range appts {
			if seen[a.Key()] {
				continue
			}
			seen[a.Key()] = true
			merged = append(merged, a)
		}
	}
	pageSpan.SetAttributes(attribute.Int("appointments", len(merged)))
	pageSpan.End()
	summary.Appointments = len(merged)

	extractor := shareholders.NewExtractor(p.reg, ocr.NewTesseract(p.cfg.TesseractBin), sourcesDir)
	enricher := &enrich.Enricher{
		OfficerName: p.cfg.OfficerName,
		Companies:   p.reg,
		Ownership:   extractor,
		Cache:       p.cache,
	}

	ctx, enrichSpan := tracer.Start(ctx, "enrich")
	records := make([]models.EnrichedRecord, 0, len(merged))
	for _, a := range merged {
		rec, err := enricher.Enrich(ctx, a)
		if err != nil {
			// Fatal to this appointment only; the batch continues.
			log.WithError(err).WithFields(logrus.Fields{
				"company_number": a.CompanyNumber,
				"stage":          "enrich",
			}).Error("appointment enrichment failed")
			summary.Failed++
			continue
		}
		records = append(records, *rec)
		summary.Enriched++

		if err := audit.ArchiveCompany(ctx, p.reg, sourcesDir, a.CompanyNumber, a.CompanyName); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"company_number": a.CompanyNumber,
				"stage":          "audit",
			}).Warn("company snapshot failed")
		}
	}
	enrichSpan.End()

	_, renderSpan := tracer.Start(ctx, "render")
	defer renderSpan.End()
	summary.NarrativePath = filepath.Join(officerDir, fmt.Sprintf("Associated companies for %s.txt", p.cfg.OfficerName))
	summary.WorkbookPath = filepath.Join(officerDir, fmt.Sprintf("Associated companies for %s.xlsx", p.cfg.OfficerName))
	if err := report.WriteNarrative(summary.NarrativePath, p.cfg.OfficerName, records); err != nil {
		return nil, fmt.Errorf("write narrative: %w", err)
	}
	if err := report.WriteWorkbook(summary.WorkbookPath, records); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return summary, nil
}
