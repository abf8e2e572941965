package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/companywatch/dossier/internal/config"
	"github.com/companywatch/dossier/internal/pdfimage"
	"github.com/companywatch/dossier/internal/pipeline"
	"github.com/companywatch/dossier/internal/registry"
	"github.com/companywatch/dossier/internal/store"
)

func init() {
	godotenv.Load(".env")
}

func main() {
	officerName := flag.String("officer", "", "Officer full name (overrides OFFICER_NAME)")
	officerDOB := flag.String("dob", "", "Officer birth year-month YYYY-MM (overrides OFFICER_DOB)")
	outputDir := flag.String("out", "", "Output directory (overrides DOSSIER_OUTPUT_DIR)")
	traceOut := flag.Bool("trace", false, "Print pipeline trace spans to stderr")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if *officerName != "" {
		os.Setenv("OFFICER_NAME", *officerName)
	}
	if *officerDOB != "" {
		os.Setenv("OFFICER_DOB", *officerDOB)
	}
	if *outputDir != "" {
		os.Setenv("DOSSIER_OUTPUT_DIR", *outputDir)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	pdfimage.SetBinary(cfg.PdftoppmBin)

	ctx := context.Background()
	if *traceOut {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Trace exporter error: %v\n", err)
			os.Exit(1)
		}
		provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(provider)
		defer provider.Shutdown(ctx)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Could not create data dir: %v\n", err)
		os.Exit(1)
	}
	cache, err := store.Open(filepath.Join(cfg.DataDir, "company_cache.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open company cache: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	runID := uuid.NewString()
	logrus.WithFields(logrus.Fields{"run_id": runID, "officer": cfg.OfficerName}).Info("Generating dossier")

	start := time.Now()
	p := pipeline.New(cfg, registry.New(cfg.APIKey), cache, runID)
	summary, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dossier run failed: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	fmt.Printf("Matched %d officer record(s), %d appointment(s): %d enriched, %d failed.\n",
		summary.Identities, summary.Appointments, summary.Enriched, summary.Failed)
	fmt.Printf("Narrative: %s\n", summary.NarrativePath)
	fmt.Printf("Workbook:  %s\n", summary.WorkbookPath)
	fmt.Printf("Completed! Duration: %d minutes %d seconds\n", minutes, seconds)
}
