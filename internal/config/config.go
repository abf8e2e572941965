package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load(".env")
}

// Config is the process-wide configuration, loaded once at start and
// read-only afterwards.
type Config struct {
	APIKey      string `env:"COMPANY_HOUSE_API_KEY"`
	OfficerName string `env:"OFFICER_NAME"`
	// OfficerDOB is the target birth year-month, "YYYY-MM". A full
	// "YYYY-MM-DD" is accepted and truncated.
	OfficerDOB string `env:"OFFICER_DOB"`
	OutputDir  string `env:"DOSSIER_OUTPUT_DIR" envDefault:"."`
	DataDir    string `env:"DOSSIER_DATA_DIR" envDefault:"data"`

	// AllowMultipleMatches controls what happens when more than one
	// officer record matches name+DOB exactly: true processes the union
	// of their appointments, false refuses the run.
	AllowMultipleMatches bool `env:"ALLOW_MULTIPLE_MATCHES" envDefault:"true"`

	// Overrides for the external rasterizer/OCR binaries.
	PdftoppmBin  string `env:"DOSSIER_PDFTOPPM_BIN"`
	TesseractBin string `env:"DOSSIER_TESSERACT_BIN"`
}

// Load parses the environment into a Config and validates the fields the
// pipeline cannot run without.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.OfficerName = strings.TrimSpace(cfg.OfficerName)
	cfg.OfficerDOB = strings.TrimSpace(cfg.OfficerDOB)
	if len(cfg.OfficerDOB) > 7 {
		cfg.OfficerDOB = cfg.OfficerDOB[:7]
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("COMPANY_HOUSE_API_KEY is required")
	}
	if cfg.OfficerName == "" {
		return nil, fmt.Errorf("OFFICER_NAME is required")
	}
	if cfg.OfficerDOB == "" {
		return nil, fmt.Errorf("OFFICER_DOB is required (YYYY-MM)")
	}
	return &cfg, nil
}
