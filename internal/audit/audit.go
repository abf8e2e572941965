// Package audit archives the public-record source material backing a
// dossier so every statement in the report can be traced to a snapshot.
package audit

import (
	"context"
	"os"
	"path/filepath"
)

// Snapshotter fetches the raw registry record for a company.
type Snapshotter interface {
	CompanySnapshot(ctx context.Context, companyNumber string) ([]byte, error)
}

// ArchiveCompany writes the company's registry record into the sources
// folder as "<company name>.json".
func ArchiveCompany(ctx context.Context, s Snapshotter, sourcesDir, companyNumber, companyName string) error {
	body, err := s.CompanySnapshot(ctx, companyNumber)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(sourcesDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(sourcesDir, companyName+".json"), body, 0600)
}
