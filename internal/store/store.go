// Package store is the run-scoped company cache. Profile, PSC, and
// ownership lookups recur when the same company appears across several
// appointments; caching them in sqlite under the data dir also lets a
// restarted run skip work already done.
package store

import (
	"database/sql"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/companywatch/dossier/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS company_cache (
	company_number TEXT NOT NULL,
	kind           TEXT NOT NULL,
	body           TEXT NOT NULL,
	fetched_at     TEXT NOT NULL,
	PRIMARY KEY (company_number, kind)
);`

const (
	kindProfile   = "profile"
	kindPSC       = "psc"
	kindOwnership = "ownership"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) get(companyNumber, kind string) ([]byte, bool, error) {
	var body string
	err := s.db.QueryRow(
		`SELECT body FROM company_cache WHERE company_number = ? AND kind = ?`,
		companyNumber, kind,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(body), true, nil
}

func (s *Store) put(companyNumber, kind string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO company_cache (company_number, kind, body, fetched_at) VALUES (?, ?, ?, ?)`,
		companyNumber, kind, string(body), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) Profile(companyNumber string) (*models.CompanyProfile, bool, error) {
	body, ok, err := s.get(companyNumber, kindProfile)
	if err != nil || !ok {
		return nil, false, err
	}
	var p models.CompanyProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false, nil // stale or corrupt entry: treat as a miss
	}
	return &p, true, nil
}

func (s *Store) PutProfile(p *models.CompanyProfile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.put(p.CompanyNumber, kindProfile, body)
}

func (s *Store) PSCNames(companyNumber string) ([]string, bool, error) {
	body, ok, err := s.get(companyNumber, kindPSC)
	if err != nil || !ok {
		return nil, false, err
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, false, nil
	}
	return names, true, nil
}

func (s *Store) PutPSCNames(companyNumber string, names []string) error {
	if names == nil {
		names = []string{}
	}
	body, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.put(companyNumber, kindPSC, body)
}

func (s *Store) Ownership(companyNumber string) (string, bool, error) {
	body, ok, err := s.get(companyNumber, kindOwnership)
	if err != nil || !ok {
		return "", false, err
	}
	return string(body), true, nil
}

func (s *Store) PutOwnership(companyNumber, statement string) error {
	return s.put(companyNumber, kindOwnership, []byte(statement))
}
