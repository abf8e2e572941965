// Package identity resolves a full name plus birth year-month to the
// officer records the registry holds for that person.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/companywatch/dossier/internal/models"
)

// Searcher is the registry officer-search dependency.
type Searcher interface {
	SearchOfficers(ctx context.Context, name string) ([]models.OfficerIdentity, error)
}

// Result is the tagged outcome of a resolution. Zero, one, or many
// matches are all valid returns; the caller decides the multiplicity
// policy.
type Result struct {
	Identities []models.OfficerIdentity
}

func (r Result) NoMatch() bool  { return len(r.Identities) == 0 }
func (r Result) Unique() bool   { return len(r.Identities) == 1 }
func (r Result) Multiple() bool { return len(r.Identities) > 1 }

// Resolve searches for fullName and filters the hits to case-insensitive
// exact title matches whose structured date of birth equals birthYearMonth
// ("YYYY-MM"). Hits without a structured DOB are excluded. Exact matching
// trades recall for precision.
func Resolve(ctx context.Context, s Searcher, fullName, birthYearMonth string) (Result, error) {
	if len(birthYearMonth) > 7 {
		birthYearMonth = birthYearMonth[:7]
	}
	hits, err := s.SearchOfficers(ctx, fullName)
	if err != nil {
		return Result{}, fmt.Errorf("officer search %q: %w", fullName, err)
	}
	var out []models.OfficerIdentity
	for _, hit := range hits {
		if !strings.EqualFold(hit.FullName, fullName) {
			continue
		}
		if hit.BirthYear == 0 {
			continue
		}
		if fmt.Sprintf("%d-%02d", hit.BirthYear, hit.BirthMonth) != birthYearMonth {
			continue
		}
		out = append(out, hit)
	}
	return Result{Identities: out}, nil
}
