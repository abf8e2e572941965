// Package appointments fetches and merges the paginated appointment
// list of a resolved officer.
package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/companywatch/dossier/internal/models"
	"github.com/companywatch/dossier/internal/registry"
)

// ErrNoTotalResults means the first page carried no usable total-count,
// which makes the page walk impossible.
var ErrNoTotalResults = errors.New("appointments: first page has no total_results")

const firstPageSize = 50

// PageFetcher is the registry appointments-page dependency.
type PageFetcher interface {
	AppointmentsPage(ctx context.Context, selfLink string, pageNo, itemsPerPage, startIndex int) (*registry.AppointmentsPage, []byte, error)
}

// FetchAll walks every page of the officer's appointment list and
// returns the merged, deduplicated appointment sequence.
//
// The walk keeps a remaining-count against the first page's
// total_results and clamps the final page's requested size to the
// leftover count so the last request never over-fetches. Any failure
// before the totals are known aborts this officer's resolution; there is
// no partial-result fallback.
func FetchAll(ctx context.Context, f PageFetcher, cache *PageCache, officer models.OfficerIdentity) ([]models.Appointment, error) {
	return fetchAll(ctx, f, cache, officer, firstPageSize)
}

func fetchAll(ctx context.Context, f PageFetcher, cache *PageCache, officer models.OfficerIdentity, pageSize int) ([]models.Appointment, error) {
	startIndex := 0
	pageNo := 1
	itemsPerPage := pageSize
	remaining := 1 // sentinel: forces at least one fetch
	totalResults := -1

	for remaining > 0 {
		page, raw, err := f.AppointmentsPage(ctx, officer.SelfLink, pageNo, itemsPerPage, startIndex)
		if err != nil {
			return nil, fmt.Errorf("appointments page %d: %w", pageNo, err)
		}
		if totalResults < 0 {
			if page.TotalResults == nil {
				return nil, ErrNoTotalResults
			}
			totalResults = *page.TotalResults
			remaining = totalResults
		}
		if err := cache.Put(pageNo, page, raw); err != nil {
			logrus.WithError(err).WithField("page", pageNo).Warn("page snapshot write failed")
		}

		remaining -= itemsPerPage
		startIndex += itemsPerPage
		if remaining < itemsPerPage {
			itemsPerPage = remaining
		}
		pageNo++
	}

	items := cache.Merged()
	if len(items) != totalResults {
		return nil, fmt.Errorf("appointments: fetched %d items, registry declared %d", len(items), totalResults)
	}

	// The registry does not promise non-overlapping pages; duplicates
	// are dropped on appointment identity before enrichment.
	seen := make(map[string]bool)
	out := make([]models.Appointment, 0, len(items))
	for _, item := range items {
		a, err := item.Appointment()
		if err != nil {
			logrus.WithError(err).WithField("company_number", item.AppointedTo.CompanyNumber).
				Warn("skipping malformed appointment item")
			continue
		}
		if seen[a.Key()] {
			continue
		}
		seen[a.Key()] = true
		out = append(out, a)
	}
	return out, nil
}
