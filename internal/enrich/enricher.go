// Package enrich turns merged appointments into narrative paragraphs
// and spreadsheet rows via per-company registry lookups.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/companywatch/dossier/internal/models"
	"github.com/companywatch/dossier/internal/sic"
	"github.com/companywatch/dossier/internal/store"
)

const dateLayout = "02 January 2006"

// CompanyAPI is the slice of the registry client the enricher uses.
type CompanyAPI interface {
	CompanyProfile(ctx context.Context, companyNumber string) (*models.CompanyProfile, error)
	PSCNames(ctx context.Context, companyNumber string) ([]string, error)
}

// OwnershipSource produces the shareholder statement for a company.
type OwnershipSource interface {
	OwnershipStatement(ctx context.Context, companyNumber, companyName string) (string, error)
}

// Enricher composes one EnrichedRecord per appointment. Cache may be
// nil; when set, profile/PSC/ownership lookups for recurring companies
// are served from it.
type Enricher struct {
	OfficerName string
	Companies   CompanyAPI
	Ownership   OwnershipSource
	Cache       *store.Store
}

// Classify maps an appointment to its three-way status: a present
// resigned_on always means resigned, regardless of the status string;
// otherwise an "active" company status means current and anything else
// means the company was dissolved while the officer served.
func Classify(a models.Appointment) models.AppointmentStatus {
	if a.ResignedOn != nil {
		return models.StatusResignedWhileActive
	}
	if strings.Contains(a.CompanyStatus, "active") {
		return models.StatusCurrent
	}
	return models.StatusServedUntilDissolution
}

// PSCStatement renders the persons-with-significant-control sentence.
// Multiple names join all but the last with ", " and the last with
// " and ".
func PSCStatement(names []string) string {
	switch len(names) {
	case 0:
		return "The company has no persons with significant control."
	case 1:
		return fmt.Sprintf("The company has a person with significant control named %s.", names[0])
	default:
		last := names[len(names)-1]
		rest := strings.Join(names[:len(names)-1], ", ")
		return fmt.Sprintf("The company has the following persons with significant control: %s and %s.", rest, last)
	}
}

// Enrich performs the per-appointment lookups and composes the record.
// A transport failure on any lookup is fatal to this appointment only;
// the caller logs and moves on.
func (e *Enricher) Enrich(ctx context.Context, a models.Appointment) (*models.EnrichedRecord, error) {
	profile, err := e.profile(ctx, a.CompanyNumber)
	if err != nil {
		return nil, fmt.Errorf("company profile: %w", err)
	}
	activity := "Unknown"
	if profile.SICCode != "N/A" {
		activity = sic.Activity(profile.SICCode)
	}

	pscNames, err := e.pscNames(ctx, a.CompanyNumber)
	if err != nil {
		return nil, fmt.Errorf("psc list: %w", err)
	}

	ownership, err := e.ownership(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("ownership: %w", err)
	}

	status := Classify(a)
	rec := &models.EnrichedRecord{
		Appointment: a,
		Status:      status,
		Activity:    activity,
		PSCNames:    pscNames,
		Narrative:   e.narrative(a, status, profile, activity, PSCStatement(pscNames), ownership),
		Row:         row(a, pscNames),
	}
	return rec, nil
}

func (e *Enricher) narrative(a models.Appointment, status models.AppointmentStatus, profile *models.CompanyProfile, activity, pscStatement, ownership string) string {
	appointed := a.AppointedOn.Format(dateLayout)
	var body string
	switch status {
	case models.StatusCurrent:
		body = fmt.Sprintf("%s has been serving as %s of %s since %s. The nature of business is %s.",
			e.OfficerName, a.OfficerRole, a.CompanyName, appointed, activity)
	case models.StatusResignedWhileActive:
		body = fmt.Sprintf("%s was appointed %s of %s on %s and resigned on %s. The nature of business is %s.",
			e.OfficerName, a.OfficerRole, a.CompanyName, appointed, a.ResignedOn.Format(dateLayout), activity)
	default:
		cessation := "N/A"
		if profile.DateOfCessation != nil {
			cessation = profile.DateOfCessation.Format(dateLayout)
		}
		body = fmt.Sprintf("%s served as %s of %s between %s and %s. The nature of business was %s.",
			e.OfficerName, a.OfficerRole, a.CompanyName, appointed, cessation, activity)
	}
	return fmt.Sprintf("%s (%s) \n%s %s %s \n", a.CompanyName, a.CompanyNumber, body, pscStatement, ownership)
}

func row(a models.Appointment, pscNames []string) []string {
	resigned := "N/A"
	if a.ResignedOn != nil {
		resigned = a.ResignedOn.Format(dateLayout)
	}
	firstPSC := ""
	if len(pscNames) > 0 {
		firstPSC = pscNames[0]
	}
	return []string{
		a.CompanyName,
		a.CompanyNumber,
		a.CompanyStatus,
		a.OfficerRole,
		a.AppointedOn.Format(dateLayout),
		resigned,
		firstPSC,
	}
}

func (e *Enricher) profile(ctx context.Context, companyNumber string) (*models.CompanyProfile, error) {
	if e.Cache != nil {
		if p, ok, err := e.Cache.Profile(companyNumber); err == nil && ok {
			return p, nil
		} else if err != nil {
			logrus.WithError(err).WithField("company_number", companyNumber).Warn("profile cache read failed")
		}
	}
	p, err := e.Companies.CompanyProfile(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	if e.Cache != nil {
		if err := e.Cache.PutProfile(p); err != nil {
			logrus.WithError(err).WithField("company_number", companyNumber).Warn("profile cache write failed")
		}
	}
	return p, nil
}

func (e *Enricher) pscNames(ctx context.Context, companyNumber string) ([]string, error) {
	if e.Cache != nil {
		if names, ok, err := e.Cache.PSCNames(companyNumber); err == nil && ok {
			return names, nil
		} else if err != nil {
			logrus.WithError(err).WithField("company_number", companyNumber).Warn("psc cache read failed")
		}
	}
	names, err := e.Companies.PSCNames(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	if e.Cache != nil {
		if err := e.Cache.PutPSCNames(companyNumber, names); err != nil {
			logrus.WithError(err).WithField("company_number", companyNumber).Warn("psc cache write failed")
		}
	}
	return names, nil
}

func (e *Enricher) ownership(ctx context.Context, a models.Appointment) (string, error) {
	if e.Cache != nil {
		if stmt, ok, err := e.Cache.Ownership(a.CompanyNumber); err == nil && ok {
			return stmt, nil
		} else if err != nil {
			logrus.WithError(err).WithField("company_number", a.CompanyNumber).Warn("ownership cache read failed")
		}
	}
	stmt, err := e.Ownership.OwnershipStatement(ctx, a.CompanyNumber, a.CompanyName)
	if err != nil {
		return "", err
	}
	if e.Cache != nil {
		if err := e.Cache.PutOwnership(a.CompanyNumber, stmt); err != nil {
			logrus.WithError(err).WithField("company_number", a.CompanyNumber).Warn("ownership cache write failed")
		}
	}
	return stmt, nil
}
