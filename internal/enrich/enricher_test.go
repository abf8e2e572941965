package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companywatch/dossier/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify(t *testing.T) {
	resigned := date("2020-06-01")
	cases := []struct {
		name string
		a    models.Appointment
		want models.AppointmentStatus
	}{
		{"active no resignation", models.Appointment{CompanyStatus: "active"}, models.StatusCurrent},
		{"resigned regardless of status", models.Appointment{CompanyStatus: "active", ResignedOn: &resigned}, models.StatusResignedWhileActive},
		{"resigned dissolved company", models.Appointment{CompanyStatus: "dissolved", ResignedOn: &resigned}, models.StatusResignedWhileActive},
		{"dissolved while serving", models.Appointment{CompanyStatus: "dissolved"}, models.StatusServedUntilDissolution},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.a))
		})
	}
}

func TestPSCStatement(t *testing.T) {
	assert.Equal(t, "The company has no persons with significant control.", PSCStatement(nil))
	assert.Equal(t, "The company has a person with significant control named Ada Lovelace.",
		PSCStatement([]string{"Ada Lovelace"}))
	assert.Equal(t, "The company has the following persons with significant control: A, B and C.",
		PSCStatement([]string{"A", "B", "C"}))
}

type fakeCompanies struct {
	profile *models.CompanyProfile
	psc     []string
	err     error
}

func (f *fakeCompanies) CompanyProfile(ctx context.Context, n string) (*models.CompanyProfile, error) {
	return f.profile, f.err
}

func (f *fakeCompanies) PSCNames(ctx context.Context, n string) ([]string, error) {
	return f.psc, f.err
}

type fakeOwnership struct {
	statement string
	err       error
}

func (f *fakeOwnership) OwnershipStatement(ctx context.Context, n, name string) (string, error) {
	return f.statement, f.err
}

func current() models.Appointment {
	return models.Appointment{
		CompanyName:   "ACME WIDGETS LTD",
		CompanyNumber: "01234567",
		AppointedOn:   date("2015-01-02"),
		OfficerRole:   "director",
		CompanyStatus: "active",
	}
}

func TestEnrichCurrentNarrative(t *testing.T) {
	e := &Enricher{
		OfficerName: "Jane Q Public",
		Companies:   &fakeCompanies{profile: &models.CompanyProfile{CompanyNumber: "01234567", SICCode: "62020"}, psc: []string{"Ada Lovelace"}},
		Ownership:   &fakeOwnership{statement: "No ownership information identified."},
	}
	rec, err := e.Enrich(context.Background(), current())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCurrent, rec.Status)
	assert.Contains(t, rec.Narrative, "Jane Q Public has been serving as director of ACME WIDGETS LTD since 02 January 2015.")
	assert.Contains(t, rec.Narrative, "The nature of business is Information technology consultancy activities.")
	assert.Contains(t, rec.Narrative, "a person with significant control named Ada Lovelace")
	assert.Equal(t, []string{"ACME WIDGETS LTD", "01234567", "active", "director", "02 January 2015", "N/A", "Ada Lovelace"}, rec.Row)
}

func TestEnrichResignedNarrative(t *testing.T) {
	a := current()
	resigned := date("2020-06-01")
	a.ResignedOn = &resigned
	e := &Enricher{
		OfficerName: "Jane Q Public",
		Companies:   &fakeCompanies{profile: &models.CompanyProfile{CompanyNumber: "01234567", SICCode: "62020"}},
		Ownership:   &fakeOwnership{statement: "No ownership information identified."},
	}
	rec, err := e.Enrich(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResignedWhileActive, rec.Status)
	assert.Contains(t, rec.Narrative, "was appointed director of ACME WIDGETS LTD on 02 January 2015 and resigned on 01 June 2020")
	assert.Equal(t, "01 June 2020", rec.Row[5])
}

func TestEnrichDissolvedNarrative(t *testing.T) {
	a := current()
	a.CompanyStatus = "dissolved"
	cessation := date("2021-03-31")
	e := &Enricher{
		OfficerName: "Jane Q Public",
		Companies: &fakeCompanies{profile: &models.CompanyProfile{
			CompanyNumber:   "01234567",
			SICCode:         "62020",
			DateOfCessation: &cessation,
		}},
		Ownership: &fakeOwnership{statement: "No ownership information identified."},
	}
	rec, err := e.Enrich(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServedUntilDissolution, rec.Status)
	assert.Contains(t, rec.Narrative, "served as director of ACME WIDGETS LTD between 02 January 2015 and 31 March 2021")
	assert.Contains(t, rec.Narrative, "The nature of business was")
}

func TestEnrichSentinelActivity(t *testing.T) {
	e := &Enricher{
		OfficerName: "Jane Q Public",
		Companies:   &fakeCompanies{profile: &models.CompanyProfile{CompanyNumber: "01234567", SICCode: "N/A"}},
		Ownership:   &fakeOwnership{statement: "No ownership information identified."},
	}
	rec, err := e.Enrich(context.Background(), current())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", rec.Activity)
}

func TestEnrichTransportFailure(t *testing.T) {
	e := &Enricher{
		OfficerName: "Jane Q Public",
		Companies:   &fakeCompanies{err: errors.New("status 502")},
		Ownership:   &fakeOwnership{},
	}
	_, err := e.Enrich(context.Background(), current())
	assert.Error(t, err)
}
