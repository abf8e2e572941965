package models

import "time"

// OfficerIdentity is one disambiguated officer record in the registry.
// Immutable once resolved. FullName+BirthYear+BirthMonth is the
// disambiguation key; SelfLink is the opaque appointments-list reference.
type OfficerIdentity struct {
	FullName   string `json:"full_name"`
	BirthYear  int    `json:"birth_year"`
	BirthMonth int    `json:"birth_month"`
	SelfLink   string `json:"self_link"`
}

// AppointmentStatus is the three-way classification of an appointment.
type AppointmentStatus int

const (
	StatusCurrent AppointmentStatus = iota
	StatusResignedWhileActive
	StatusServedUntilDissolution
)

// Current reports whether the appointment belongs in the "Current
// appointments" section; everything else is former.
func (s AppointmentStatus) Current() bool { return s == StatusCurrent }

// Appointment is one merged appointment of an officer.
type Appointment struct {
	CompanyName   string     `json:"company_name"`
	CompanyNumber string     `json:"company_number"`
	AppointedOn   time.Time  `json:"appointed_on"`
	ResignedOn    *time.Time `json:"resigned_on,omitempty"`
	OfficerRole   string     `json:"officer_role"`
	CompanyStatus string     `json:"company_status"`
}

// Key is the appointment identity used for cross-page deduplication.
func (a Appointment) Key() string {
	return a.CompanyNumber + "|" + a.AppointedOn.Format("2006-01-02") + "|" + a.OfficerRole
}

// CompanyProfile is the per-company metadata fetched during enrichment.
type CompanyProfile struct {
	CompanyNumber   string     `json:"company_number"`
	SICCode         string     `json:"sic_code"`
	DateOfCreation  *time.Time `json:"date_of_creation,omitempty"`
	DateOfCessation *time.Time `json:"date_of_cessation,omitempty"`
}

// ShareholderShare is one holder's stake computed from a filing.
type ShareholderShare struct {
	Name       string  `json:"name"`
	Shares     int     `json:"shares"`
	Percentage float64 `json:"percentage"`
}

// EnrichedRecord is the accumulator value produced per appointment: one
// narrative paragraph plus one spreadsheet row, tagged with the section
// it belongs to.
type EnrichedRecord struct {
	Appointment Appointment
	Status      AppointmentStatus
	Activity    string
	PSCNames    []string
	Narrative   string
	Row         []string
}
