package registry

// Response shapes for the Companies House public data API. Only the
// fields the pipeline reads are declared.

type dateOfBirth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type officerSearchItem struct {
	Title       string       `json:"title"`
	DateOfBirth *dateOfBirth `json:"date_of_birth,omitempty"`
	Links       struct {
		Self string `json:"self"`
	} `json:"links"`
}

type officerSearchResponse struct {
	Items []officerSearchItem `json:"items"`
}

// AppointmentItem is one appointment as returned by the officer
// appointments endpoint.
type AppointmentItem struct {
	AppointedTo struct {
		CompanyName   string `json:"company_name"`
		CompanyNumber string `json:"company_number"`
		CompanyStatus string `json:"company_status"`
	} `json:"appointed_to"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on,omitempty"`
	OfficerRole string `json:"officer_role"`
}

// AppointmentsPage is one page of an officer's appointment list.
type AppointmentsPage struct {
	TotalResults *int              `json:"total_results"`
	ItemsPerPage int               `json:"items_per_page"`
	StartIndex   int               `json:"start_index"`
	Items        []AppointmentItem `json:"items"`
}

type companyProfileResponse struct {
	SICCodes        []string `json:"sic_codes,omitempty"`
	DateOfCreation  string   `json:"date_of_creation"`
	DateOfCessation string   `json:"date_of_cessation,omitempty"`
}

type pscResponse struct {
	Items []struct {
		Name string `json:"name"`
	} `json:"items,omitempty"`
}

// FilingHistoryItem is one filing in a company's filing history.
type FilingHistoryItem struct {
	Description string `json:"description"`
	Links       struct {
		DocumentMetadata string `json:"document_metadata"`
	} `json:"links"`
}

type filingHistoryResponse struct {
	Items []FilingHistoryItem `json:"items"`
}

type documentMetadataResponse struct {
	Links struct {
		Document string `json:"document"`
	} `json:"links"`
}
