// Package registry is a thin client for the Companies House public data
// and document APIs, scoped to the lookups the dossier pipeline needs.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/companywatch/dossier/internal/httpclient"
	"github.com/companywatch/dossier/internal/models"
)

const defaultBaseURL = "https://api.company-information.service.gov.uk"

type Client struct {
	APIKey  string
	BaseURL string
}

func New(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: defaultBaseURL}
}

// get performs a credentialed GET against the data API and decodes the
// JSON body into out. Non-2xx statuses are transport errors.
func (c *Client) get(ctx context.Context, u string, out interface{}) error {
	body, err := c.getRaw(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

// getRaw is get without decoding; callers that snapshot the raw page
// bytes use it directly.
func (c *Client) getRaw(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.APIKey)
	resp, err := httpclient.Default.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SearchOfficers runs the fuzzy officer search with the name as a quoted
// query term and returns every raw hit; exact-match filtering is the
// resolver's job.
func (c *Client) SearchOfficers(ctx context.Context, name string) ([]models.OfficerIdentity, error) {
	u := c.BaseURL + "/search/officers?q=" + url.QueryEscape(`"`+name+`"`)
	var data officerSearchResponse
	if err := c.get(ctx, u, &data); err != nil {
		return nil, err
	}
	out := make([]models.OfficerIdentity, 0, len(data.Items))
	for _, item := range data.Items {
		id := models.OfficerIdentity{
			FullName: item.Title,
			SelfLink: item.Links.Self,
		}
		if item.DateOfBirth != nil {
			id.BirthYear = item.DateOfBirth.Year
			id.BirthMonth = item.DateOfBirth.Month
		}
		out = append(out, id)
	}
	return out, nil
}

// AppointmentsPage fetches one page of an officer's appointment list.
// The raw body is returned alongside the parsed page so the caller can
// snapshot it.
func (c *Client) AppointmentsPage(ctx context.Context, selfLink string, pageNo, itemsPerPage, startIndex int) (*AppointmentsPage, []byte, error) {
	u := c.BaseURL + selfLink +
		"?page=" + strconv.Itoa(pageNo) +
		"&items_per_page=" + strconv.Itoa(itemsPerPage) +
		"&start_index=" + strconv.Itoa(startIndex)
	body, err := c.getRaw(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	var page AppointmentsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", u, err)
	}
	return &page, body, nil
}

// Appointment converts a page item to the domain type. Items without a
// parseable appointed_on date are rejected.
func (it AppointmentItem) Appointment() (models.Appointment, error) {
	appointed, ok := parseDate(it.AppointedOn)
	if !ok {
		return models.Appointment{}, fmt.Errorf("appointment %s: bad appointed_on %q", it.AppointedTo.CompanyNumber, it.AppointedOn)
	}
	a := models.Appointment{
		CompanyName:   it.AppointedTo.CompanyName,
		CompanyNumber: it.AppointedTo.CompanyNumber,
		AppointedOn:   appointed,
		OfficerRole:   it.OfficerRole,
		CompanyStatus: it.AppointedTo.CompanyStatus,
	}
	if t, ok := parseDate(it.ResignedOn); ok {
		a.ResignedOn = &t
	}
	return a, nil
}

// CompanyProfile fetches a company's profile. Missing sic_codes map to
// "N/A"; malformed dates degrade to nil rather than failing the fetch.
func (c *Client) CompanyProfile(ctx context.Context, companyNumber string) (*models.CompanyProfile, error) {
	var data companyProfileResponse
	if err := c.get(ctx, c.BaseURL+"/company/"+companyNumber, &data); err != nil {
		return nil, err
	}
	profile := &models.CompanyProfile{CompanyNumber: companyNumber, SICCode: "N/A"}
	if len(data.SICCodes) > 0 && strings.TrimSpace(data.SICCodes[0]) != "" {
		profile.SICCode = strings.TrimSpace(data.SICCodes[0])
	}
	if t, ok := parseDate(data.DateOfCreation); ok {
		profile.DateOfCreation = &t
	}
	if t, ok := parseDate(data.DateOfCessation); ok {
		profile.DateOfCessation = &t
	}
	return profile, nil
}

// PSCNames fetches the persons-with-significant-control list and returns
// the names in registry order. An empty list and a missing items field
// both come back as an empty slice.
func (c *Client) PSCNames(ctx context.Context, companyNumber string) ([]string, error) {
	var data pscResponse
	if err := c.get(ctx, c.BaseURL+"/company/"+companyNumber+"/persons-with-significant-control", &data); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data.Items))
	for _, psc := range data.Items {
		if psc.Name != "" {
			names = append(names, psc.Name)
		}
	}
	return names, nil
}

// CompanySnapshot returns the raw profile JSON for archival alongside
// the other per-company source material.
func (c *Client) CompanySnapshot(ctx context.Context, companyNumber string) ([]byte, error) {
	return c.getRaw(ctx, c.BaseURL+"/company/"+companyNumber)
}

// ConfirmationStatements lists a company's confirmation-statement
// filings, newest first as returned by the registry.
func (c *Client) ConfirmationStatements(ctx context.Context, companyNumber string) ([]FilingHistoryItem, error) {
	u := c.BaseURL + "/company/" + companyNumber + "/filing-history?category=confirmation-statement&items_per_page=100"
	var data filingHistoryResponse
	if err := c.get(ctx, u, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}

// DocumentLink resolves a filing's document_metadata link to the raw
// document URL. The document API wants basic auth with the key as
// username, unlike the data API.
func (c *Client) DocumentLink(ctx context.Context, metadataLink string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataLink, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.APIKey, "")
	req.Header.Set("Accept", "application/json")
	resp, err := httpclient.Default.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", metadataLink, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: status %d", metadataLink, resp.StatusCode)
	}
	var meta documentMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", fmt.Errorf("decode %s: %w", metadataLink, err)
	}
	if meta.Links.Document == "" {
		return "", fmt.Errorf("document metadata %s: no document link", metadataLink)
	}
	return meta.Links.Document, nil
}

// Document downloads the raw filing document (PDF bytes).
func (c *Client) Document(ctx context.Context, documentLink string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentLink, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.APIKey, "")
	resp, err := httpclient.Default.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", documentLink, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", documentLink, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
