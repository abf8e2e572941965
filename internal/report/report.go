// Package report renders the accumulated records: a two-section
// narrative document and an xlsx export with the fixed column set.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/companywatch/dossier/internal/models"
)

// Columns is the fixed spreadsheet header.
var Columns = []string{
	"Company",
	"Reg Number",
	"Status",
	"Officer Role",
	"Appointed On",
	"Resigned On",
	"Person with significant control",
}

var columnWidths = []float64{50, 15, 15, 15, 15, 15, 50}

// WriteNarrative writes the narrative document: current appointments
// first, then former, each section in appointment order.
func WriteNarrative(path, officerName string, records []models.EnrichedRecord) error {
	var b strings.Builder
	b.WriteString("Associated companies for: " + officerName + "\n\n")

	b.WriteString("Current appointments\n\n")
	for _, rec := range records {
		if rec.Status.Current() {
			b.WriteString(rec.Narrative + "\n")
		}
	}
	b.WriteString("\nFormer appointments\n\n")
	for _, rec := range records {
		if !rec.Status.Current() {
			b.WriteString(rec.Narrative + "\n")
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}

// WriteWorkbook writes the xlsx export: header row with auto-filter,
// fixed column widths, one row per record in accumulator order.
func WriteWorkbook(path string, records []models.EnrichedRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, rec := range records {
		row := make([]interface{}, len(rec.Row))
		for j, cell := range rec.Row {
			row[j] = cell
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	filterRange := fmt.Sprintf("A1:%s%d", lastCol, len(records)+1)
	if err := f.AutoFilter(sheet, filterRange, nil); err != nil {
		return err
	}
	return f.SaveAs(path)
}
