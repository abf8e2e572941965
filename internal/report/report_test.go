package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/companywatch/dossier/internal/models"
)

func records() []models.EnrichedRecord {
	return []models.EnrichedRecord{
		{
			Status:    models.StatusResignedWhileActive,
			Narrative: "OLD CO (111) \nJane was appointed director of OLD CO on 02 January 2010 and resigned on 01 June 2012. \n",
			Row:       []string{"OLD CO", "111", "active", "director", "02 January 2010", "01 June 2012", ""},
		},
		{
			Status:    models.StatusCurrent,
			Narrative: "ACME (222) \nJane has been serving as director of ACME since 02 January 2015. \n",
			Row:       []string{"ACME", "222", "active", "director", "02 January 2015", "N/A", "Ada Lovelace"},
		},
	}
}

func TestWriteNarrativeSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narrative.txt")
	require.NoError(t, WriteNarrative(path, "Jane Q Public", records()))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.HasPrefix(text, "Associated companies for: Jane Q Public"))
	currentIdx := strings.Index(text, "Current appointments")
	formerIdx := strings.Index(text, "Former appointments")
	require.Greater(t, formerIdx, currentIdx)

	// Current paragraph lands between the two headings, former after.
	acmeIdx := strings.Index(text, "has been serving as director of ACME")
	oldIdx := strings.Index(text, "was appointed director of OLD CO")
	assert.Greater(t, acmeIdx, currentIdx)
	assert.Less(t, acmeIdx, formerIdx)
	assert.Greater(t, oldIdx, formerIdx)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, records()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)

	got, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Company", got)
	got, err = f.GetCellValue(sheet, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Person with significant control", got)

	// Rows keep accumulator order regardless of section.
	got, err = f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "OLD CO", got)
	got, err = f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "N/A", got)
	got, err = f.GetCellValue(sheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)
}
