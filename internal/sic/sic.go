// Package sic maps SIC 2007 codes to business-activity descriptions
// using the condensed Companies House list, embedded at build time and
// loaded once.
package sic

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"strings"
	"sync"
)

//go:embed sic_codes.csv
var condensedList []byte

var (
	once    sync.Once
	mapping map[string]string
)

func load() {
	mapping = make(map[string]string)
	reader := csv.NewReader(bytes.NewReader(condensedList))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if code == "" {
			continue
		}
		mapping[code] = strings.TrimSpace(row[1])
	}
}

// Activity returns the description for a SIC code, or "Unknown" for
// codes outside the condensed list.
func Activity(code string) string {
	once.Do(load)
	if desc, ok := mapping[strings.TrimSpace(code)]; ok {
		return desc
	}
	return "Unknown"
}
