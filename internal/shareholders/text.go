package shareholders

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/companywatch/dossier/internal/models"
)

// NoOwnershipStatement is the user-visible sentence emitted whenever no
// shareholder breakdown could be recovered.
const NoOwnershipStatement = "No ownership information identified."

// marker phrase that precedes the shareholder table in a
// confirmation-statement-with-updates filing.
const shareholderMarker = "Full details of Shareholders"

// shareLine matches one "<N> ORDINARY shares ... Name: <name>" entry in
// normalized OCR text. The name capture is a run of single-spaced
// tokens; the two-space separators introduced by normalization bound it.
var shareLine = regexp.MustCompile(`(\d+) ORDINARY shares held as at the date of this confirmation statement  Name: (\S+(?: \S+)*)`)

// ocrCorrections are literal substitutions for spacing errors the OCR
// engine is known to introduce around the phrase "confirmation
// statement". Ordered; applied after newline flattening.
var ocrCorrections = [][2]string{
	{"confirmation  statement", "confirmation statement"},
	{"this  confirmation", "this confirmation"},
	{"of  this confirmation", "of this confirmation"},
	{"date  of this", "date of this"},
}

// Normalize flattens raw OCR output into one long line: double newlines
// collapse to single, remaining newlines become a two-space separator
// (so a label and the value on the next line of the source PDF become
// adjacent tokens), then the known-phrase corrections are applied.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\n\n", "\n")
	text = strings.ReplaceAll(text, "\n", "  ")
	for _, c := range ocrCorrections {
		text = strings.ReplaceAll(text, c[0], c[1])
	}
	return text
}

// HasShareholderTable reports whether normalized text contains the
// shareholder-table marker phrase.
func HasShareholderTable(text string) bool {
	return strings.Contains(text, shareholderMarker)
}

// Extract pulls every (share count, holder name) pair out of normalized
// text. A count preceded by a literal "0 " is rejected; that guards
// against OCR misreads of zero-padded counts splitting a leading zero
// off the number.
func Extract(text string) []models.ShareholderShare {
	var out []models.ShareholderShare
	for _, loc := range shareLine.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] >= 2 && text[loc[0]-2:loc[0]] == "0 " {
			continue
		}
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		out = append(out, models.ShareholderShare{
			Name:   text[loc[4]:loc[5]],
			Shares: n,
		})
	}
	return out
}

// Percentages fills in each holder's share of the total, rounded to two
// decimals. A zero total returns nil: there is nothing to divide by.
func Percentages(shares []models.ShareholderShare) []models.ShareholderShare {
	total := 0
	for _, s := range shares {
		total += s.Shares
	}
	if total == 0 {
		return nil
	}
	out := make([]models.ShareholderShare, len(shares))
	for i, s := range shares {
		s.Percentage = round2(float64(s.Shares) / float64(total) * 100)
		out[i] = s
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Statement renders the ownership statement: a fixed header sentence
// followed by one "- <name> - <percentage>%" line per holder. Empty
// input yields the no-ownership sentence.
func Statement(shares []models.ShareholderShare) string {
	if len(shares) == 0 {
		return NoOwnershipStatement
	}
	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = "- " + s.Name + " - " + strconv.FormatFloat(s.Percentage, 'f', -1, 64) + "%"
	}
	return "The company has the following shareholders:\n" + strings.Join(lines, "\n")
}
