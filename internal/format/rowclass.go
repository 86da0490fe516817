package format

import (
	"strings"

	"icsreport/pkg/contracts/domain"
)

// totalMarkers are the first-cell values that mark a summary row
var totalMarkers = map[string]bool{
	"total":       true,
	"grand total": true,
}

// IsTotalRow detects Total/Grand Total summary rows by the string value
// of the first column, trimmed and lower-cased. Total rows get distinct
// styling in both documents and survive slide-table truncation.
func IsTotalRow(row []domain.Cell) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0].String()))
	return totalMarkers[first]
}
