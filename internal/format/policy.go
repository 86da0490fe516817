package format

import (
	"fmt"
	"math"
	"strings"

	"icsreport/pkg/contracts/domain"
)

// Class is the display semantic inferred from a column name
type Class int

const (
	ClassGeneral Class = iota
	ClassPercentage
	ClassCurrency
	ClassRatio
	ClassCount
)

// String returns the class name for logging
func (c Class) String() string {
	switch c {
	case ClassPercentage:
		return "percentage"
	case ClassCurrency:
		return "currency"
	case ClassRatio:
		return "ratio"
	case ClassCount:
		return "count"
	default:
		return "general"
	}
}

// Target selects which document the formatted text is destined for.
// The two differ on purpose: a blank spreadsheet cell is unambiguous
// while a blank slide cell looks broken, and slide tables trade decimal
// precision for horizontal space.
type Target int

const (
	TargetWorkbook Target = iota
	TargetSlide
)

// Classify infers the display class from a column name. Matching is a
// case-insensitive substring check, first match wins.
//
// Convention:
//   - '%' or 'PCT'            -> percentage
//   - '$', 'BAL', or 'SPEND'  -> currency
//   - 'RATIO'                 -> ratio
//   - 'COUNT', 'TOTAL', 'SWIPE' -> count (number-format hint only)
//   - otherwise               -> general
func Classify(col string) Class {
	upper := strings.ToUpper(col)

	switch {
	case strings.Contains(col, "%") || strings.Contains(upper, "PCT"):
		return ClassPercentage
	case strings.Contains(col, "$") || strings.Contains(upper, "BAL") || strings.Contains(upper, "SPEND"):
		return ClassCurrency
	case strings.Contains(upper, "RATIO"):
		return ClassRatio
	case strings.Contains(upper, "COUNT") || strings.Contains(upper, "TOTAL") || strings.Contains(upper, "SWIPE"):
		return ClassCount
	default:
		return ClassGeneral
	}
}

// PadsForWidth reports whether a column gets extra width for a display
// suffix. Percentage columns qualify, and so do RATE columns even
// though they classify as general.
func PadsForWidth(col string) bool {
	if Classify(col) == ClassPercentage {
		return true
	}
	return strings.Contains(strings.ToUpper(col), "RATE")
}

// NumberFormat returns the spreadsheet number format token for a column.
// Values stay numeric in the workbook; the format only shapes display.
func NumberFormat(col string) string {
	switch Classify(col) {
	case ClassPercentage:
		return `0.0"%"`
	case ClassCurrency:
		return "$#,##0.00"
	case ClassRatio:
		return "0.00"
	case ClassCount:
		return "#,##0"
	default:
		return "General"
	}
}

// CellText formats a cell for plain-text rendering in the given target.
// Non-numeric text passes through unmodified; missing or unparseable
// values become "" for workbooks and "-" for slide cells.
func CellText(col string, cell domain.Cell, target Target) string {
	if cell.Kind == domain.KindDate {
		return cell.String()
	}

	num, ok := cell.Float()
	if !ok {
		if cell.Kind == domain.KindText && strings.TrimSpace(cell.Str) != "" {
			return cell.Str
		}
		if target == TargetSlide {
			return "-"
		}
		return ""
	}

	switch Classify(col) {
	case ClassPercentage:
		// Values arrive already scaled 0-100
		return fmt.Sprintf("%.1f%%", num)
	case ClassCurrency:
		if target == TargetSlide && math.Abs(num) >= 1000 {
			return "$" + groupFloat(math.Round(num), 0)
		}
		return "$" + groupFloat(num, 2)
	case ClassRatio:
		return fmt.Sprintf("%.2f", num)
	default:
		if num == math.Trunc(num) && math.Abs(num) < 1e15 {
			return groupFloat(num, 0)
		}
		return groupFloat(num, 2)
	}
}

// groupFloat formats a number with a thousands separator and the given
// decimal count. The sign stays in front of the digits, never wrapped
// in parentheses.
func groupFloat(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
