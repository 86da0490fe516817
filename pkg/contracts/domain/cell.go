package domain

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the variant stored in a Cell
type CellKind int

const (
	KindMissing CellKind = iota
	KindNumber
	KindText
	KindDate
)

// Cell is a single table value. Exactly one variant is set, per Kind.
// The zero value is a missing cell.
type Cell struct {
	Kind   CellKind  `json:"kind"`
	Num    float64   `json:"num,omitempty"`
	Str    string    `json:"str,omitempty"`
	Time   time.Time `json:"time,omitempty"`
}

// Number creates a numeric cell
func Number(v float64) Cell {
	return Cell{Kind: KindNumber, Num: v}
}

// Text creates a text cell
func Text(s string) Cell {
	return Cell{Kind: KindText, Str: s}
}

// Date creates a date cell
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Time: t}
}

// Missing creates an empty cell
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// IsMissing reports whether the cell holds no value
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}

// Float attempts the numeric conversion for the cell.
// Number cells convert directly; text cells parse after stripping
// thousands separators; date and missing cells are not numeric.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Num, true
	case KindText:
		s := strings.ReplaceAll(strings.TrimSpace(c.Str), ",", "")
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// String returns the literal string form of the cell. Missing cells
// render as the empty string; numbers keep their shortest representation.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindText:
		return c.Str
	case KindDate:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// Value returns the native value for spreadsheet cells, so in-sheet
// recalculation stays possible. Missing cells return nil.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindNumber:
		return c.Num
	case KindText:
		return c.Str
	case KindDate:
		return c.Time
	default:
		return nil
	}
}
