package domain

import "strings"

// Table holds the ordered columns and rows of one analysis result.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// IsEmpty reports whether the table has no rows
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Clone returns an independent copy of the table. Builders that produce
// truncated views operate on copies and never mutate the source.
func (t Table) Clone() Table {
	out := Table{Columns: make([]string, len(t.Columns)), Rows: make([][]Cell, len(t.Rows))}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make([]Cell, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// AnalysisResult is one named, titled table of computed metrics produced
// by the external analysis engine. Results are read-only during synthesis.
type AnalysisResult struct {
	Name      string `json:"name" validate:"required"`
	Title     string `json:"title" validate:"required"`
	SheetName string `json:"sheet_name"`
	Table     Table  `json:"table"`
	Err       string `json:"error,omitempty"`
}

// OK reports whether the upstream analysis succeeded
func (a AnalysisResult) OK() bool {
	return a.Err == ""
}

// Renderable reports whether the analysis produces any report output.
// Successful analyses with an empty table are skipped but are not errors.
func (a AnalysisResult) Renderable() bool {
	return a.OK() && !a.Table.IsEmpty()
}

// Sheet returns the spreadsheet target for the analysis, deriving one
// from the name when the engine did not supply it. Sheet names are
// capped at Excel's 31-character limit.
func (a AnalysisResult) Sheet() string {
	name := a.SheetName
	if name == "" {
		name = strings.ReplaceAll(a.Name, " ", "_")
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
