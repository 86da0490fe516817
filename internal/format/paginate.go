package format

import "icsreport/pkg/contracts/domain"

// Slide table bounds. Anything larger is truncated for presentation;
// the workbook always carries the full table.
const (
	MaxSlideRows = 20
	MaxSlideCols = 10
)

// Paginate bounds a table to maxRows x maxCols for slide display and
// reports whether rows were dropped. When the original last row is a
// total row it is kept as the final row of the view so the summary is
// never hidden by truncation. The source table is never mutated.
func Paginate(t domain.Table, maxRows, maxCols int) (domain.Table, bool) {
	view := t.Clone()

	if len(view.Columns) > maxCols {
		view.Columns = view.Columns[:maxCols]
		for i, row := range view.Rows {
			if len(row) > maxCols {
				view.Rows[i] = row[:maxCols]
			}
		}
	}

	if len(view.Rows) <= maxRows {
		return view, false
	}

	last := view.Rows[len(view.Rows)-1]
	if IsTotalRow(last) {
		view.Rows = append(view.Rows[:maxRows-1:maxRows-1], last)
	} else {
		view.Rows = view.Rows[:maxRows]
	}
	return view, true
}
