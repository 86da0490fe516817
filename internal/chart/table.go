package chart

import (
	"fmt"
	"sort"
	"time"

	"icsreport/pkg/contracts/domain"
)

// columnIndex locates a required column, erroring when absent so the
// dispatcher can skip the chart instead of plotting garbage.
func columnIndex(t domain.Table, name string) (int, error) {
	for i, col := range t.Columns {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("required column %q not in table", name)
}

func hasColumn(t domain.Table, name string) bool {
	_, err := columnIndex(t, name)
	return err == nil
}

func stringColumn(t domain.Table, idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx].String()
		}
	}
	return out
}

func floatColumn(t domain.Table, idx int) []float64 {
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i], _ = row[idx].Float()
		}
	}
	return out
}

func timeColumn(t domain.Table, idx int) []time.Time {
	out := make([]time.Time, len(t.Rows))
	for i, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		c := row[idx]
		switch c.Kind {
		case domain.KindDate:
			out[i] = c.Time
		case domain.KindText:
			if ts, err := time.Parse("2006-01-02", c.Str); err == nil {
				out[i] = ts
			}
		}
	}
	return out
}

// sortedByValue returns row indices ordered by the numeric column
func sortedByValue(t domain.Table, idx int, ascending bool) []int {
	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	vals := floatColumn(t, idx)
	sort.SliceStable(order, func(a, b int) bool {
		if ascending {
			return vals[order[a]] < vals[order[b]]
		}
		return vals[order[a]] > vals[order[b]]
	})
	return order
}

func pick(values []float64, order []int) []float64 {
	out := make([]float64, len(order))
	for i, j := range order {
		out[i] = values[j]
	}
	return out
}

func pickStrings(values []string, order []int) []string {
	out := make([]string, len(order))
	for i, j := range order {
		out[i] = values[j]
	}
	return out
}
