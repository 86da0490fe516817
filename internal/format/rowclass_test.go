package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"icsreport/pkg/contracts/domain"
)

func TestIsTotalRow(t *testing.T) {
	tests := []struct {
		name string
		row  []domain.Cell
		want bool
	}{
		{"plain total", []domain.Cell{domain.Text("Total")}, true},
		{"grand total", []domain.Cell{domain.Text("Grand Total")}, true},
		{"case and whitespace", []domain.Cell{domain.Text("  GRAND TOTAL  ")}, true},
		{"lowercase", []domain.Cell{domain.Text("total")}, true},
		{"ordinary label", []domain.Cell{domain.Text("Main")}, false},
		{"total elsewhere in text", []domain.Cell{domain.Text("Total Accounts")}, false},
		{"numeric first cell", []domain.Cell{domain.Number(42)}, false},
		{"missing first cell", []domain.Cell{domain.Missing()}, false},
		{"empty row", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTotalRow(tt.row))
		})
	}
}
