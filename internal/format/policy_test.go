package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"icsreport/pkg/contracts/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		col  string
		want Class
	}{
		{"percent symbol", "% of Total", ClassPercentage},
		{"pct keyword", "Growth PCT", ClassPercentage},
		{"percent beats total", "Total %", ClassPercentage},
		{"dollar symbol", "Amount ($)", ClassCurrency},
		{"balance keyword", "Avg Bal", ClassCurrency},
		{"spend keyword", "Monthly Spend", ClassCurrency},
		{"balance beats count", "Balance Count", ClassCurrency},
		{"ratio keyword", "Conversion Ratio", ClassRatio},
		{"count keyword", "Account Count", ClassCount},
		{"total keyword", "Total Accounts", ClassCount},
		{"swipe keyword", "Swipe Volume", ClassCount},
		{"case insensitive", "avg bal", ClassCurrency},
		{"plain column", "Branch", ClassGeneral},
		{"empty column", "", ClassGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.col))
		})
	}
}

func TestPadsForWidth(t *testing.T) {
	tests := []struct {
		name string
		col  string
		want bool
	}{
		{"percent symbol", "% of Total", true},
		{"pct keyword", "Growth PCT", true},
		{"rate keyword", "Approval Rate", true},
		{"rate lowercase", "churn rate", true},
		{"currency", "Avg Bal", false},
		{"count", "Account Count", false},
		{"plain", "Branch", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PadsForWidth(tt.col))
		})
	}
}

func TestNumberFormat(t *testing.T) {
	assert.Equal(t, `0.0"%"`, NumberFormat("% of Total"))
	assert.Equal(t, "$#,##0.00", NumberFormat("Avg Bal"))
	assert.Equal(t, "0.00", NumberFormat("Risk Ratio"))
	assert.Equal(t, "#,##0", NumberFormat("Swipe Count"))
	assert.Equal(t, "General", NumberFormat("Branch"))
}

func TestCellTextPercentage(t *testing.T) {
	got := CellText("% of Total", domain.Number(75.0), TargetWorkbook)
	assert.Equal(t, "75.0%", got)

	got = CellText("% of Total", domain.Number(0.25), TargetSlide)
	assert.Equal(t, "0.2%", got)
}

func TestCellTextCurrencyTargets(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		target Target
		want   string
	}{
		{"slide large rounds to whole dollars", 1234.5, TargetSlide, "$1,235"},
		{"slide small keeps cents", 50.25, TargetSlide, "$50.25"},
		{"slide exactly at threshold", 1000, TargetSlide, "$1,000"},
		{"slide just below threshold", 999.99, TargetSlide, "$999.99"},
		{"workbook always two decimals", 1234.5, TargetWorkbook, "$1,234.50"},
		{"workbook negative sign before digits", -500.5, TargetWorkbook, "$-500.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellText("Avg Bal", domain.Number(tt.value), tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellTextMissing(t *testing.T) {
	assert.Equal(t, "", CellText("Branch", domain.Missing(), TargetWorkbook))
	assert.Equal(t, "-", CellText("Branch", domain.Missing(), TargetSlide))
}

func TestCellTextGeneral(t *testing.T) {
	assert.Equal(t, "12,345", CellText("Accounts", domain.Number(12345), TargetSlide))
	assert.Equal(t, "12,345.68", CellText("Score", domain.Number(12345.678), TargetSlide))
	assert.Equal(t, "Main Branch", CellText("Branch", domain.Text("Main Branch"), TargetWorkbook))
}

func TestCellTextDatePassesThrough(t *testing.T) {
	d := domain.Date(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-15", CellText("First Referral", d, TargetSlide))
}

func TestCellTextParsesNumericText(t *testing.T) {
	got := CellText("Avg Bal", domain.Text("1,500"), TargetWorkbook)
	assert.Equal(t, "$1,500.00", got)
}
