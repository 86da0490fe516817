package workbook

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"icsreport/internal/config"
	"icsreport/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() config.ReportSettings {
	return config.ReportSettings{
		ClientID:   "CU-1042",
		ClientName: "Harborview Credit Union",
		SourceFile: "/data/extracts/accounts_2026_q2.csv",
		OutputDir:  "output",
	}
}

func testAnalyses() []domain.AnalysisResult {
	return []domain.AnalysisResult{
		{
			Name:  "Top Referrers",
			Title: "Top Referrers by Influence",
			Table: domain.Table{
				Columns: []string{"Referrer", "Influence Score", "Avg Bal", "% of Total"},
				Rows: [][]domain.Cell{
					{domain.Text("Alice"), domain.Number(93.4), domain.Number(15230.5), domain.Number(41.2)},
					{domain.Text("Bob"), domain.Number(87.1), domain.Number(4410), domain.Number(28.9)},
					{domain.Text("Total"), domain.Missing(), domain.Number(19640.5), domain.Number(70.1)},
				},
			},
		},
		{
			Name:  "Branch Influence Density",
			Title: "Branch Influence Density",
			Table: domain.Table{
				Columns: []string{"Branch", "Avg Influence Score"},
				Rows: [][]domain.Cell{
					{domain.Text("Main"), domain.Number(74.2)},
				},
			},
		},
		{
			Name:  "Failed Analysis",
			Title: "Failed Analysis",
			Err:   "upstream computation failed",
		},
	}
}

func writeTestWorkbook(t *testing.T, params Params) string {
	t.Helper()
	b := NewBuilder(testSettings(), discardLogger())
	b.now = func() time.Time { return time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC) }

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, b.Write(params, path))
	return path
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 4; i++ {
		img.Set(i, i, color.RGBA{R: 27, G: 54, B: 93, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWriteWorkbookStructure(t *testing.T) {
	path := writeTestWorkbook(t, Params{
		Title:        "ICS Accounts Analysis Report",
		RecordsLabel: "Total Records:",
		TotalRecords: 15342,
		Analyses:     testAnalyses(),
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, "Report Info", sheets[0])
	assert.Contains(t, sheets, "Contents")
	assert.Contains(t, sheets, "Top_Referrers")
	assert.Contains(t, sheets, "Branch_Influence_Density")
	assert.NotContains(t, sheets, "Failed_Analysis")
}

func TestWriteCoverSheet(t *testing.T) {
	path := writeTestWorkbook(t, Params{
		Title:        "ICS Accounts Analysis Report",
		RecordsLabel: "Total Records:",
		TotalRecords: 15342,
		Analyses:     testAnalyses(),
		ExtraDetails: []LabelValue{{Label: "Unique Referrers", Value: "412"}},
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Report Info", "A1")
	assert.Equal(t, "ICS Accounts Analysis Report", title)

	client, _ := f.GetCellValue("Report Info", "A2")
	assert.Equal(t, "Harborview Credit Union", client)

	labels := map[string]string{}
	for row := 4; row <= 9; row++ {
		label, _ := f.GetCellValue("Report Info", fmt.Sprintf("A%d", row))
		value, _ := f.GetCellValue("Report Info", fmt.Sprintf("B%d", row))
		labels[label] = value
	}
	assert.Equal(t, "CU-1042", labels["Client ID:"])
	assert.Equal(t, "June 30, 2026", labels["Report Date:"])
	assert.Equal(t, "accounts_2026_q2.csv", labels["Source File:"])
	assert.Equal(t, "15,342", labels["Total Records:"])
	// Two successful analyses, the third errored
	assert.Equal(t, "2", labels["Analyses Run:"])
	assert.Equal(t, "412", labels["Unique Referrers"])

	width, err := f.GetColWidth("Report Info", "A")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
}

func TestSizeColumnsPadsRateColumns(t *testing.T) {
	analyses := []domain.AnalysisResult{{
		Name:  "Code Conversion",
		Title: "Code Conversion",
		Table: domain.Table{
			Columns: []string{"Rate", "Score"},
			Rows: [][]domain.Cell{
				{domain.Number(123456.78), domain.Number(123456.78)},
			},
		},
	}}
	path := writeTestWorkbook(t, Params{Title: "Report", Analyses: analyses})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Identical cell text, but the rate column carries the suffix pad
	rate, err := f.GetColWidth("Code_Conversion", "A")
	require.NoError(t, err)
	score, err := f.GetColWidth("Code_Conversion", "B")
	require.NoError(t, err)
	assert.Equal(t, score+2, rate)
}

func TestWriteContentsLinks(t *testing.T) {
	path := writeTestWorkbook(t, Params{Title: "Report", Analyses: testAnalyses()})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	heading, _ := f.GetCellValue("Contents", "A1")
	assert.Equal(t, "Table of Contents", heading)

	name, _ := f.GetCellValue("Contents", "B4")
	assert.Equal(t, "Top Referrers by Influence", name)
	sheet, _ := f.GetCellValue("Contents", "C4")
	assert.Equal(t, "Top_Referrers", sheet)

	hasLink, target, err := f.GetCellHyperLink("Contents", "C4")
	require.NoError(t, err)
	assert.True(t, hasLink)
	assert.Equal(t, "'Top_Referrers'!A1", target)

	// The errored analysis never makes the contents
	next, _ := f.GetCellValue("Contents", "B6")
	assert.Empty(t, next)
}

func TestWriteAnalysisSheet(t *testing.T) {
	path := writeTestWorkbook(t, Params{Title: "Report", Analyses: testAnalyses()})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, _ := f.GetCellValue("Top_Referrers", "A1")
	assert.Equal(t, "Referrer", header)

	first, _ := f.GetCellValue("Top_Referrers", "A2")
	assert.Equal(t, "Alice", first)

	// Missing value in the total row stays blank
	blank, _ := f.GetCellValue("Top_Referrers", "B4")
	assert.Empty(t, blank)

	back, _ := f.GetCellValue("Top_Referrers", "A6")
	assert.Equal(t, "Back to Contents", back)
}

func TestWriteEmbedsChartImage(t *testing.T) {
	params := Params{
		Title:    "Report",
		Analyses: testAnalyses(),
		Images:   map[string][]byte{"Top Referrers": tinyPNG(t)},
	}
	path := writeTestWorkbook(t, params)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	pics, err := f.GetPictures("Top_Referrers", "A7")
	require.NoError(t, err)
	assert.NotEmpty(t, pics)

	// Back link moves below the chart area
	back, _ := f.GetCellValue("Top_Referrers", "A28")
	assert.Equal(t, "Back to Contents", back)
}

func TestWriteCorruptChartImageKeepsSheet(t *testing.T) {
	params := Params{
		Title:    "Report",
		Analyses: testAnalyses(),
		Images:   map[string][]byte{"Top Referrers": []byte("not a png")},
	}
	path := writeTestWorkbook(t, params)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Sheet survives, back link sits in the no-chart position
	back, _ := f.GetCellValue("Top_Referrers", "A6")
	assert.Equal(t, "Back to Contents", back)
}
