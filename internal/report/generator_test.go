package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"icsreport/internal/config"
	"icsreport/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Report: config.ReportSettings{
			ClientID:   "CU-1042",
			ClientName: "Harborview Credit Union",
			SourceFile: "accounts.csv",
			OutputDir:  t.TempDir(),
		},
		Charts:  domain.DefaultChartConfig(),
		Outputs: config.OutputConfig{Excel: true, PowerPoint: true},
	}
}

func referralResults() []domain.AnalysisResult {
	return []domain.AnalysisResult{
		{
			Name:  "Top Referrers",
			Title: "Top Referrers",
			Table: domain.Table{
				Columns: []string{"Referrer", "Influence Score"},
				Rows: [][]domain.Cell{
					{domain.Text("Alice"), domain.Number(93.4)},
					{domain.Text("Bob"), domain.Number(87.1)},
				},
			},
		},
		{
			Name:  "Overview KPIs",
			Title: "Overview KPIs",
			Table: domain.Table{
				Columns: []string{"Metric", "Value"},
				Rows:    [][]domain.Cell{{domain.Text("Referral Events"), domain.Number(412)}},
			},
		},
	}
}

func TestGenerateBothDocuments(t *testing.T) {
	cfg := testConfig(t)
	g := NewGenerator(cfg, discardLogger())

	artifacts, err := g.Generate(context.Background(), Request{
		Kind:    KindReferral,
		Results: referralResults(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(artifacts.Workbook), "Referral_Intelligence_"))
	assert.True(t, strings.HasSuffix(artifacts.Workbook, ".xlsx"))
	assert.True(t, strings.HasSuffix(artifacts.Deck, ".pptx"))

	for _, path := range []string{artifacts.Workbook, artifacts.Deck} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	f, err := excelize.OpenFile(artifacts.Workbook)
	require.NoError(t, err)
	defer f.Close()
	title, _ := f.GetCellValue("Report Info", "A1")
	assert.Equal(t, "Referral Intelligence Report", title)
}

func TestGeneratePortfolioNaming(t *testing.T) {
	cfg := testConfig(t)
	cfg.Outputs.PowerPoint = false
	g := NewGenerator(cfg, discardLogger())

	artifacts, err := g.Generate(context.Background(), Request{
		Kind:    KindPortfolio,
		Results: referralResults(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(artifacts.Workbook), "ICS_Analysis_"))
	assert.Empty(t, artifacts.Deck)
}

func TestGenerateExcelOnly(t *testing.T) {
	cfg := testConfig(t)
	cfg.Outputs.PowerPoint = false
	g := NewGenerator(cfg, discardLogger())

	artifacts, err := g.Generate(context.Background(), Request{Kind: KindReferral, Results: referralResults()})
	require.NoError(t, err)
	assert.NotEmpty(t, artifacts.Workbook)
	assert.Empty(t, artifacts.Deck)
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGenerator(testConfig(t), discardLogger())
	_, err := g.Generate(ctx, Request{Kind: KindReferral, Results: referralResults()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateCreatesOutputDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.OutputDir = filepath.Join(cfg.Report.OutputDir, "nested", "reports")
	g := NewGenerator(cfg, discardLogger())

	artifacts, err := g.Generate(context.Background(), Request{Kind: KindReferral, Results: referralResults()})
	require.NoError(t, err)
	assert.FileExists(t, artifacts.Workbook)
}

func TestGenerateUniqueReferrersCoverLine(t *testing.T) {
	cfg := testConfig(t)
	cfg.Outputs.PowerPoint = false
	g := NewGenerator(cfg, discardLogger())

	artifacts, err := g.Generate(context.Background(), Request{Kind: KindReferral, Results: referralResults()})
	require.NoError(t, err)

	f, err := excelize.OpenFile(artifacts.Workbook)
	require.NoError(t, err)
	defer f.Close()

	found := false
	for row := 4; row <= 12; row++ {
		label, _ := f.GetCellValue("Report Info", "A"+strconv.Itoa(row))
		if label == "Unique Referrers" {
			value, _ := f.GetCellValue("Report Info", "B"+strconv.Itoa(row))
			assert.Equal(t, "2", value)
			found = true
		}
	}
	assert.True(t, found, "cover should list unique referrers for referral reports")
}

func TestTotalRecordsFallback(t *testing.T) {
	req := Request{Results: referralResults()}
	assert.Equal(t, 2, totalRecords(req))

	req.TotalRecords = 15342
	assert.Equal(t, 15342, totalRecords(req))
}
