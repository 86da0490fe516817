// Package workbook produces the styled multi-sheet spreadsheet report:
// a cover sheet, a hyperlinked table of contents, and one formatted
// sheet per successful non-empty analysis.
package workbook

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"icsreport/internal/config"
	apperrors "icsreport/internal/errors"
	"icsreport/internal/format"
	"icsreport/pkg/contracts/domain"
)

const (
	coverSheet    = "Report Info"
	contentsSheet = "Contents"

	maxColWidth   = 30
	widthSample   = 20
	chartImgWidth = 700
	chartImgHeight = 400
)

// LabelValue is one cover-sheet detail line
type LabelValue struct {
	Label string
	Value string
}

// Params carries everything one workbook needs beyond the settings
type Params struct {
	Title        string
	RecordsLabel string
	TotalRecords int
	Analyses     []domain.AnalysisResult
	// Images maps analysis name to pre-rendered chart PNG bytes
	Images map[string][]byte
	// ExtraDetails append to the cover sheet after the standard lines
	ExtraDetails []LabelValue
}

// Builder writes spreadsheet reports
type Builder struct {
	settings config.ReportSettings
	logger   *slog.Logger
	now      func() time.Time
}

// NewBuilder creates a workbook builder for the given settings
func NewBuilder(settings config.ReportSettings, logger *slog.Logger) *Builder {
	return &Builder{settings: settings, logger: logger, now: time.Now}
}

// Write builds the workbook and saves it to outputPath. The parent
// directory must already exist; write failures are fatal for the
// invocation and propagate to the caller.
func (b *Builder) Write(params Params, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	if err := b.writeCover(f, params); err != nil {
		return err
	}
	if err := b.writeContents(f, params.Analyses); err != nil {
		return err
	}

	for _, analysis := range params.Analyses {
		if !analysis.OK() {
			b.logger.Debug("skipping errored analysis",
				slog.String("analysis", analysis.Name),
				slog.String("error", analysis.Err))
			continue
		}
		if analysis.Table.IsEmpty() {
			continue
		}
		if err := b.writeAnalysisSheet(f, styles, analysis, params.Images[analysis.Name]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return apperrors.New(apperrors.ErrTypeStorage,
			fmt.Sprintf("failed to save workbook %s", filepath.Base(outputPath)), err)
	}

	b.logger.Info("excel report saved", slog.String("path", outputPath))
	return nil
}

// writeCover renames the default sheet into the Report Info cover
func (b *Builder) writeCover(f *excelize.File, params Params) error {
	if err := f.SetSheetName(f.GetSheetName(0), coverSheet); err != nil {
		return fmt.Errorf("failed to create cover sheet: %w", err)
	}
	hideGridlines(f, coverSheet)

	if err := f.MergeCell(coverSheet, "A1", "D1"); err != nil {
		return fmt.Errorf("failed to merge cover title: %w", err)
	}
	f.SetCellValue(coverSheet, "A1", params.Title)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 24, Bold: true, Color: colorNavy},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(coverSheet, "A1", "A1", titleStyle)

	f.MergeCell(coverSheet, "A2", "D2")
	f.SetCellValue(coverSheet, "A2", b.settings.ClientLabel())
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 16, Color: colorSubtitle},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(coverSheet, "A2", "A2", subtitleStyle)

	successful := 0
	for _, a := range params.Analyses {
		if a.OK() {
			successful++
		}
	}

	recordsLabel := params.RecordsLabel
	if recordsLabel == "" {
		recordsLabel = "Total Records:"
	}
	sourceFile := filepath.Base(b.settings.SourceFile)
	if b.settings.SourceFile == "" {
		sourceFile = "N/A"
	}

	details := []LabelValue{
		{"Client ID:", orUnknown(b.settings.ClientID)},
		{"Report Date:", b.now().Format("January 2, 2006")},
		{"Source File:", sourceFile},
		{recordsLabel, format.CellText("Count", domain.Number(float64(params.TotalRecords)), format.TargetWorkbook)},
		{"Analyses Run:", fmt.Sprintf("%d", successful)},
	}
	details = append(details, params.ExtraDetails...)

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Bold: true, Size: 11},
	})
	if err != nil {
		return err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 11},
	})
	if err != nil {
		return err
	}

	for i, d := range details {
		row := i + 4
		labelCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)
		f.SetCellValue(coverSheet, labelCell, d.Label)
		f.SetCellStyle(coverSheet, labelCell, labelCell, labelStyle)
		f.SetCellValue(coverSheet, valueCell, d.Value)
		f.SetCellStyle(coverSheet, valueCell, valueCell, valueStyle)
	}

	f.SetColWidth(coverSheet, "A", "A", 20)
	f.SetColWidth(coverSheet, "B", "B", 50)
	return nil
}

// writeContents builds the hyperlinked table of contents
func (b *Builder) writeContents(f *excelize.File, analyses []domain.AnalysisResult) error {
	if _, err := f.NewSheet(contentsSheet); err != nil {
		return fmt.Errorf("failed to create contents sheet: %w", err)
	}
	hideGridlines(f, contentsSheet)

	f.MergeCell(contentsSheet, "A1", "C1")
	f.SetCellValue(contentsSheet, "A1", "Table of Contents")
	headingStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 18, Bold: true, Color: colorNavy},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(contentsSheet, "A1", "A1", headingStyle)

	colHeadStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Bold: true, Size: 11},
	})
	if err != nil {
		return err
	}
	f.SetCellValue(contentsSheet, "A3", "#")
	f.SetCellValue(contentsSheet, "B3", "Analysis")
	f.SetCellValue(contentsSheet, "C3", "Sheet")
	f.SetCellStyle(contentsSheet, "A3", "C3", colHeadStyle)

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 11, Color: colorLink, Underline: "single"},
	})
	if err != nil {
		return err
	}

	row := 4
	for i, analysis := range analyses {
		if !analysis.Renderable() {
			continue
		}
		f.SetCellValue(contentsSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(contentsSheet, fmt.Sprintf("B%d", row), analysis.Title)
		sheetCell := fmt.Sprintf("C%d", row)
		f.SetCellValue(contentsSheet, sheetCell, analysis.Sheet())
		if err := f.SetCellHyperLink(contentsSheet, sheetCell,
			fmt.Sprintf("'%s'!A1", analysis.Sheet()), "Location"); err != nil {
			return fmt.Errorf("failed to link contents entry %q: %w", analysis.Name, err)
		}
		f.SetCellStyle(contentsSheet, sheetCell, sheetCell, linkStyle)
		row++
	}

	f.SetColWidth(contentsSheet, "A", "A", 5)
	f.SetColWidth(contentsSheet, "B", "B", 50)
	f.SetColWidth(contentsSheet, "C", "C", 25)
	return nil
}

// writeAnalysisSheet writes one formatted analysis worksheet
func (b *Builder) writeAnalysisSheet(f *excelize.File, styles *styleSet, analysis domain.AnalysisResult, chartPNG []byte) error {
	sheet := analysis.Sheet()
	table := analysis.Table

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row on %q: %w", sheet, err)
	}

	for colIdx, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for rowIdx, row := range table.Rows {
		sheetRow := rowIdx + 2
		rowBand := bandEven
		if format.IsTotalRow(row) {
			rowBand = bandTotal
		} else if sheetRow%2 == 1 {
			rowBand = bandOdd
		}

		for colIdx, col := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, sheetRow)
			if err != nil {
				return err
			}
			if colIdx < len(row) {
				if v := row[colIdx].Value(); v != nil {
					f.SetCellValue(sheet, cell, v)
				}
			}
			styleID, err := styles.dataStyle(rowBand, format.NumberFormat(col))
			if err != nil {
				return err
			}
			f.SetCellStyle(sheet, cell, cell, styleID)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(table.Columns))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, len(table.Rows)+1), nil); err != nil {
		return fmt.Errorf("failed to set autofilter on %q: %w", sheet, err)
	}

	b.sizeColumns(f, sheet, table)

	hasChart := len(chartPNG) > 0
	if hasChart {
		anchor := fmt.Sprintf("A%d", len(table.Rows)+4)
		if err := b.embedChart(f, sheet, anchor, chartPNG); err != nil {
			// A bad image loses the picture, not the sheet
			b.logger.Warn("failed to embed chart image",
				slog.String("sheet", sheet),
				slog.String("error", err.Error()))
			hasChart = false
		}
	}

	linkRow := len(table.Rows) + 3
	if hasChart {
		linkRow = len(table.Rows) + 25
	}
	linkCell := fmt.Sprintf("A%d", linkRow)
	f.SetCellValue(sheet, linkCell, "Back to Contents")
	if err := f.SetCellHyperLink(sheet, linkCell, fmt.Sprintf("'%s'!A1", contentsSheet), "Location"); err != nil {
		return fmt.Errorf("failed to set back link on %q: %w", sheet, err)
	}
	f.SetCellStyle(sheet, linkCell, linkCell, styles.link)

	return nil
}

// sizeColumns widens each column for its header and a sample of the
// first rows, padding percentage and rate columns for their suffix,
// capped at the maximum width.
func (b *Builder) sizeColumns(f *excelize.File, sheet string, table domain.Table) {
	for colIdx, col := range table.Columns {
		maxLen := len(col)
		padded := format.PadsForWidth(col)

		for rowIdx, row := range table.Rows {
			if rowIdx >= widthSample {
				break
			}
			if colIdx >= len(row) {
				continue
			}
			l := len(format.CellText(col, row[colIdx], format.TargetWorkbook))
			if padded {
				l += 2
			}
			if l > maxLen {
				maxLen = l
			}
		}

		width := float64(maxLen + 4)
		if width > maxColWidth {
			width = maxColWidth
		}
		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(sheet, name, name, width)
	}
}

// embedChart anchors a pre-rendered chart image below the data,
// scaled to the standard report size.
func (b *Builder) embedChart(f *excelize.File, sheet, anchor string, data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid chart image: %w", err)
	}

	scaleX, scaleY := 1.0, 1.0
	if cfg.Width > 0 {
		scaleX = float64(chartImgWidth) / float64(cfg.Width)
	}
	if cfg.Height > 0 {
		scaleY = float64(chartImgHeight) / float64(cfg.Height)
	}

	return f.AddPictureFromBytes(sheet, anchor, &excelize.Picture{
		Extension: ".png",
		File:      data,
		Format:    &excelize.GraphicOptions{ScaleX: scaleX, ScaleY: scaleY},
	})
}

func hideGridlines(f *excelize.File, sheet string) {
	show := false
	f.SetSheetView(sheet, -1, &excelize.ViewOptions{ShowGridLines: &show})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
