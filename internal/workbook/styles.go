package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Report palette
const (
	colorNavy      = "1B365D"
	colorZebraGray = "FAFAFA"
	colorTotalGray = "F0F0F0"
	colorBorder    = "D0D0D0"
	colorLink      = "0563C1"
	colorSubtitle  = "666666"
)

// band selects the visual treatment of a data row
type band int

const (
	bandEven band = iota
	bandOdd
	bandTotal
)

// styleSet registers the workbook styles once and caches the
// band x number-format combinations excelize needs per cell.
type styleSet struct {
	f      *excelize.File
	header int
	link   int
	cache  map[string]int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{f: f, cache: make(map[string]int)}

	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Bold: true, Color: "FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorNavy}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register header style: %w", err)
	}

	s.link, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 10, Color: colorLink, Underline: "single"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register link style: %w", err)
	}

	return s, nil
}

// dataStyle returns the style for a data cell, combining its row band
// with the column's number format.
func (s *styleSet) dataStyle(b band, numFmt string) (int, error) {
	key := fmt.Sprintf("%d|%s", b, numFmt)
	if id, ok := s.cache[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	}
	switch b {
	case bandOdd:
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{colorZebraGray}, Pattern: 1}
	case bandTotal:
		style.Font.Bold = true
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{colorTotalGray}, Pattern: 1}
	}
	if numFmt != "" && numFmt != "General" {
		fmtCopy := numFmt
		style.CustomNumFmt = &fmtCopy
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to register data style: %w", err)
	}
	s.cache[key] = id
	return id, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: colorBorder},
		{Type: "right", Style: 1, Color: colorBorder},
		{Type: "top", Style: 1, Color: colorBorder},
		{Type: "bottom", Style: 1, Color: colorBorder},
	}
}
