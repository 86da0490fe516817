package report

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "icsreport/internal/errors"
	"icsreport/pkg/contracts/domain"
)

// The analyses file is the handoff contract with the upstream analysis
// engine: one JSON document with the report kind, the source record
// count and the precomputed tables. Row cells are plain JSON values,
// null marks a missing value.

type inputFile struct {
	Kind         string          `json:"kind"`
	TotalRecords int             `json:"total_records"`
	Analyses     []inputAnalysis `json:"analyses"`
}

type inputAnalysis struct {
	Name    string          `json:"name"`
	Title   string          `json:"title"`
	Sheet   string          `json:"sheet_name,omitempty"`
	Error   string          `json:"error,omitempty"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// LoadRequest reads an analyses JSON file into a synthesis request.
func LoadRequest(path string) (Request, error) {
	var req Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, apperrors.New(apperrors.ErrTypeValidation,
			fmt.Sprintf("read analyses file %s", path), err)
	}
	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		return req, apperrors.New(apperrors.ErrTypeValidation,
			fmt.Sprintf("parse analyses file %s", path), err)
	}

	switch in.Kind {
	case "", string(KindPortfolio):
		req.Kind = KindPortfolio
	case string(KindReferral):
		req.Kind = KindReferral
	default:
		return req, apperrors.New(apperrors.ErrTypeValidation,
			fmt.Sprintf("unknown report kind %q", in.Kind), nil)
	}

	req.TotalRecords = in.TotalRecords
	req.Results = make([]domain.AnalysisResult, 0, len(in.Analyses))
	for _, a := range in.Analyses {
		result := domain.AnalysisResult{
			Name:      a.Name,
			Title:     a.Title,
			SheetName: a.Sheet,
			Err:       a.Error,
		}
		if result.Title == "" {
			result.Title = a.Name
		}
		result.Table = domain.Table{
			Columns: a.Columns,
			Rows:    make([][]domain.Cell, 0, len(a.Rows)),
		}
		for _, row := range a.Rows {
			cells := make([]domain.Cell, len(row))
			for i, v := range row {
				cells[i] = toCell(v)
			}
			result.Table.Rows = append(result.Table.Rows, cells)
		}
		req.Results = append(req.Results, result)
	}
	return req, nil
}

func toCell(v interface{}) domain.Cell {
	switch val := v.(type) {
	case nil:
		return domain.Missing()
	case float64:
		return domain.Number(val)
	case string:
		return domain.Text(val)
	case bool:
		if val {
			return domain.Text("true")
		}
		return domain.Text("false")
	default:
		return domain.Text(fmt.Sprint(val))
	}
}
