// Package render rasterizes chart specifications to PNG images. The
// renderer is a replaceable collaborator: document builders accept
// pre-rendered image bytes and treat a missing or failing renderer as
// "no chart images", never as a document failure.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	chartspec "icsreport/internal/chart"
	"icsreport/pkg/contracts/domain"
)

// Renderer turns a chart specification into PNG bytes
type Renderer interface {
	Render(spec chartspec.Spec) ([]byte, error)
}

// PNGRenderer rasterizes specs with go-chart
type PNGRenderer struct {
	Width  int
	Height int
}

// NewPNGRenderer sizes the renderer from the chart configuration
func NewPNGRenderer(cfg domain.ChartConfig) *PNGRenderer {
	return &PNGRenderer{Width: cfg.Width, Height: cfg.Height}
}

// Render rasterizes one spec. Unknown shapes error so the caller can
// log and skip the image.
func (r *PNGRenderer) Render(spec chartspec.Spec) ([]byte, error) {
	switch spec.Shape {
	// Ranked horizontal bars rasterize as vertical bars: go-chart's
	// stacked chart normalizes every bar to its own total, which would
	// erase the ranking.
	case chartspec.ShapeBarVertical, chartspec.ShapeBarHorizontal:
		return r.renderBars(spec)
	case chartspec.ShapeBarStacked:
		return r.renderStacked(spec)
	case chartspec.ShapeBarGrouped:
		return r.renderGrouped(spec)
	case chartspec.ShapeScatterTime:
		return r.renderScatter(spec)
	default:
		return nil, fmt.Errorf("render: unsupported shape %s", spec.Shape)
	}
}

func (r *PNGRenderer) renderBars(spec chartspec.Spec) ([]byte, error) {
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("render: spec %q has no series", spec.Title)
	}
	s := spec.Series[0]
	color := hexColor(s.Color)

	bars := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		bars[i] = chart.Value{
			Label: s.Categories[i],
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := chart.BarChart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: spec.MarginTop, Bottom: spec.MarginBottom},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

func (r *PNGRenderer) renderStacked(spec chartspec.Spec) ([]byte, error) {
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("render: spec %q has no series", spec.Title)
	}

	categories := spec.Series[0].Categories
	bars := make([]chart.StackedBar, len(categories))
	for ci, category := range categories {
		var segs []chart.Value
		for _, s := range spec.Series {
			if ci >= len(s.Values) || s.Values[ci] == 0 {
				continue
			}
			color := hexColor(s.Color)
			segs = append(segs, chart.Value{
				Label: s.Name,
				Value: s.Values[ci],
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
		bars[ci] = chart.StackedBar{Name: category, Values: segs}
	}

	graph := chart.StackedBarChart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: spec.MarginTop, Bottom: spec.MarginBottom},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

func (r *PNGRenderer) renderGrouped(spec chartspec.Spec) ([]byte, error) {
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("render: spec %q has no series", spec.Title)
	}

	var series []chart.Series
	var ticks []chart.Tick
	for i, cat := range spec.Series[0].Categories {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: cat})
	}

	for _, s := range spec.Series {
		xs := make([]float64, len(s.Values))
		for i := range xs {
			xs[i] = float64(i)
		}
		color := hexColor(s.Color)
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeWidth: 3,
				StrokeColor: color,
				DotWidth:    6,
				DotColor:    color,
			},
		}
		if s.SecondaryAxis {
			cs.YAxis = chart.YAxisSecondary
		}
		series = append(series, cs)
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: spec.MarginTop, Bottom: spec.MarginBottom},
		},
		XAxis: chart.XAxis{Name: spec.XTitle, Ticks: ticks},
		YAxis: chart.YAxis{Name: spec.YTitle},
		YAxisSecondary: chart.YAxis{
			Name:  spec.Y2Title,
			Style: chart.Style{Hidden: !hasSecondary(spec)},
		},
		Series: series,
	}
	if spec.Legend.Show {
		graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

func (r *PNGRenderer) renderScatter(spec chartspec.Spec) ([]byte, error) {
	if len(spec.Series) == 0 || len(spec.Series[0].Times) == 0 {
		return nil, fmt.Errorf("render: spec %q has no temporal series", spec.Title)
	}
	s := spec.Series[0]

	// Categories plot as y positions with labeled ticks
	ys := make([]float64, len(s.Categories))
	var ticks []chart.Tick
	for i, cat := range s.Categories {
		ys[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: cat})
	}

	sizes := s.Sizes
	color := hexColor(s.Color)
	ts := chart.TimeSeries{
		Name:    s.Name,
		XValues: s.Times,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    color,
			DotWidth:    6,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				if index < len(sizes) && sizes[index] > 0 {
					return sizes[index] / 2
				}
				return 6
			},
		},
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: spec.MarginTop, Bottom: spec.MarginBottom},
		},
		XAxis:  chart.XAxis{Name: spec.XTitle},
		YAxis:  chart.YAxis{Name: spec.YTitle, Ticks: ticks},
		Series: []chart.Series{ts},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

// RenderAll rasterizes every spec, logging and skipping individual
// failures. A nil renderer disables images entirely.
func RenderAll(r Renderer, specs map[string]chartspec.Spec, logger *slog.Logger) map[string][]byte {
	images := make(map[string][]byte, len(specs))
	if r == nil {
		logger.Warn("chart renderer unavailable; documents will omit chart images")
		return images
	}
	for name, spec := range specs {
		png, err := r.Render(spec)
		if err != nil {
			logger.Warn("chart render failed",
				slog.String("analysis", name),
				slog.String("error", err.Error()))
			continue
		}
		images[name] = png
	}
	return images
}

func hasSecondary(spec chartspec.Spec) bool {
	for _, s := range spec.Series {
		if s.SecondaryAxis {
			return true
		}
	}
	return false
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if hex == "" {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}
