// Package chart builds renderer-agnostic chart specifications from
// analysis tables. Specs are consumed immediately by the document
// builders or handed to a rasterizer; they are never persisted.
package chart

import "time"

// Shape is the closed set of chart shapes the registry can produce
type Shape int

const (
	// ShapeBarHorizontal ranks one metric on horizontal bars
	ShapeBarHorizontal Shape = iota
	// ShapeBarVertical ranks one metric on vertical bars
	ShapeBarVertical
	// ShapeBarGrouped groups a primary and a secondary metric, the
	// secondary plotted on a second y axis
	ShapeBarGrouped
	// ShapeBarStacked stacks a metric split by a categorical dimension
	ShapeBarStacked
	// ShapeScatterTime scatters size/color-encoded points over a
	// temporal axis
	ShapeScatterTime
)

// String returns the shape name for logging
func (s Shape) String() string {
	switch s {
	case ShapeBarHorizontal:
		return "bar_horizontal"
	case ShapeBarVertical:
		return "bar_vertical"
	case ShapeBarGrouped:
		return "bar_grouped"
	case ShapeBarStacked:
		return "bar_stacked"
	case ShapeScatterTime:
		return "scatter_time"
	default:
		return "unknown"
	}
}

// Series is one plotted data series within a spec
type Series struct {
	Name       string
	Categories []string
	Values     []float64
	Color      string

	// SecondaryAxis plots the series against the right-hand y axis
	// (grouped shape only)
	SecondaryAxis bool

	// Temporal scatter encodings
	Times       []time.Time
	Sizes       []float64
	ColorValues []float64
}

// Legend placement shared by every chart: horizontal, anchored above
// the plot area on the right.
type Legend struct {
	Show       bool
	Horizontal bool
	AboveRight bool
}

// Spec is a complete renderer-agnostic chart description
type Spec struct {
	Shape  Shape
	Title  string
	XTitle string
	YTitle string
	Y2Title string

	Series []Series

	Theme        string
	Legend       Legend
	MarginTop    int
	MarginBottom int
}

// Uniform margins applied to every chart
const (
	marginTop    = 60
	marginBottom = 40
)
