package render

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartspec "icsreport/internal/chart"
	"icsreport/pkg/contracts/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func barSpec(shape chartspec.Shape) chartspec.Spec {
	return chartspec.Spec{
		Shape: shape,
		Title: "Test Chart",
		Series: []chartspec.Series{{
			Name:       "Score",
			Categories: []string{"Alpha", "Beta", "Gamma"},
			Values:     []float64{12, 30, 7},
			Color:      "#1B365D",
		}},
		MarginTop:    60,
		MarginBottom: 40,
	}
}

func TestRenderShapesProducePNG(t *testing.T) {
	r := NewPNGRenderer(domain.DefaultChartConfig())

	shapes := []chartspec.Shape{
		chartspec.ShapeBarVertical,
		chartspec.ShapeBarHorizontal,
		chartspec.ShapeBarStacked,
		chartspec.ShapeBarGrouped,
	}
	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			png, err := r.Render(barSpec(shape))
			require.NoError(t, err)
			require.Greater(t, len(png), 8)
			assert.Equal(t, pngMagic, png[:4])
		})
	}
}

func TestRenderScatterTime(t *testing.T) {
	r := NewPNGRenderer(domain.DefaultChartConfig())
	spec := chartspec.Spec{
		Shape: chartspec.ShapeScatterTime,
		Title: "Emerging",
		Series: []chartspec.Series{{
			Categories: []string{"Alice", "Bob"},
			Times: []time.Time{
				time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
			},
			Sizes:       []float64{16, 40},
			ColorValues: []float64{80, 95},
			Color:       "#4A90D9",
		}},
	}

	png, err := r.Render(spec)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderEmptySeriesFails(t *testing.T) {
	r := NewPNGRenderer(domain.DefaultChartConfig())
	_, err := r.Render(chartspec.Spec{Shape: chartspec.ShapeBarVertical, Title: "Empty"})
	assert.Error(t, err)
}

type failingRenderer struct{}

func (failingRenderer) Render(chartspec.Spec) ([]byte, error) {
	return nil, errors.New("raster backend down")
}

func TestRenderAllSkipsFailures(t *testing.T) {
	specs := map[string]chartspec.Spec{
		"one": barSpec(chartspec.ShapeBarVertical),
		"two": barSpec(chartspec.ShapeBarVertical),
	}

	images := RenderAll(failingRenderer{}, specs, discardLogger())
	assert.Empty(t, images)
}

func TestRenderAllNilRenderer(t *testing.T) {
	images := RenderAll(nil, map[string]chartspec.Spec{"one": barSpec(chartspec.ShapeBarVertical)}, discardLogger())
	assert.Empty(t, images)
}

func TestRenderAllCollectsSuccesses(t *testing.T) {
	r := NewPNGRenderer(domain.DefaultChartConfig())
	specs := map[string]chartspec.Spec{
		"good": barSpec(chartspec.ShapeBarVertical),
		"bad":  {Shape: chartspec.ShapeBarVertical, Title: "no series"},
	}

	images := RenderAll(r, specs, discardLogger())
	require.Contains(t, images, "good")
	assert.NotContains(t, images, "bad")
}
