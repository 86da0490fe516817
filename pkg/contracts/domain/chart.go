package domain

// BrandColors is the default chart palette
var BrandColors = []string{
	"#1B365D", "#4A90D9", "#7BC67E", "#F5A623", "#D0021B", "#8B572A",
}

// ChartConfig holds the shared chart styling settings. One instance is
// constructed at startup and passed read-only to every chart builder.
type ChartConfig struct {
	Theme  string   `json:"theme" yaml:"theme"`
	Colors []string `json:"colors" yaml:"colors" validate:"min=1"`
	Width  int      `json:"width" yaml:"width" validate:"gt=0"`
	Height int      `json:"height" yaml:"height" validate:"gt=0"`
}

// DefaultChartConfig returns the standard report chart styling
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Theme:  "report_white",
		Colors: append([]string(nil), BrandColors...),
		Width:  900,
		Height: 500,
	}
}

// Color returns the palette entry for a series index, wrapping when the
// series count exceeds the palette
func (c ChartConfig) Color(i int) string {
	if len(c.Colors) == 0 {
		return BrandColors[i%len(BrandColors)]
	}
	return c.Colors[i%len(c.Colors)]
}
