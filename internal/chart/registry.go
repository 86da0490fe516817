package chart

import (
	"fmt"
	"log/slog"

	"icsreport/pkg/contracts/domain"
)

// BuildFunc produces a chart specification from an analysis table
type BuildFunc func(domain.Table, domain.ChartConfig) (Spec, error)

// Builder pairs a chart shape with its build function and the columns
// the table must carry. Each registered analysis name maps to exactly
// one shape.
type Builder struct {
	Shape           Shape
	RequiredColumns []string
	Build           BuildFunc
}

// Registry maps analysis identity to chart builders and applies the
// uniform presentation rules on dispatch.
type Registry struct {
	builders map[string]Builder
	order    []string
}

// NewRegistry returns the registry of canonical report charts
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}

	r.mustRegister("Top Referrers", Builder{
		Shape:           ShapeBarHorizontal,
		RequiredColumns: []string{"Referrer", "Influence Score"},
		Build:           buildTopReferrers,
	})
	r.mustRegister("Emerging Referrers", Builder{
		Shape:           ShapeScatterTime,
		RequiredColumns: []string{"Referrer", "First Referral", "Burst Count", "Influence Score"},
		Build:           buildEmergingReferrers,
	})
	r.mustRegister("Staff Multipliers", Builder{
		Shape:           ShapeBarGrouped,
		RequiredColumns: []string{"Staff", "Multiplier Score"},
		Build:           buildStaffMultipliers,
	})
	r.mustRegister("Branch Influence Density", Builder{
		Shape:           ShapeBarVertical,
		RequiredColumns: []string{"Branch", "Avg Influence Score"},
		Build:           buildBranchDensity,
	})
	r.mustRegister("Code Health Report", Builder{
		Shape:           ShapeBarStacked,
		RequiredColumns: []string{"Channel", "Type", "Reliability", "Count"},
		Build:           buildCodeHealth,
	})

	return r
}

// mustRegister rejects malformed registrations at construction time
func (r *Registry) mustRegister(name string, b Builder) {
	if b.Build == nil {
		panic(fmt.Sprintf("chart: builder for %q has no build function", name))
	}
	if _, dup := r.builders[name]; dup {
		panic(fmt.Sprintf("chart: duplicate builder registration %q", name))
	}
	r.builders[name] = b
	r.order = append(r.order, name)
}

// Lookup returns the builder registered for an analysis name
func (r *Registry) Lookup(name string) (Builder, bool) {
	b, ok := r.builders[name]
	return b, ok
}

// Names returns registered analysis names in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// BuildAll builds specs for every renderable, registered analysis.
// Unregistered names are skipped silently; a failing builder is logged
// and excluded without aborting the remaining analyses. Uniform
// presentation is injected here: theme, title from the analysis display
// title, horizontal legend anchored above-right, fixed margins, and
// legend suppression for lone-series figures.
func (r *Registry) BuildAll(results []domain.AnalysisResult, cfg domain.ChartConfig, logger *slog.Logger) map[string]Spec {
	specs := make(map[string]Spec)

	for _, analysis := range results {
		if !analysis.Renderable() {
			continue
		}

		builder, ok := r.builders[analysis.Name]
		if !ok {
			logger.Debug("no chart builder registered", slog.String("analysis", analysis.Name))
			continue
		}

		if col, ok := missingColumn(builder, analysis.Table); !ok {
			logger.Warn("table missing chart column",
				slog.String("analysis", analysis.Name),
				slog.String("column", col))
			continue
		}

		spec, err := builder.Build(analysis.Table, cfg)
		if err != nil {
			logger.Warn("chart build failed",
				slog.String("analysis", analysis.Name),
				slog.String("error", err.Error()))
			continue
		}

		spec.Title = analysis.Title
		spec.Theme = cfg.Theme
		spec.MarginTop = marginTop
		spec.MarginBottom = marginBottom
		spec.Legend = Legend{
			Show:       len(spec.Series) > 1,
			Horizontal: true,
			AboveRight: true,
		}

		specs[analysis.Name] = spec
	}

	return specs
}

// missingColumn reports the first required column the table lacks
func missingColumn(b Builder, t domain.Table) (string, bool) {
	for _, col := range b.RequiredColumns {
		if !hasColumn(t, col) {
			return col, false
		}
	}
	return "", true
}
