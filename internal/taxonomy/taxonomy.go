// Package taxonomy partitions a flat analysis-result collection into the
// ordered narrative sections used by the slide deck. The taxonomy is a
// presentation hint, never a filter: every renderable analysis lands in
// exactly one section or in the residual bucket.
package taxonomy

import "icsreport/pkg/contracts/domain"

// ResidualLabel names the catch-all section for analyses no taxonomy
// section claims.
const ResidualLabel = "Additional Analyses"

// Section is one ordered narrative grouping of canonical analysis names
type Section struct {
	Label string
	Names []string
}

// Taxonomy is an ordered list of sections. Instances are static
// configuration, constructed once and passed into the deck builder.
type Taxonomy []Section

// SectionGroup pairs a section label with the renderable analyses that
// matched it, in section order.
type SectionGroup struct {
	Label    string
	Analyses []domain.AnalysisResult
}

// Organize walks the taxonomy in order and collects, per section, the
// renderable analyses whose names it lists. Sections with no matches are
// dropped. Renderable analyses never named by any section come back in
// the residual slice, preserving input order.
func Organize(results []domain.AnalysisResult, tax Taxonomy) ([]SectionGroup, []domain.AnalysisResult) {
	lookup := make(map[string]domain.AnalysisResult, len(results))
	for _, a := range results {
		if a.Renderable() {
			lookup[a.Name] = a
		}
	}

	mapped := make(map[string]bool)
	for _, section := range tax {
		for _, name := range section.Names {
			mapped[name] = true
		}
	}

	var groups []SectionGroup
	for _, section := range tax {
		var members []domain.AnalysisResult
		for _, name := range section.Names {
			if a, ok := lookup[name]; ok {
				members = append(members, a)
			}
		}
		if len(members) > 0 {
			groups = append(groups, SectionGroup{Label: section.Label, Analyses: members})
		}
	}

	var residual []domain.AnalysisResult
	for _, a := range results {
		if a.Renderable() && !mapped[a.Name] {
			residual = append(residual, a)
		}
	}

	return groups, residual
}
