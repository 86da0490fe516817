package chart

import (
	"icsreport/pkg/contracts/domain"
)

// buildTopReferrers ranks referrers by influence score on horizontal
// bars, lowest first so the strongest referrer renders at the top.
func buildTopReferrers(t domain.Table, cfg domain.ChartConfig) (Spec, error) {
	scoreIdx, err := columnIndex(t, "Influence Score")
	if err != nil {
		return Spec{}, err
	}
	refIdx, err := columnIndex(t, "Referrer")
	if err != nil {
		return Spec{}, err
	}

	order := sortedByValue(t, scoreIdx, true)
	return Spec{
		Shape:  ShapeBarHorizontal,
		XTitle: "Influence Score",
		YTitle: "Referrer",
		Series: []Series{{
			Categories: pickStrings(stringColumn(t, refIdx), order),
			Values:     pick(floatColumn(t, scoreIdx), order),
			Color:      cfg.Color(0),
		}},
	}, nil
}

// buildBranchDensity plots average influence score per branch on
// vertical bars, sorted descending.
func buildBranchDensity(t domain.Table, cfg domain.ChartConfig) (Spec, error) {
	scoreIdx, err := columnIndex(t, "Avg Influence Score")
	if err != nil {
		return Spec{}, err
	}
	branchIdx, err := columnIndex(t, "Branch")
	if err != nil {
		return Spec{}, err
	}

	order := sortedByValue(t, scoreIdx, false)
	return Spec{
		Shape:  ShapeBarVertical,
		XTitle: "Branch",
		YTitle: "Avg Influence Score",
		Series: []Series{{
			Categories: pickStrings(stringColumn(t, branchIdx), order),
			Values:     pick(floatColumn(t, scoreIdx), order),
			Color:      cfg.Color(0),
		}},
	}, nil
}

// buildStaffMultipliers groups multiplier score with referrals
// processed, the latter on a secondary axis when the column exists.
func buildStaffMultipliers(t domain.Table, cfg domain.ChartConfig) (Spec, error) {
	scoreIdx, err := columnIndex(t, "Multiplier Score")
	if err != nil {
		return Spec{}, err
	}
	staffIdx, err := columnIndex(t, "Staff")
	if err != nil {
		return Spec{}, err
	}

	order := sortedByValue(t, scoreIdx, false)
	staff := pickStrings(stringColumn(t, staffIdx), order)

	series := []Series{{
		Name:       "Multiplier Score",
		Categories: staff,
		Values:     pick(floatColumn(t, scoreIdx), order),
		Color:      cfg.Color(0),
	}}

	if procIdx, err := columnIndex(t, "Referrals Processed"); err == nil {
		series = append(series, Series{
			Name:          "Referrals Processed",
			Categories:    staff,
			Values:        pick(floatColumn(t, procIdx), order),
			Color:         cfg.Color(1),
			SecondaryAxis: true,
		})
	}

	return Spec{
		Shape:   ShapeBarGrouped,
		XTitle:  "Staff",
		YTitle:  "Multiplier Score",
		Y2Title: "Referrals Processed",
		Series:  series,
	}, nil
}

// buildCodeHealth stacks code counts by reliability tier over
// channel/type categories.
func buildCodeHealth(t domain.Table, cfg domain.ChartConfig) (Spec, error) {
	chanIdx, err := columnIndex(t, "Channel")
	if err != nil {
		return Spec{}, err
	}
	typeIdx, err := columnIndex(t, "Type")
	if err != nil {
		return Spec{}, err
	}
	relIdx, err := columnIndex(t, "Reliability")
	if err != nil {
		return Spec{}, err
	}
	countIdx, err := columnIndex(t, "Count")
	if err != nil {
		return Spec{}, err
	}

	// Union of channel/type labels in appearance order; each
	// reliability tier becomes one stacked series aligned to it.
	var labels []string
	labelPos := make(map[string]int)
	var tiers []string
	tierSeen := make(map[string]bool)

	counts := floatColumn(t, countIdx)
	rels := stringColumn(t, relIdx)
	rowLabels := make([]string, len(t.Rows))
	for i := range t.Rows {
		label := stringColumn(t, chanIdx)[i] + " / " + stringColumn(t, typeIdx)[i]
		rowLabels[i] = label
		if _, ok := labelPos[label]; !ok {
			labelPos[label] = len(labels)
			labels = append(labels, label)
		}
		if !tierSeen[rels[i]] {
			tierSeen[rels[i]] = true
			tiers = append(tiers, rels[i])
		}
	}

	series := make([]Series, len(tiers))
	for si, tier := range tiers {
		values := make([]float64, len(labels))
		for i := range t.Rows {
			if rels[i] == tier {
				values[labelPos[rowLabels[i]]] += counts[i]
			}
		}
		series[si] = Series{
			Name:       tier,
			Categories: labels,
			Values:     values,
			Color:      cfg.Color(si),
		}
	}

	return Spec{
		Shape:  ShapeBarStacked,
		XTitle: "Channel / Type",
		YTitle: "Count",
		Series: series,
	}, nil
}

// buildEmergingReferrers scatters referrers over their first referral
// date, marker size from burst count and color from influence score.
func buildEmergingReferrers(t domain.Table, cfg domain.ChartConfig) (Spec, error) {
	firstIdx, err := columnIndex(t, "First Referral")
	if err != nil {
		return Spec{}, err
	}
	refIdx, err := columnIndex(t, "Referrer")
	if err != nil {
		return Spec{}, err
	}
	burstIdx, err := columnIndex(t, "Burst Count")
	if err != nil {
		return Spec{}, err
	}
	scoreIdx, err := columnIndex(t, "Influence Score")
	if err != nil {
		return Spec{}, err
	}

	sizes := floatColumn(t, burstIdx)
	for i, s := range sizes {
		if s < 1 {
			s = 1
		}
		sizes[i] = s * 8
	}

	return Spec{
		Shape:  ShapeScatterTime,
		XTitle: "First Referral Date",
		YTitle: "Referrer",
		Series: []Series{{
			Categories:  stringColumn(t, refIdx),
			Times:       timeColumn(t, firstIdx),
			Sizes:       sizes,
			ColorValues: floatColumn(t, scoreIdx),
			Color:       cfg.Color(1),
		}},
	}, nil
}
