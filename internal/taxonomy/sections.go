package taxonomy

// PortfolioTaxonomy returns the section ordering for the full-portfolio
// accounts report. Executive Summary leads the presentation narrative.
func PortfolioTaxonomy() Taxonomy {
	return Taxonomy{
		{Label: "Executive Summary", Names: []string{
			"Executive Summary",
		}},
		{Label: "Summary", Names: []string{
			"Total ICS Accounts",
			"Open ICS Accounts",
			"ICS by Stat Code",
			"Product Code Distribution",
			"Debit Distribution",
			"Debit x Prod Code",
			"Debit x Branch",
		}},
		{Label: "Portfolio Health", Names: []string{
			"Engagement Decay",
			"Net Portfolio Growth",
			"Spend Concentration",
		}},
		{Label: "Source Analysis", Names: []string{
			"Source Distribution",
			"Source x Stat Code",
			"Source x Prod Code",
			"Source x Branch",
			"Account Type",
			"Source by Year",
		}},
		{Label: "DM Source Deep-Dive", Names: []string{
			"DM Overview",
			"DM by Branch",
			"DM by Debit Status",
			"DM by Product",
			"DM by Year Opened",
			"DM Activity Summary",
			"DM Activity by Branch",
			"DM Monthly Trends",
		}},
		{Label: "Demographics", Names: []string{
			"Age Comparison",
			"Closures",
			"Open vs Close",
			"Balance Tiers",
			"Stat Open Close",
			"Age vs Balance",
			"Balance Tier Detail",
			"Age Distribution",
		}},
		{Label: "Activity Analysis", Names: []string{
			"L12M Activity Summary",
			"Activity by Debit+Source",
			"Activity by Balance",
			"Activity by Branch",
			"Monthly Trends",
		}},
		{Label: "Cohort Analysis", Names: []string{
			"Cohort Activation",
			"Cohort Heatmap",
			"Cohort Milestones",
			"Activation Summary",
			"Growth Patterns",
			"Activation Personas",
			"Branch Activation",
		}},
		{Label: "Performance", Names: []string{
			"Days to First Use",
			"Branch Performance Index",
		}},
		{Label: "Strategic Insights", Names: []string{
			"Activation Funnel",
			"Revenue Impact",
		}},
	}
}

// ReferralTaxonomy returns the section ordering for the referral
// intelligence report.
func ReferralTaxonomy() Taxonomy {
	return Taxonomy{
		{Label: "Referral Intelligence Overview", Names: []string{
			"Overview KPIs",
		}},
		{Label: "Referrer Influence", Names: []string{
			"Top Referrers",
			"Emerging Referrers",
			"Dormant High-Value Referrers",
			"One-time vs Repeat Referrers",
		}},
		{Label: "Staff & Branch", Names: []string{
			"Staff Multipliers",
			"Branch Influence Density",
		}},
		{Label: "Code Health", Names: []string{
			"Code Health Report",
		}},
	}
}
