// Package report orchestrates one synthesis run: chart specs are built
// and rasterized, then the workbook and deck builders each produce one
// artifact under the configured output directory.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"icsreport/internal/chart"
	"icsreport/internal/config"
	"icsreport/internal/deck"
	apperrors "icsreport/internal/errors"
	"icsreport/internal/format"
	"icsreport/internal/render"
	"icsreport/internal/taxonomy"
	"icsreport/internal/workbook"
	"icsreport/pkg/contracts/domain"
)

// Kind selects the report flavor: titles, cover lines, section
// taxonomy and output filenames.
type Kind string

const (
	KindPortfolio Kind = "portfolio"
	KindReferral  Kind = "referral"
)

type kindProfile struct {
	workbookTitle string
	deckTitle     string
	recordsLabel  string
	baseName      string
	sections      taxonomy.Taxonomy
}

func profileFor(kind Kind) kindProfile {
	if kind == KindReferral {
		return kindProfile{
			workbookTitle: "Referral Intelligence Report",
			deckTitle:     "Referral Intelligence",
			recordsLabel:  "Referral Events",
			baseName:      "Referral_Intelligence",
			sections:      taxonomy.ReferralTaxonomy(),
		}
	}
	return kindProfile{
		workbookTitle: "ICS Accounts Analysis Report",
		deckTitle:     "ICS Accounts Analysis",
		recordsLabel:  "Total Records",
		baseName:      "ICS_Analysis",
		sections:      taxonomy.PortfolioTaxonomy(),
	}
}

// Request is one synthesis job. TotalRecords comes from the upstream
// analysis engine; when zero the largest table's row count stands in.
// Images may carry pre-rendered chart PNGs keyed by analysis name;
// when nil the generator renders live.
type Request struct {
	Kind         Kind
	Results      []domain.AnalysisResult
	TotalRecords int
	Images       map[string][]byte
}

// Artifacts reports what a run produced.
type Artifacts struct {
	Workbook string
	Deck     string
}

// Generator runs the synthesis pipeline.
type Generator struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *chart.Registry
	renderer render.Renderer
	now      func() time.Time
}

func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg:      cfg,
		logger:   logger,
		registry: chart.NewRegistry(),
		renderer: render.NewPNGRenderer(cfg.Charts),
		now:      time.Now,
	}
}

// Generate produces the documents selected by the output configuration.
// Per-chart and per-analysis problems are logged and skipped; only
// output directory and document write failures are returned.
func (g *Generator) Generate(ctx context.Context, req Request) (Artifacts, error) {
	var artifacts Artifacts
	if err := ctx.Err(); err != nil {
		return artifacts, err
	}

	runID := uuid.NewString()
	logger := g.logger.With(
		slog.String("run_id", runID),
		slog.String("kind", string(req.Kind)))
	profile := profileFor(req.Kind)

	logger.Info("starting report synthesis",
		slog.Int("analyses", len(req.Results)),
		slog.Bool("excel", g.cfg.Outputs.Excel),
		slog.Bool("powerpoint", g.cfg.Outputs.PowerPoint))

	if err := config.EnsureDir(g.cfg.Report.OutputDir); err != nil {
		return artifacts, apperrors.New(apperrors.ErrTypeStorage,
			fmt.Sprintf("prepare output directory %s", g.cfg.Report.OutputDir), err)
	}

	images := req.Images
	if images == nil {
		specs := g.registry.BuildAll(req.Results, g.cfg.Charts, logger)
		images = render.RenderAll(g.renderer, specs, logger)
	}

	stamp := g.now().Format("20060102_150405")

	if g.cfg.Outputs.Excel {
		path := filepath.Join(g.cfg.Report.OutputDir,
			fmt.Sprintf("%s_%s.xlsx", profile.baseName, stamp))
		params := workbook.Params{
			Title:        profile.workbookTitle,
			RecordsLabel: profile.recordsLabel,
			TotalRecords: totalRecords(req),
			Analyses:     req.Results,
			Images:       images,
			ExtraDetails: extraDetails(req),
		}
		if err := workbook.NewBuilder(g.cfg.Report, logger).Write(params, path); err != nil {
			return artifacts, err
		}
		artifacts.Workbook = path
	}

	if err := ctx.Err(); err != nil {
		return artifacts, err
	}

	if g.cfg.Outputs.PowerPoint {
		path := filepath.Join(g.cfg.Report.OutputDir,
			fmt.Sprintf("%s_%s.pptx", profile.baseName, stamp))
		groups, residual := taxonomy.Organize(req.Results, profile.sections)
		if len(residual) > 0 {
			groups = append(groups, taxonomy.SectionGroup{
				Label:    taxonomy.ResidualLabel,
				Analyses: residual,
			})
		}
		params := deck.Params{
			Title:    profile.deckTitle,
			Subtitle: g.cfg.Report.ClientLabel(),
			Groups:   groups,
			Images:   images,
		}
		if err := deck.NewBuilder(g.cfg.Report, logger).Write(params, path); err != nil {
			return artifacts, err
		}
		artifacts.Deck = path
	}

	logger.Info("report synthesis finished",
		slog.String("workbook", artifacts.Workbook),
		slog.String("deck", artifacts.Deck))
	return artifacts, nil
}

func totalRecords(req Request) int {
	if req.TotalRecords > 0 {
		return req.TotalRecords
	}
	max := 0
	for _, a := range req.Results {
		if a.Renderable() && len(a.Table.Rows) > max {
			max = len(a.Table.Rows)
		}
	}
	return max
}

// extraDetails adds the referral cover line counting distinct
// referrers across any table that carries a Referrer column.
func extraDetails(req Request) []workbook.LabelValue {
	if req.Kind != KindReferral {
		return nil
	}
	seen := make(map[string]struct{})
	for _, a := range req.Results {
		if !a.Renderable() {
			continue
		}
		col := -1
		for i, name := range a.Table.Columns {
			if name == "Referrer" {
				col = i
				break
			}
		}
		if col < 0 {
			continue
		}
		for _, row := range a.Table.Rows {
			if col >= len(row) || format.IsTotalRow(row) {
				continue
			}
			if s := row[col].String(); s != "" {
				seen[s] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	return []workbook.LabelValue{{
		Label: "Unique Referrers",
		Value: fmt.Sprintf("%d", len(seen)),
	}}
}
