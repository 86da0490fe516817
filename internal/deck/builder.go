package deck

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"icsreport/internal/config"
	apperrors "icsreport/internal/errors"
	"icsreport/internal/format"
	"icsreport/internal/taxonomy"
)

// Params carries everything a deck needs: the section groups in
// presentation order and any chart images keyed by analysis name.
type Params struct {
	Title    string
	Subtitle string
	Groups   []taxonomy.SectionGroup
	Images   map[string][]byte
}

// Builder writes a presentation deck from organized analysis results.
type Builder struct {
	settings config.ReportSettings
	logger   *slog.Logger
	now      func() time.Time
}

func NewBuilder(settings config.ReportSettings, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{settings: settings, logger: logger, now: time.Now}
}

// Write assembles the deck and saves it to outputPath. A configured
// template that cannot be opened downgrades to the built-in blank
// deck rather than failing the run.
func (b *Builder) Write(params Params, outputPath string) error {
	pres := b.openBase()

	dateLine := "Generated " + b.now().Format("January 2, 2006")
	pres.AddSlide(titleSlideXML(params.Title, params.Subtitle, dateLine))

	tables, charts := 0, 0
	for _, group := range params.Groups {
		renderable := 0
		for _, a := range group.Analyses {
			if a.Renderable() {
				renderable++
			}
		}
		if renderable == 0 {
			continue
		}
		pres.AddSlide(sectionSlideXML(group.Label))

		for _, a := range group.Analyses {
			if !a.Renderable() {
				continue
			}
			view, _ := format.Paginate(a.Table, format.MaxSlideRows, format.MaxSlideCols)
			pres.AddSlide(tableSlideXML(a.Title, view, len(a.Table.Rows)))
			tables++

			if img, ok := params.Images[a.Name]; ok && len(img) > 0 {
				cfg, err := png.DecodeConfig(bytes.NewReader(img))
				if err != nil {
					b.logger.Warn("skipping chart slide, bad image",
						slog.String("analysis", a.Name),
						slog.String("error", err.Error()))
					continue
				}
				idx := pres.AddImage(img)
				pres.AddSlide(pictureSlideXML(a.Title, cfg.Width, cfg.Height), idx)
				charts++
			}
		}
	}

	if err := pres.Save(outputPath); err != nil {
		return apperrors.New(apperrors.ErrTypeStorage, fmt.Sprintf("save deck %s", outputPath), err)
	}
	b.logger.Info("deck written",
		slog.String("path", outputPath),
		slog.Int("slides", pres.SlideCount()),
		slog.Int("table_slides", tables),
		slog.Int("chart_slides", charts))
	return nil
}

func (b *Builder) openBase() *Presentation {
	path := b.settings.TemplatePath
	if path == "" {
		return New()
	}
	if _, err := os.Stat(path); err != nil {
		b.logger.Warn("deck template not found, using blank layout",
			slog.String("template", path))
		return New()
	}
	pres, err := OpenTemplate(path)
	if err != nil {
		b.logger.Warn("deck template unreadable, using blank layout",
			slog.String("template", path),
			slog.String("error", err.Error()))
		return New()
	}
	return pres
}
