package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"icsreport/internal/config"
	"icsreport/internal/infrastructure"
	"icsreport/internal/report"
	"icsreport/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to YAML configuration file (optional)")
	analysesFile := flag.String("analyses", "", "path to the analyses JSON file produced by the analysis engine")
	outputDir := flag.String("out", "", "output directory (overrides configuration)")
	kind := flag.String("kind", "", "report kind: portfolio or referral (overrides the analyses file)")
	excelOnly := flag.Bool("excel-only", false, "generate only the workbook")
	pptOnly := flag.Bool("ppt-only", false, "generate only the deck")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *analysesFile == "" {
		slog.Error("Missing required -analyses flag",
			"hint", "Point it at the JSON file exported by the analysis engine")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Report.OutputDir = *outputDir
	}
	if *excelOnly && *pptOnly {
		slog.Error("Flags -excel-only and -ppt-only are mutually exclusive")
		os.Exit(1)
	}
	if *excelOnly {
		cfg.Outputs.Excel = true
		cfg.Outputs.PowerPoint = false
	}
	if *pptOnly {
		cfg.Outputs.Excel = false
		cfg.Outputs.PowerPoint = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	req, err := report.LoadRequest(*analysesFile)
	if err != nil {
		logger.Error("Failed to load analyses", "path", *analysesFile, "error", err)
		os.Exit(1)
	}
	switch *kind {
	case "":
	case string(report.KindPortfolio):
		req.Kind = report.KindPortfolio
	case string(report.KindReferral):
		req.Kind = report.KindReferral
	default:
		logger.Error("Unknown report kind", "kind", *kind)
		os.Exit(1)
	}

	logger.Info("Loaded analyses",
		"path", *analysesFile,
		"analyses", len(req.Results),
		"kind", string(req.Kind))

	generator := report.NewGenerator(cfg, logger)
	artifacts, err := generator.Generate(context.Background(), req)
	if err != nil {
		logger.Error("Report synthesis failed", "error", err)
		os.Exit(1)
	}

	if artifacts.Workbook != "" {
		logger.Info("Workbook written", "path", artifacts.Workbook)
	}
	if artifacts.Deck != "" {
		logger.Info("Deck written", "path", artifacts.Deck)
	}
}
