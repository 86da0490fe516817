package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"icsreport/pkg/contracts/domain"
)

// Config is the complete application configuration
type Config struct {
	Report  ReportSettings     `yaml:"report" envconfig:"REPORT"`
	Charts  domain.ChartConfig `yaml:"charts" envconfig:"CHARTS"`
	Outputs OutputConfig       `yaml:"outputs" envconfig:"OUTPUTS"`
	Logging LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
}

// ReportSettings identifies the client and the report inputs/outputs.
// Builders consume it read-only.
type ReportSettings struct {
	ClientID     string `yaml:"client_id" envconfig:"CLIENT_ID"`
	ClientName   string `yaml:"client_name" envconfig:"CLIENT_NAME"`
	SourceFile   string `yaml:"source_file" envconfig:"SOURCE_FILE"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	TemplatePath string `yaml:"template_path" envconfig:"TEMPLATE_PATH"`
}

// ClientLabel returns the display identity for slide subtitles and
// cover sheets, falling back to the client ID when no name is set.
func (s ReportSettings) ClientLabel() string {
	if s.ClientName != "" {
		return s.ClientName
	}
	if s.ClientID != "" {
		return "Client " + s.ClientID
	}
	return "Client unknown"
}

// OutputConfig selects which documents to generate. Both default on;
// the defaults are seeded before the YAML layer so an explicit false
// survives the environment pass.
type OutputConfig struct {
	Excel      bool `yaml:"excel" envconfig:"EXCEL"`
	PowerPoint bool `yaml:"powerpoint" envconfig:"POWERPOINT"`
}

// LoggingConfig controls the slog setup. No envconfig defaults here:
// envconfig writes a default whenever the env var is unset, which would
// clobber values read from the YAML layer. applyDefaults fills the gaps
// after both layers have run.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load builds configuration from environment variables layered over an
// optional YAML file, then validates the result.
func Load(configFile string) (*Config, error) {
	cfg := Config{
		Outputs: OutputConfig{Excel: true, PowerPoint: true},
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Environment overrides file values
	if err := envconfig.Process("ICS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills the zero values left after the file and
// environment layers.
func (c *Config) applyDefaults() {
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join("logs", "report.log")
	}
	if c.Charts.Theme == "" {
		c.Charts.Theme = domain.DefaultChartConfig().Theme
	}
	if len(c.Charts.Colors) == 0 {
		c.Charts.Colors = append([]string(nil), domain.BrandColors...)
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = 900
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = 500
	}
}

// EnsureDir creates a directory tree if it does not exist
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
