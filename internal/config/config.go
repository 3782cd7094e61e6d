package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the namespace of every environment variable read by Load
const EnvPrefix = "CRIME"

// DefaultConfigFile is looked up in the working directory when no config file
// is given explicitly.
const DefaultConfigFile = "crimeanalyzer.yaml"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ReportConfig contains optional report export settings
type ReportConfig struct {
	XLSXPath  string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
}

// TelemetryConfig contains tracing and metrics export settings.
// Both exports are disabled while their file path is empty.
type TelemetryConfig struct {
	ServiceName string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceFile   string  `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// TracingEnabled reports whether spans should be exported
func (t TelemetryConfig) TracingEnabled() bool {
	return t.TraceFile != ""
}

// MetricsEnabled reports whether a metrics text file should be written
func (t TelemetryConfig) MetricsEnabled() bool {
	return t.MetricsFile != ""
}

// Load builds the configuration from defaults, an optional YAML file and
// CRIME_* environment variables, in increasing order of precedence.
// An empty configFile falls back to CRIME_CONFIG_FILE, then to
// DefaultConfigFile if it exists.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	path, explicit := getConfigFilePath(configFile)
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config from file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath on cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the config file to read and whether it was
// requested explicitly (in which case it must exist).
func getConfigFilePath(configFile string) (string, bool) {
	if configFile != "" {
		return configFile, true
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG_FILE"); env != "" {
		return env, true
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, false
	}
	return "", false
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/crimeanalyzer.log",
		},
		Report: ReportConfig{
			SheetName: "Report",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "crimeanalyzer",
			SampleRatio: 1.0,
		},
	}
}
