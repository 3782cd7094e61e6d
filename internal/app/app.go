package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"crimeanalyzer/internal/config"
	"crimeanalyzer/internal/infrastructure"
	"crimeanalyzer/pkg/contracts"
)

const AppName = "Crime Analyzer"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Pipeline      *Pipeline
}

// NewApplication initializes logging and telemetry from cfg and wires the
// pipeline. Report echoes go to console.
func NewApplication(cfg *config.Config, console io.Writer) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	return &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Pipeline:      NewPipeline(cfg, otelProviders, console, logger),
	}, nil
}

// Run executes one analysis run
func (a *Application) Run(ctx context.Context, input, output string) error {
	_, err := a.Pipeline.Run(ctx, Options{
		InputPath:    input,
		OutputPath:   output,
		WorkbookPath: a.Config.Report.XLSXPath,
	})
	return err
}

// Stop writes the metrics file, flushes telemetry and closes the log file.
// Metrics are written before the meter provider shuts down.
func (a *Application) Stop(ctx context.Context) error {
	var errs []error

	if a.OTelProviders != nil {
		if err := a.OTelProviders.WriteMetrics(); err != nil {
			errs = append(errs, err)
		}
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("close log file: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		a.Logger.Warn("Shutdown completed with errors", slog.String("error", err.Error()))
		return err
	}
	return nil
}
