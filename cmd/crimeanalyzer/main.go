package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"crimeanalyzer/internal/app"
	"crimeanalyzer/internal/config"
	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/pkg/contracts"
)

const usageText = "Invalid.\nValid example : crimeanalyzer <crime_csv_file_path> <report_file_path>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("crimeanalyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to YAML config file (defaults to CRIME_CONFIG_FILE or crimeanalyzer.yaml)")
	xlsxPath := fs.String("xlsx", "", "also export the report to this .xlsx workbook")
	metricsFile := fs.String("metrics", "", "write Prometheus metrics to this text file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return apperrors.ExitOK
		}
		return apperrors.ExitUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return apperrors.ExitOK
	}

	if fs.NArg() != 2 {
		code := fail(stderr, apperrors.NewUsageError(usageText).WithContext("args", fs.NArg()))
		fs.PrintDefaults()
		return code
	}
	input, output := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fail(stderr, apperrors.NewConfigError(fmt.Sprintf("Invalid configuration: %v", err), err))
	}
	if err := applyFlags(cfg, *xlsxPath, *metricsFile, *logLevel); err != nil {
		return fail(stderr, err)
	}

	application, err := app.NewApplication(cfg, stdout)
	if err != nil {
		return fail(stderr, apperrors.NewConfigError(fmt.Sprintf("Unable to start: %v", err), err))
	}

	ctx := context.Background()
	runErr := application.Run(ctx, input, output)
	if err := application.Stop(ctx); err != nil {
		fmt.Fprintf(stderr, "telemetry shutdown: %v\n", err)
	}

	if runErr != nil && !errors.Is(runErr, apperrors.ErrNoData) {
		fmt.Fprintln(stderr, apperrors.Message(runErr))
	}
	return apperrors.ExitCode(runErr)
}

// applyFlags overrides configuration with explicitly set flags
func applyFlags(cfg *config.Config, xlsxPath, metricsFile, logLevel string) error {
	if xlsxPath != "" {
		cfg.Report.XLSXPath = xlsxPath
	}
	if metricsFile != "" {
		cfg.Telemetry.MetricsFile = metricsFile
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("Invalid flag value: %v", err), err)
	}
	return nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, apperrors.Message(err))
	return apperrors.ExitCode(err)
}
