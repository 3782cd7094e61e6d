package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"crimeanalyzer/internal/config"
	"crimeanalyzer/internal/dataprocessing"
	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/internal/exporter"
	"crimeanalyzer/internal/infrastructure"
	"crimeanalyzer/internal/validation"
	"crimeanalyzer/pkg/contracts/domain"
)

// Options names the files of one run
type Options struct {
	InputPath  string
	OutputPath string
	// WorkbookPath, when set, also exports the statistics to an .xlsx file
	WorkbookPath string
}

// Result is what a successful run produced
type Result struct {
	RunID   string
	Records int
	Stats   *domain.Statistics
	Report  string
}

// Pipeline runs load, analyze and report in sequence. Records are passed
// from stage to stage and never stored on the Pipeline.
type Pipeline struct {
	validator *validation.FileValidator
	loader    *dataprocessing.Loader
	analyzer  *dataprocessing.Analyzer
	reporter  *exporter.Reporter
	workbook  *exporter.WorkbookExporter
	tracer    *StageTracer
	logger    *slog.Logger
}

// NewPipeline wires the pipeline components. telemetry may be nil.
func NewPipeline(cfg *config.Config, telemetry *infrastructure.OTelProviders, console io.Writer, logger *slog.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Pipeline{
		validator: validation.NewFileValidator(logger),
		loader:    dataprocessing.NewLoader(logger),
		analyzer:  dataprocessing.NewAnalyzer(logger),
		reporter:  exporter.NewReporter(console, logger),
		workbook:  exporter.NewWorkbookExporter(cfg.Report.SheetName, logger),
		tracer:    NewStageTracer(telemetry),
		logger:    infrastructure.WithComponent(logger, "pipeline"),
	}
}

// Run executes one pipeline run. An empty dataset prints the no-data notice
// and returns errors.ErrNoData without writing anything.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := p.tracer.TraceRun(ctx, opts.InputPath, opts.OutputPath)

	p.logger.InfoContext(ctx, "Starting crime analysis",
		slog.String("input", opts.InputPath),
		slog.String("output", opts.OutputPath))

	result, err := p.run(ctx, opts)

	status := StatusSuccess
	switch {
	case errors.Is(err, apperrors.ErrNoData):
		status = StatusNoData
	case err != nil:
		status = StatusFailure
		p.logger.ErrorContext(ctx, "Crime analysis failed",
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
	default:
		p.logger.InfoContext(ctx, "Crime analysis completed",
			slog.Int("records", result.Records),
			slog.String("output", opts.OutputPath))
	}
	p.tracer.RecordRunCompletion(ctx, span, status, err)

	return result, err
}

func (p *Pipeline) run(ctx context.Context, opts Options) (*Result, error) {
	if err := p.validator.ValidateFile(opts.InputPath); err != nil {
		return nil, err
	}

	var records []domain.Record
	err := p.stage(ctx, "load", func(ctx context.Context) error {
		var err error
		records, err = p.loader.Load(ctx, opts.InputPath)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.tracer.RecordRecordsLoaded(ctx, len(records))

	var stats *domain.Statistics
	err = p.stage(ctx, "analyze", func(ctx context.Context) error {
		var err error
		stats, err = p.analyzer.Analyze(ctx, records)
		return err
	})
	if errors.Is(err, apperrors.ErrNoData) {
		p.reporter.NoData(ctx)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   infrastructure.GetRunID(ctx),
		Records: len(records),
		Stats:   stats,
		Report:  p.reporter.Render(stats),
	}

	err = p.stage(ctx, "report", func(ctx context.Context) error {
		return p.reporter.Publish(ctx, opts.OutputPath, result.Report)
	})
	if err != nil {
		return result, err
	}

	if opts.WorkbookPath != "" {
		err = p.stage(ctx, "export", func(ctx context.Context) error {
			return p.workbook.Export(ctx, opts.WorkbookPath, stats)
		})
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// stage runs fn inside a traced, timed span
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.TraceStage(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	p.tracer.RecordStageCompletion(ctx, span, name, time.Since(start), err)
	return err
}
