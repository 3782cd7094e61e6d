package app

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/internal/infrastructure"
)

// Run outcomes recorded on spans and the runs counter
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
	StatusFailure = "failure"
)

// StageTracer provides OpenTelemetry instrumentation for pipeline runs
type StageTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewStageTracer creates a tracer backed by providers. A nil providers value
// gives a tracer whose spans and metrics are discarded.
func NewStageTracer(providers *infrastructure.OTelProviders) *StageTracer {
	if providers != nil && providers.Tracer != nil && providers.Metrics != nil {
		return &StageTracer{tracer: providers.Tracer, metrics: providers.Metrics}
	}

	// The noop meter never fails to create instruments.
	metrics, _ := infrastructure.CreatePipelineMetrics(metricnoop.NewMeterProvider().Meter(infrastructure.MeterName))
	return &StageTracer{
		tracer:  tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName),
		metrics: metrics,
	}
}

// TraceRun creates the root span of one pipeline run
func (st *StageTracer) TraceRun(ctx context.Context, input, output string) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", infrastructure.GetRunID(ctx)),
			attribute.String("run.input", input),
			attribute.String("run.output", output),
		),
	)
}

// TraceStage creates a span for one stage (load, analyze, report, export)
func (st *StageTracer) TraceStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "pipeline."+stage,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("stage", stage)),
	)
}

// RecordStageCompletion records the stage duration and span status
func (st *StageTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stage string, duration time.Duration, err error) {
	status := StatusSuccess
	switch {
	case errors.Is(err, apperrors.ErrNoData):
		status = StatusNoData
	case err != nil:
		status = StatusFailure
	}

	span.SetAttributes(
		attribute.String("stage.status", status),
		attribute.Float64("stage.duration_seconds", duration.Seconds()),
	)
	st.metrics.StageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("status", status),
		),
	)

	if status == StatusFailure {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Message(err))
		if errType := apperrors.TypeOf(err); errType == apperrors.ErrTypeRowArity || errType == apperrors.ErrTypeRowContent {
			st.metrics.RowErrors.Add(ctx, 1,
				metric.WithAttributes(attribute.String("error_type", string(errType))))
		}
		return
	}
	span.SetStatus(codes.Ok, "")
}

// RecordRecordsLoaded counts loaded records
func (st *StageTracer) RecordRecordsLoaded(ctx context.Context, n int) {
	st.metrics.RecordsLoaded.Add(ctx, int64(n))
}

// RecordRunCompletion closes out the run span and counts the outcome
func (st *StageTracer) RecordRunCompletion(ctx context.Context, span trace.Span, status string, err error) {
	span.SetAttributes(attribute.String("run.status", status))
	st.metrics.PipelineRuns.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)))

	if status == StatusFailure && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Message(err))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
