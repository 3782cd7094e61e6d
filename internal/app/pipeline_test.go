package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crimeanalyzer/internal/config"
	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/internal/infrastructure"
	"crimeanalyzer/internal/shared/testutil"
)

type pipelineEnv struct {
	pipeline *Pipeline
	console  *bytes.Buffer
	handler  *testutil.BufferedSlogHandler
	dir      string
}

func setupPipeline(t *testing.T, telemetry *infrastructure.OTelProviders) *pipelineEnv {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	console := &bytes.Buffer{}
	return &pipelineEnv{
		pipeline: NewPipeline(config.Default(), telemetry, console, logger),
		console:  console,
		handler:  handler,
		dir:      t.TempDir(),
	}
}

func TestPipeline_Run(t *testing.T) {
	env := setupPipeline(t, nil)
	input := testutil.WriteFile(t, env.dir, "crimes.csv", testutil.SampleCrimeCSV())
	output := filepath.Join(env.dir, "report.txt")

	result, err := env.pipeline.Run(context.Background(), Options{InputPath: input, OutputPath: output})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Records)
	assert.Equal(t, testutil.SampleReport, result.Report)
	assert.Len(t, result.RunID, 36)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleReport, string(written))
	assert.Equal(t, "\n"+testutil.SampleReport+"\n", env.console.String())

	testutil.AssertLogContains(t, env.handler, slog.LevelInfo, "Crime analysis completed")
	testutil.AssertNoErrors(t, env.handler)
}

func TestPipeline_RunKeepsCallerRunID(t *testing.T) {
	env := setupPipeline(t, nil)
	input := testutil.WriteFile(t, env.dir, "crimes.csv", testutil.SampleCrimeCSV())

	ctx := infrastructure.WithRunID(context.Background(), "run-fixed")
	result, err := env.pipeline.Run(ctx, Options{InputPath: input, OutputPath: filepath.Join(env.dir, "r.txt")})
	require.NoError(t, err)
	assert.Equal(t, "run-fixed", result.RunID)
}

func TestPipeline_RunFailures(t *testing.T) {
	tests := []struct {
		name        string
		csv         string
		noInput     bool
		wantType    apperrors.ErrorType
		wantMessage string
	}{
		{
			name:        "missing input",
			noInput:     true,
			wantType:    apperrors.ErrTypeInputNotFound,
			wantMessage: "Crime data file does not exist at path: ",
		},
		{
			name:        "row arity",
			csv:         testutil.CrimeCSV(testutil.CrimeCSVHeader, testutil.SampleCrimeRows[0], "2010,1,2"),
			wantType:    apperrors.ErrTypeRowArity,
			wantMessage: "Row 2 contains 3 values. It should contain 8.",
		},
		{
			name:        "row content",
			csv:         testutil.CrimeCSV(testutil.CrimeCSVHeader, "1994,260000000,abc,102000,618000,1857000,7880000,1539000"),
			wantType:    apperrors.ErrTypeRowContent,
			wantMessage: "Row 1 contains invalid value.",
		},
		{
			name:        "missing 2010",
			csv:         testutil.CrimeCSV(testutil.CrimeCSVHeader, testutil.SampleCrimeRows[0], testutil.SampleCrimeRows[2]),
			wantType:    apperrors.ErrTypeLookup,
			wantMessage: "No record for year 2010.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPipeline(t, nil)
			input := filepath.Join(env.dir, "crimes.csv")
			if !tt.noInput {
				testutil.WriteFile(t, env.dir, "crimes.csv", tt.csv)
			}
			output := filepath.Join(env.dir, "report.txt")

			result, err := env.pipeline.Run(context.Background(), Options{InputPath: input, OutputPath: output})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			if tt.noInput {
				assert.Equal(t, tt.wantMessage+input, apperrors.Message(err))
			} else {
				assert.Equal(t, tt.wantMessage, apperrors.Message(err))
			}
			assert.NoFileExists(t, output, "no report on failure")
			assert.Empty(t, env.console.String())
			testutil.AssertLogContains(t, env.handler, slog.LevelError, "Crime analysis failed")
		})
	}
}

func TestPipeline_RunNoData(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "header only", csv: testutil.CrimeCSV(testutil.CrimeCSVHeader)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPipeline(t, nil)
			input := testutil.WriteFile(t, env.dir, "crimes.csv", tt.csv)
			output := filepath.Join(env.dir, "report.txt")

			result, err := env.pipeline.Run(context.Background(), Options{InputPath: input, OutputPath: output})

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, apperrors.ErrNoData))
			assert.Equal(t, apperrors.ExitOK, apperrors.ExitCode(err))
			assert.Equal(t, "No data to write.\n", env.console.String())
			assert.NoFileExists(t, output)
			testutil.AssertNoErrors(t, env.handler)
		})
	}
}

func TestPipeline_RunOutputFailure(t *testing.T) {
	env := setupPipeline(t, nil)
	input := testutil.WriteFile(t, env.dir, "crimes.csv", testutil.SampleCrimeCSV())
	output := filepath.Join(env.dir, "missing", "report.txt")

	result, err := env.pipeline.Run(context.Background(), Options{InputPath: input, OutputPath: output})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeOutputWrite, apperrors.TypeOf(err))
	require.NotNil(t, result, "statistics are kept when only the write fails")
	assert.Equal(t, testutil.SampleReport, result.Report)
	assert.Equal(t, "\n"+testutil.SampleReport+"\n", env.console.String())
}

func TestPipeline_RunWithWorkbook(t *testing.T) {
	env := setupPipeline(t, nil)
	input := testutil.WriteFile(t, env.dir, "crimes.csv", testutil.SampleCrimeCSV())
	workbook := filepath.Join(env.dir, "report.xlsx")

	_, err := env.pipeline.Run(context.Background(), Options{
		InputPath:    input,
		OutputPath:   filepath.Join(env.dir, "report.txt"),
		WorkbookPath: workbook,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Report", "B11")
	require.NoError(t, err)
	assert.Equal(t, "1994", value)
}

func TestPipeline_RunTelemetry(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Telemetry
	cfg.TraceFile = filepath.Join(dir, "trace.json")
	cfg.MetricsFile = filepath.Join(dir, "metrics.prom")

	providers, err := infrastructure.InitializeOTel(cfg, nil)
	require.NoError(t, err)

	env := setupPipeline(t, providers)
	good := testutil.WriteFile(t, env.dir, "good.csv", testutil.SampleCrimeCSV())
	bad := testutil.WriteFile(t, env.dir, "bad.csv", testutil.CrimeCSV(testutil.CrimeCSVHeader, "1,2"))

	_, err = env.pipeline.Run(context.Background(), Options{InputPath: good, OutputPath: filepath.Join(env.dir, "r.txt")})
	require.NoError(t, err)
	_, err = env.pipeline.Run(context.Background(), Options{InputPath: bad, OutputPath: filepath.Join(env.dir, "r2.txt")})
	require.Error(t, err)

	require.NoError(t, providers.WriteMetrics())
	require.NoError(t, providers.Shutdown(context.Background()))

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	text := string(metrics)
	assert.Contains(t, text, `crime_pipeline_runs_total{status="success"} 1`)
	assert.Contains(t, text, `crime_pipeline_runs_total{status="failure"} 1`)
	assert.Contains(t, text, "crime_records_loaded_total 6")
	assert.Contains(t, text, `crime_row_errors_total{error_type="ROW_ARITY"} 1`)
	assert.Contains(t, text, `crime_stage_duration_seconds_count{stage="report",status="success"} 1`)

	traces, err := os.ReadFile(cfg.TraceFile)
	require.NoError(t, err)
	for _, span := range []string{"pipeline.run", "pipeline.load", "pipeline.analyze", "pipeline.report"} {
		assert.Contains(t, string(traces), `"Name": "`+span+`"`)
	}
}
