package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/pkg/contracts/domain"
)

// NoDataMessage is printed instead of a report when there are no records
const NoDataMessage = "No data to write."

// Reporter renders statistics as text, writes the report file and echoes it
// to the console
type Reporter struct {
	console io.Writer
	logger  *slog.Logger
}

// NewReporter creates a reporter echoing to console (os.Stdout when nil)
func NewReporter(console io.Writer, logger *slog.Logger) *Reporter {
	if console == nil {
		console = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		console: console,
		logger:  logger.With(slog.String("component", "reporter")),
	}
}

// Render returns the report text: the title and one line per statistic,
// each terminated by a newline. Output depends only on stats.
func (r *Reporter) Render(stats *domain.Statistics) string {
	var sb strings.Builder
	sb.WriteString(ReportTitle)
	sb.WriteString("\n")
	for _, line := range ReportLines(stats) {
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Publish writes report to path, replacing any existing content, then echoes
// it to the console. The echo happens even when the write fails; the write
// failure is returned as an OUTPUT_WRITE error.
func (r *Reporter) Publish(ctx context.Context, path, report string) error {
	writeErr := writeReportFile(path, report)
	if writeErr != nil {
		r.logger.ErrorContext(ctx, "Failed to write report file",
			slog.String("path", path),
			slog.String("error", writeErr.Error()))
	} else {
		r.logger.InfoContext(ctx, "Report written",
			slog.String("path", path),
			slog.Int("bytes", len(report)))
	}

	fmt.Fprintln(r.console)
	fmt.Fprintln(r.console, report)

	if writeErr != nil {
		return apperrors.NewOutputWriteError(path, writeErr)
	}
	return nil
}

// NoData prints the no-data notice. Nothing is written to disk.
func (r *Reporter) NoData(ctx context.Context) {
	r.logger.WarnContext(ctx, "No records loaded, report not written")
	fmt.Fprintln(r.console, NoDataMessage)
}

func writeReportFile(path, report string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if _, err := io.WriteString(file, report); err != nil {
		file.Close()
		return fmt.Errorf("write report file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}
