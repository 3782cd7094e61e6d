package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/pkg/contracts/domain"
)

// defaultSheet is the sheet excelize creates in a new workbook
const defaultSheet = "Sheet1"

// WorkbookExporter writes the report statistics to an Excel workbook,
// label in column A and value in column B
type WorkbookExporter struct {
	sheet  string
	logger *slog.Logger
}

// NewWorkbookExporter creates an exporter writing to the given sheet name
func NewWorkbookExporter(sheet string, logger *slog.Logger) *WorkbookExporter {
	if sheet == "" {
		sheet = "Report"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		sheet:  sheet,
		logger: logger.With(slog.String("component", "workbook_exporter")),
	}
}

// Export saves stats to an .xlsx file at path, overwriting it
func (w *WorkbookExporter) Export(ctx context.Context, path string, stats *domain.Statistics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, w.sheet); err != nil {
		return apperrors.NewExportError("failed to name workbook sheet", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewExportError("failed to create title style", err)
	}
	if err := f.SetCellValue(w.sheet, "A1", ReportTitle); err != nil {
		return apperrors.NewExportError("failed to write title", err)
	}
	if err := f.SetCellStyle(w.sheet, "A1", "A1", titleStyle); err != nil {
		return apperrors.NewExportError("failed to style title", err)
	}

	for i, line := range ReportLines(stats) {
		row := i + 2
		if err := w.setRow(f, row, line); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write row %d", row), err)
		}
	}

	if err := f.SetColWidth(w.sheet, "A", "A", 48); err != nil {
		return apperrors.NewExportError("failed to size label column", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewExportError("failed to create workbook directory", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewExportError(fmt.Sprintf("failed to save workbook %s", path), err)
	}

	w.logger.InfoContext(ctx, "Workbook exported",
		slog.String("path", path),
		slog.String("sheet", w.sheet))
	return nil
}

func (w *WorkbookExporter) setRow(f *excelize.File, row int, line ReportLine) error {
	labelCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	valueCell, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(w.sheet, labelCell, line.Label); err != nil {
		return err
	}
	return f.SetCellValue(w.sheet, valueCell, line.Raw)
}
