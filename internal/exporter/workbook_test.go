package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/internal/shared/testutil"
)

func TestWorkbookExporter_Export(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	exp := NewWorkbookExporter("Report", logger)
	path := filepath.Join(t.TempDir(), "nested", "report.xlsx")

	require.NoError(t, exp.Export(context.Background(), path, sampleStats()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, ReportTitle, title)

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 11)

	for i, line := range ReportLines(sampleStats()) {
		row := rows[i+1]
		require.Len(t, row, 2, "row %d", i+2)
		assert.Equal(t, line.Label, row[0])
	}

	tests := []struct {
		cell string
		want string
	}{
		{"B2", "1994-2014 (21 years)"},
		{"B3", "2010, 2014"},
		{"B4", "1994 = 618000, 1995 = 580000"},
		{"B6", "17400"},
		{"B9", "6947000"},
		{"B11", "1994"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue("Report", tt.cell)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "cell %s", tt.cell)
	}

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Workbook exported")
}

func TestWorkbookExporter_DefaultSheet(t *testing.T) {
	exp := NewWorkbookExporter("", nil)
	assert.Equal(t, "Report", exp.sheet)
}

func TestWorkbookExporter_SaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewWorkbookExporter("Report", nil).Export(context.Background(), filepath.Join(blocker, "report.xlsx"), sampleStats())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeExport, apperrors.TypeOf(err))
}
