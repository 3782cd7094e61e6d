package dataprocessing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/pkg/contracts/domain"
)

// maxLineSize bounds a single input line
const maxLineSize = 1 << 20

// Loader reads a crime statistics CSV into records.
// Fields are split on every comma; quoting is not supported.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Load reads the file at path. The first error aborts the load and no
// records are returned.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewInputNotFoundError(path, err)
		}
		return nil, apperrors.NewReadError(path, err)
	}
	defer file.Close()

	records, err := l.parse(ctx, file, path)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Loaded crime records",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return records, nil
}

// Parse reads records from r. The header line only fixes the expected
// column count.
func (l *Loader) Parse(ctx context.Context, r io.Reader) ([]domain.Record, error) {
	return l.parse(ctx, r, "<reader>")
}

func (l *Loader) parse(ctx context.Context, r io.Reader, source string) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []domain.Record
		columns int
		line    int
	)

	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		if line == 0 {
			columns = len(fields)
			line++
			continue
		}

		// Data rows are numbered from 1, the header being line 0.
		row := line
		if len(fields) != columns {
			l.logger.ErrorContext(ctx, "Row has wrong number of values",
				slog.String("source", source),
				slog.Int("row", row),
				slog.Int("observed", len(fields)),
				slog.Int("expected", columns))
			return nil, apperrors.NewRowArityError(row, len(fields), columns)
		}

		record, err := parseRecord(row, fields)
		if err != nil {
			l.logger.ErrorContext(ctx, "Row contains invalid value",
				slog.String("source", source),
				slog.Int("row", row),
				slog.String("error", err.Error()))
			return nil, err
		}

		records = append(records, record)
		line++
	}

	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewReadError(source, fmt.Errorf("read line %d: %w", line, err))
	}

	l.logger.DebugContext(ctx, "Parsed crime data",
		slog.String("source", source),
		slog.Int("columns", columns),
		slog.Int("rows", len(records)))

	return records, nil
}

// parseRecord converts the leading schema fields of a row into a Record
func parseRecord(row int, fields []string) (domain.Record, error) {
	values := make([]int, len(domain.CrimeColumns))
	for i, column := range domain.CrimeColumns {
		if i >= len(fields) {
			return domain.Record{}, apperrors.NewRowContentError(row, column,
				fmt.Errorf("missing column %q", column))
		}
		// Values are 32-bit counts; anything wider is rejected like text.
		v, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 32)
		if err != nil {
			return domain.Record{}, apperrors.NewRowContentError(row, column, err)
		}
		values[i] = int(v)
	}

	return domain.Record{
		Year:               values[0],
		Population:         values[1],
		Murders:            values[2],
		Rapes:              values[3],
		Robberies:          values[4],
		ViolentCrimes:      values[5],
		Thefts:             values[6],
		MotorVehicleThefts: values[7],
	}, nil
}
