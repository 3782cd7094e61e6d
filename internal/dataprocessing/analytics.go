package dataprocessing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/montanaflynn/stats"

	apperrors "crimeanalyzer/internal/errors"
	"crimeanalyzer/pkg/contracts/domain"
)

const (
	lowMurderThreshold   = 15000
	highRobberyThreshold = 500000
	perCapitaYear        = 2010
)

var (
	earlyMurderRange = domain.YearRange{From: 1994, To: 1997}
	lateMurderRange  = domain.YearRange{From: 2010, To: 2014}
	theftRange       = domain.YearRange{From: 1999, To: 2004}
)

// Analyzer computes the fixed report statistics over a record set
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger.With(slog.String("component", "analyzer"))}
}

// Analyze computes every statistic. It returns errors.ErrNoData for an empty
// record set, a LOOKUP error when there is no 2010 record and an EMPTY_FILTER
// error when no record falls in 1999-2004.
//
// The sub-range murder averages divide by the total record count, not by
// the size of the sub-range. Existing reports depend on this.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.Record) (*domain.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		a.logger.WarnContext(ctx, "No records to analyze")
		return nil, apperrors.ErrNoData
	}

	n := len(records)
	result := &domain.Statistics{RecordCount: n}

	result.MinYear, result.MaxYear = yearBounds(records)
	result.YearSpan = result.MaxYear - result.MinYear + 1

	result.LowMurderYears = lowMurderYears(records)
	result.HighRobberyYears = highRobberyYears(records)

	rate, err := violentPerCapita(records, perCapitaYear)
	if err != nil {
		a.logger.ErrorContext(ctx, "Per capita lookup failed",
			slog.Int("year", perCapitaYear),
			slog.String("error", err.Error()))
		return nil, err
	}
	result.ViolentPerCapita2010 = rate

	result.AvgMurdersAll = sumMurders(records, nil) / n
	result.AvgMurders1994To1997 = sumMurders(records, &earlyMurderRange) / n
	result.AvgMurders2010To2014 = sumMurders(records, &lateMurderRange) / n

	minThefts, maxThefts, err := theftExtremes(records, theftRange)
	if err != nil {
		a.logger.ErrorContext(ctx, "Theft range is empty",
			slog.Int("from", theftRange.From),
			slog.Int("to", theftRange.To))
		return nil, err
	}
	result.MinThefts1999To2004 = minThefts
	result.MaxThefts1999To2004 = maxThefts

	result.YearOfMaxVehicleThefts = yearOfMaxVehicleThefts(records)

	a.logger.InfoContext(ctx, "Computed crime statistics",
		slog.Int("records", n),
		slog.Int("min_year", result.MinYear),
		slog.Int("max_year", result.MaxYear))

	return result, nil
}

func yearBounds(records []domain.Record) (minYear, maxYear int) {
	minYear, maxYear = records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return minYear, maxYear
}

func lowMurderYears(records []domain.Record) []int {
	years := make([]int, 0)
	for _, r := range records {
		if r.Murders < lowMurderThreshold {
			years = append(years, r.Year)
		}
	}
	return years
}

func highRobberyYears(records []domain.Record) []domain.YearValue {
	years := make([]domain.YearValue, 0)
	for _, r := range records {
		if r.Robberies > highRobberyThreshold {
			years = append(years, domain.YearValue{Year: r.Year, Value: r.Robberies})
		}
	}
	return years
}

// findYear returns the first record for year
func findYear(records []domain.Record, year int) (domain.Record, bool) {
	for _, r := range records {
		if r.Year == year {
			return r, true
		}
	}
	return domain.Record{}, false
}

func violentPerCapita(records []domain.Record, year int) (float64, error) {
	r, ok := findYear(records, year)
	if !ok {
		return 0, apperrors.NewLookupError(year)
	}
	return float64(r.ViolentCrimes) / float64(r.Population), nil
}

// sumMurders sums murders over records inside yr, or over all records when
// yr is nil.
func sumMurders(records []domain.Record, yr *domain.YearRange) int {
	sum := 0
	for _, r := range records {
		if yr == nil || yr.Contains(r.Year) {
			sum += r.Murders
		}
	}
	return sum
}

func theftExtremes(records []domain.Record, yr domain.YearRange) (minThefts, maxThefts int, err error) {
	thefts := collect(records, yr, func(r domain.Record) int { return r.Thefts })

	lo, err := stats.Min(thefts)
	if errors.Is(err, stats.ErrEmptyInput) {
		return 0, 0, apperrors.NewEmptyFilterError("thefts", yr.From, yr.To)
	}
	if err != nil {
		return 0, 0, err
	}
	hi, err := stats.Max(thefts)
	if err != nil {
		return 0, 0, err
	}
	return int(lo), int(hi), nil
}

// collect returns field of every record inside yr
func collect(records []domain.Record, yr domain.YearRange, field func(domain.Record) int) stats.Float64Data {
	values := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if yr.Contains(r.Year) {
			values = append(values, float64(field(r)))
		}
	}
	return values
}

// yearOfMaxVehicleThefts keeps the first record on ties
func yearOfMaxVehicleThefts(records []domain.Record) int {
	best := records[0]
	for _, r := range records[1:] {
		if r.MotorVehicleThefts > best.MotorVehicleThefts {
			best = r
		}
	}
	return best.Year
}
