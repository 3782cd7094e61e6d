package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"crimeanalyzer/pkg/contracts/domain"
)

// ReportTitle is the first line of every report
const ReportTitle = "Crime Analyzer Report"

// ReportLine is one labeled statistic of the report.
// Value is the rendered text, Raw the typed value for spreadsheet cells.
type ReportLine struct {
	Label string
	Value string
	Raw   any
}

// String renders the line as "<Label>: <Value>"
func (l ReportLine) String() string {
	return l.Label + ": " + l.Value
}

// ReportLines returns the ten statistic lines in report order, title excluded
func ReportLines(stats *domain.Statistics) []ReportLine {
	period := fmt.Sprintf("%d-%d (%d years)", stats.MinYear, stats.MaxYear, stats.YearSpan)
	lowMurders := formatInts(stats.LowMurderYears)
	highRobberies := formatYearValues(stats.HighRobberyYears)
	rate := formatRate(stats.ViolentPerCapita2010)

	return []ReportLine{
		{Label: "Period", Value: period, Raw: period},
		{Label: "Years murders per year < 15000", Value: lowMurders, Raw: lowMurders},
		{Label: "Robberies per year > 500000", Value: highRobberies, Raw: highRobberies},
		{Label: "Violent crime per capita rate (2010)", Value: rate, Raw: stats.ViolentPerCapita2010},
		intLine("Average murder per year (all years)", stats.AvgMurdersAll),
		intLine("Average murder per year (1994-1997)", stats.AvgMurders1994To1997),
		intLine("Average murder per year (2010-2014)", stats.AvgMurders2010To2014),
		intLine("Minimum thefts per year (1999-2004)", stats.MinThefts1999To2004),
		intLine("Maximum thefts per year (1999-2004)", stats.MaxThefts1999To2004),
		intLine("Year of highest number of motor vehicle thefts", stats.YearOfMaxVehicleThefts),
	}
}

func intLine(label string, v int) ReportLine {
	return ReportLine{Label: label, Value: strconv.Itoa(v), Raw: v}
}

// formatRate renders the shortest decimal that round-trips, never in
// exponent form
func formatRate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func formatYearValues(values []domain.YearValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d = %d", v.Year, v.Value)
	}
	return strings.Join(parts, ", ")
}
