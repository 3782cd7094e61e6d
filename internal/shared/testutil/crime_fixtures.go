package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crimeanalyzer/pkg/contracts/domain"
)

// CrimeCSVHeader is the header line of a crime statistics file
var CrimeCSVHeader = strings.Join(domain.CrimeColumns, ",")

// SampleCrimeRows is a small dataset covering every report statistic.
// Expected values:
//
//	period 1994-2014 (21 years); low murder years 2010, 2014
//	robberies > 500000: 1994 = 618000, 1995 = 580000
//	per capita 2010: 0.0040355987055016185
//	average murders: all 17400, 1994-1997 7333, 2010-2014 4816
//	thefts 1999-2004: min 6947000, max 6955000
//	max motor vehicle thefts: 1994
var SampleCrimeRows = []string{
	"1994,260000000,23000,102000,618000,1857000,7880000,1539000",
	"1995,262000000,21000,97000,580000,1798000,7997000,1472000",
	"1999,272000000,15500,89000,409000,1426000,6955000,1152000",
	"2004,293000000,16000,95000,401000,1360000,6947000,1237000",
	"2010,309000000,14700,85000,369000,1247000,6186000,739000",
	"2014,318000000,14200,84000,322000,1165000,5858000,686000",
}

// SampleCrimeRecords returns SampleCrimeRows as records
func SampleCrimeRecords() []domain.Record {
	return []domain.Record{
		{Year: 1994, Population: 260000000, Murders: 23000, Rapes: 102000, Robberies: 618000, ViolentCrimes: 1857000, Thefts: 7880000, MotorVehicleThefts: 1539000},
		{Year: 1995, Population: 262000000, Murders: 21000, Rapes: 97000, Robberies: 580000, ViolentCrimes: 1798000, Thefts: 7997000, MotorVehicleThefts: 1472000},
		{Year: 1999, Population: 272000000, Murders: 15500, Rapes: 89000, Robberies: 409000, ViolentCrimes: 1426000, Thefts: 6955000, MotorVehicleThefts: 1152000},
		{Year: 2004, Population: 293000000, Murders: 16000, Rapes: 95000, Robberies: 401000, ViolentCrimes: 1360000, Thefts: 6947000, MotorVehicleThefts: 1237000},
		{Year: 2010, Population: 309000000, Murders: 14700, Rapes: 85000, Robberies: 369000, ViolentCrimes: 1247000, Thefts: 6186000, MotorVehicleThefts: 739000},
		{Year: 2014, Population: 318000000, Murders: 14200, Rapes: 84000, Robberies: 322000, ViolentCrimes: 1165000, Thefts: 5858000, MotorVehicleThefts: 686000},
	}
}

// SampleReport is the rendered report of SampleCrimeRows
const SampleReport = "Crime Analyzer Report\n" +
	"Period: 1994-2014 (21 years)\n" +
	"Years murders per year < 15000: 2010, 2014\n" +
	"Robberies per year > 500000: 1994 = 618000, 1995 = 580000\n" +
	"Violent crime per capita rate (2010): 0.0040355987055016185\n" +
	"Average murder per year (all years): 17400\n" +
	"Average murder per year (1994-1997): 7333\n" +
	"Average murder per year (2010-2014): 4816\n" +
	"Minimum thefts per year (1999-2004): 6947000\n" +
	"Maximum thefts per year (1999-2004): 6955000\n" +
	"Year of highest number of motor vehicle thefts: 1994\n"

// CrimeCSV joins lines with "\n" and appends a trailing newline
func CrimeCSV(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// SampleCrimeCSV returns the header followed by SampleCrimeRows
func SampleCrimeCSV() string {
	return CrimeCSV(append([]string{CrimeCSVHeader}, SampleCrimeRows...)...)
}

// WriteFile writes content to name inside dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteCrimeCSV writes lines as crimes.csv inside dir and returns its path
func WriteCrimeCSV(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	return WriteFile(t, dir, "crimes.csv", CrimeCSV(lines...))
}
