package domain

// CrimeColumns is the fixed column order of a crime statistics CSV file.
var CrimeColumns = []string{
	"year",
	"population",
	"murders",
	"rapes",
	"robberies",
	"violentCrimes",
	"thefts",
	"motorVehicleThefts",
}

// Record represents one year of crime statistics
type Record struct {
	Year               int `json:"year"`
	Population         int `json:"population"`
	Murders            int `json:"murders"`
	Rapes              int `json:"rapes"`
	Robberies          int `json:"robberies"`
	ViolentCrimes      int `json:"violent_crimes"`
	Thefts             int `json:"thefts"`
	MotorVehicleThefts int `json:"motor_vehicle_thefts"`
}

// YearValue pairs a year with a single measure of that year
type YearValue struct {
	Year  int `json:"year"`
	Value int `json:"value"`
}

// Statistics is the fixed set of aggregates computed over a record set.
// Averages use truncating integer division by the total record count.
type Statistics struct {
	RecordCount int `json:"record_count"`

	MinYear  int `json:"min_year"`
	MaxYear  int `json:"max_year"`
	YearSpan int `json:"year_span"`

	LowMurderYears   []int       `json:"low_murder_years"`
	HighRobberyYears []YearValue `json:"high_robbery_years"`

	ViolentPerCapita2010 float64 `json:"violent_per_capita_2010"`

	AvgMurdersAll        int `json:"avg_murders_all"`
	AvgMurders1994To1997 int `json:"avg_murders_1994_1997"`
	AvgMurders2010To2014 int `json:"avg_murders_2010_2014"`

	MinThefts1999To2004 int `json:"min_thefts_1999_2004"`
	MaxThefts1999To2004 int `json:"max_thefts_1999_2004"`

	YearOfMaxVehicleThefts int `json:"year_of_max_vehicle_thefts"`
}

// YearRange is an inclusive range of years
type YearRange struct {
	From int
	To   int
}

// Contains reports whether year falls inside the range
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}
