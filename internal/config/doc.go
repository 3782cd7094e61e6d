// Package config loads the crime analyzer configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// The YAML file is taken from the -config flag, then CRIME_CONFIG_FILE, then
// crimeanalyzer.yaml in the working directory if it exists.
//
// # Environment Variables
//
// All environment variables follow the pattern CRIME_<SECTION>_<FIELD>:
//
//	CRIME_LOGGING_LEVEL=debug
//	CRIME_LOGGING_OUTPUT=both
//	CRIME_REPORT_XLSX_PATH=out/report.xlsx
//	CRIME_TELEMETRY_TRACE_FILE=out/trace.json
//	CRIME_TELEMETRY_METRICS_FILE=out/crimeanalyzer.prom
//
// The loaded configuration is validated with go-playground/validator struct
// tags. Report thresholds and year ranges are fixed and not configurable.
package config
