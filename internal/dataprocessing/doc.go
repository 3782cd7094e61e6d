// Package dataprocessing loads crime statistics and computes the report
// statistics from them.
//
// # Architecture
//
//  1. Loader: reads a comma separated file into domain.Record values
//  2. Analyzer: computes the fixed set of statistics over the records
//
// The loader is strict: the first malformed row aborts the load and no
// records are returned. Row numbers in errors count the header as line 0.
//
// # Usage
//
//	records, err := dataprocessing.NewLoader(logger).Load(ctx, "crimes.csv")
//	if err != nil {
//	    return err
//	}
//	stats, err := dataprocessing.NewAnalyzer(logger).Analyze(ctx, records)
//
// Each statistic is computed from the full record set independently, in a
// single pass per statistic. Records are never modified.
package dataprocessing
