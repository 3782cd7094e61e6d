// Package exporter renders crime statistics for people.
//
// This package contains two components:
//
// Reporter: renders the plain text report, writes it to the report file and
// echoes it to the console.
//
// WorkbookExporter: writes the same labeled values to an .xlsx sheet.
//
// Example usage:
//
//	reporter := exporter.NewReporter(os.Stdout, logger)
//	report := reporter.Render(stats)
//	if err := reporter.Publish(ctx, "report.txt", report); err != nil {
//	    return err
//	}
package exporter
