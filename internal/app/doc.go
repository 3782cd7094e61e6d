// Package app wires the crime analyzer together and runs it.
//
// # Lifecycle
//
//  1. Load configuration (defaults, YAML file, CRIME_* environment)
//  2. Initialize logging and OpenTelemetry
//  3. Run the pipeline: load, analyze, report, optional workbook export
//  4. Write the metrics file, flush telemetry, close the log file
//
// # Usage
//
//	application, err := app.NewApplication(cfg, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer application.Stop(ctx)
//	err = application.Run(ctx, "crimes.csv", "report.txt")
//
// Every stage runs inside its own span (pipeline.load, pipeline.analyze,
// pipeline.report, pipeline.export) under a pipeline.run root span, and
// records its duration in the crime_stage_duration histogram.
//
// Records are handed from stage to stage as return values. Nothing is kept
// on the Pipeline between runs.
package app
