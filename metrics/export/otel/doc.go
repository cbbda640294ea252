// Package otel bridges engine metrics into OpenTelemetry.
//
// [NewOTelExporter] registers every counter and the signing-latency histogram
// as observable instruments on a caller-supplied meter. Collection is
// pull-based: values are read from a metrics snapshot inside the registered
// callback, never pushed from the engine's hot path.
//
// # What this package must NOT do
//
//   - Create or own a MeterProvider; callers supply the meter.
//   - Mutate engine state.
package otel
