// Package prometheus renders engine metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a ciphertoken.Engine and exposes an
// http.Handler that renders all counters and the signing-latency histogram.
// Counter names are prefixed ciphertoken_*_total; the single histogram is
// ciphertoken_sign_latency_us.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate engine state.
package prometheus
