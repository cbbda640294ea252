package internaldefs

import (
	"github.com/MrEthical07/ciphertoken"
)

// CounterDef binds a core counter to its stable exported name.
type CounterDef struct {
	ID   ciphertoken.MetricID
	Name string
	Help string
}

// HistogramDef binds a core histogram to its stable exported name.
type HistogramDef struct {
	ID   ciphertoken.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter. Both exporters iterate this slice
// so the name set stays identical across backends.
var CounterDefs = []CounterDef{
	{ID: ciphertoken.MetricIssueSuccess, Name: "ciphertoken_issue_success_total", Help: "Successfully signed tokens."},
	{ID: ciphertoken.MetricIssueFailure, Name: "ciphertoken_issue_failure_total", Help: "Failed signing attempts, including bad key material."},
	{ID: ciphertoken.MetricDecodeSuccess, Name: "ciphertoken_decode_success_total", Help: "Decode operations that returned claims."},
	{ID: ciphertoken.MetricDecodeFailure, Name: "ciphertoken_decode_failure_total", Help: "Rejected decode operations."},
	{ID: ciphertoken.MetricVerifyPass, Name: "ciphertoken_verify_pass_total", Help: "Verify calls that passed."},
	{ID: ciphertoken.MetricVerifyFail, Name: "ciphertoken_verify_fail_total", Help: "Verify calls that failed."},
	{ID: ciphertoken.MetricInspectSuccess, Name: "ciphertoken_inspect_success_total", Help: "Inspect calls that returned claims."},
	{ID: ciphertoken.MetricInspectFailure, Name: "ciphertoken_inspect_failure_total", Help: "Inspect calls rejected as structurally invalid."},
	{ID: ciphertoken.MetricRotateSuccess, Name: "ciphertoken_rotate_success_total", Help: "Completed refresh rotations."},
	{ID: ciphertoken.MetricRotateFailure, Name: "ciphertoken_rotate_failure_total", Help: "Rejected refresh rotations."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: ciphertoken.MetricSignLatency, Name: "ciphertoken_sign_latency_us", Help: "Signing latency histogram in microseconds."},
}

// HistogramBounds holds the upper bucket bounds in microseconds, matching the
// core histogram layout.
var HistogramBounds = []string{
	"50",
	"100",
	"250",
	"500",
	"1000",
	"2500",
	"5000",
	"+Inf",
}

// HistogramBoundSuffix holds metric-name-safe forms of the bounds for
// backends that cannot carry an le label.
var HistogramBoundSuffix = []string{
	"50",
	"100",
	"250",
	"500",
	"1000",
	"2500",
	"5000",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed bucket
// count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form the
// Prometheus exposition format wants.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
