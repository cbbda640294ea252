package ciphertoken

import (
	"math/big"
	"sync"
	"testing"
	"time"
)

func newMeteredEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New().
		WithSecret("0123456789abcdef0123456789abcdef").
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	t.Cleanup(eng.Close)
	return eng
}

func TestMetricsCountOperations(t *testing.T) {
	eng := newMeteredEngine(t)

	token, err := eng.Access(big.NewInt(1), nil)
	if err != nil {
		t.Fatalf("issuance failed: %v", err)
	}
	if !eng.Verify(token) {
		t.Fatal("expected token to verify")
	}
	eng.Verify("garbage")
	if _, err := eng.Decode(token); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, err := eng.Inspect("nope"); err == nil {
		t.Fatal("expected inspect failure")
	}

	snap := eng.MetricsSnapshot()
	if snap.Counters[MetricIssueSuccess] != 1 {
		t.Fatalf("expected 1 issue success, got %d", snap.Counters[MetricIssueSuccess])
	}
	if snap.Counters[MetricVerifyPass] != 1 || snap.Counters[MetricVerifyFail] != 1 {
		t.Fatalf("unexpected verify counters: %v", snap.Counters)
	}
	if snap.Counters[MetricDecodeSuccess] != 1 {
		t.Fatalf("expected 1 decode success, got %d", snap.Counters[MetricDecodeSuccess])
	}
	if snap.Counters[MetricInspectFailure] != 1 {
		t.Fatalf("expected 1 inspect failure, got %d", snap.Counters[MetricInspectFailure])
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	eng := newMeteredEngine(t)

	for i := 0; i < 5; i++ {
		if _, err := eng.Access(big.NewInt(int64(i)), nil); err != nil {
			t.Fatalf("issuance failed: %v", err)
		}
	}

	snap := eng.MetricsSnapshot()
	buckets, ok := snap.Histograms[MetricSignLatency]
	if !ok {
		t.Fatal("expected signing-latency histogram in snapshot")
	}
	var total uint64
	for _, b := range buckets {
		total += b
	}
	if total != 5 {
		t.Fatalf("expected 5 latency samples, got %d", total)
	}
}

func TestMetricsDisabledIsInert(t *testing.T) {
	eng := newHSEngine(t)

	if _, err := eng.Access(big.NewInt(1), nil); err != nil {
		t.Fatalf("issuance failed: %v", err)
	}

	snap := eng.MetricsSnapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected empty snapshot with metrics disabled, got %+v", snap)
	}
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				m.Inc(MetricVerifyPass)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricVerifyPass); got != goroutines*perGoroutine {
		t.Fatalf("expected %d, got %d", goroutines*perGoroutine, got)
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{10 * time.Microsecond, 0},
		{50 * time.Microsecond, 0},
		{51 * time.Microsecond, 1},
		{250 * time.Microsecond, 2},
		{time.Millisecond, 4},
		{4 * time.Millisecond, 6},
		{time.Second, 7},
	}
	for _, tc := range tests {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
