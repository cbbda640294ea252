package ciphertoken

import (
	"math/big"
	"testing"
	"time"
)

func benchEngine(b *testing.B) *Engine {
	b.Helper()
	eng, err := NewEngine("0123456789abcdef0123456789abcdef", "HS256", time.Hour, 24*time.Hour)
	if err != nil {
		b.Fatalf("engine build failed: %v", err)
	}
	b.Cleanup(eng.Close)
	return eng
}

func BenchmarkAccessHS256(b *testing.B) {
	eng := benchEngine(b)
	subject := big.NewInt(1)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := eng.Access(subject, nil); err != nil {
			b.Fatalf("issuance failed: %v", err)
		}
	}
}

func BenchmarkVerifyHS256(b *testing.B) {
	eng := benchEngine(b)
	token, err := eng.Access(big.NewInt(1), nil)
	if err != nil {
		b.Fatalf("issuance failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if !eng.Verify(token) {
			b.Fatal("expected token to verify")
		}
	}
}

func BenchmarkVerifyHS256Parallel(b *testing.B) {
	eng := benchEngine(b)
	token, err := eng.Access(big.NewInt(1), nil)
	if err != nil {
		b.Fatalf("issuance failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if !eng.Verify(token) {
				b.Fatal("expected token to verify")
			}
		}
	})
}
