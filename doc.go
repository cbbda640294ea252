// Package ciphertoken provides a JWT issuance-and-verification engine with
// structured claims, unsigned inspection, and refresh-token rotation.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]; the engine holds no mutable state, so no coordination is
// needed across calls. Every operation exists in a blocking form (Decode,
// Verify, Rotate, ...) and a non-blocking form (DecodeContext, VerifyContext,
// RotateContext, ...) with identical outputs; the non-blocking forms offload
// the CPU-bound cryptography to a fixed-size worker pool.
//
// # Architecture boundaries
//
// ciphertoken is the public surface. It exposes [Engine], [Builder], [Config],
// [Claims], and the format validators. Algorithm selection lives in the
// algorithm subpackage, key-material construction under internal/, the worker
// pool in the pool subpackage, and key-material generation helpers (random
// secrets, RSA key pairs) in the secret subpackage.
//
// # What this package must NOT do
//
//   - Keep server-side token state. Tokens are ephemeral strings: there is no
//     revocation list and no session store. Rotation is advisory; callers who
//     need single-use refresh tokens layer the revoke subpackage (or their
//     own store) on top.
//   - Retry anything. Every operation is a pure function of its inputs plus
//     the current wall clock; retry policy belongs to the caller.
//   - Log. The engine exposes counters through [Engine.MetricsSnapshot] and
//     leaves logging to the host application.
package ciphertoken
