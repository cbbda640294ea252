// Package middleware exposes HTTP middleware adapters for stateless and
// revocation-aware bearer-token enforcement built on top of ciphertoken.Engine.
//
// # Guards
//
//   - [Guard]: core guard, stateless or deny-list-backed depending on the store argument.
//   - [RequireJWT]: stateless signature and expiry verification, no Redis call.
//   - [RequireUnrevoked]: verification plus a jti deny-list check.
//
// Each guard reads the Authorization header, verifies the token through the
// engine, and injects the verified claims into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into engine calls. It does NOT
// implement token logic itself; all decisions are delegated to the engine
// and, when configured, the revocation store.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to the engine).
//   - Touch Redis beyond the revocation check (the store handles I/O).
//   - Make authorization decisions beyond pass/reject.
package middleware
