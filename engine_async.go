package ciphertoken

import (
	"context"
	"math/big"
	"time"
)

// The ...Context methods are the non-blocking counterparts of the engine's
// operations. Each produces exactly the same output as its blocking twin;
// the difference is where the work runs. Caller-supplied values are
// canonicalized on the calling goroutine before submission, the CPU-bound
// signing/verification runs on the worker pool, and results come back over a
// buffered channel so that a cancelled caller simply abandons the in-flight
// task and its result, if any, is discarded. Signing and verification are
// side-effect-free, so there is nothing to roll back.

type asyncResult[T any] struct {
	value T
	err   error
}

// await runs fn on the engine's pool and waits for its result or ctx
// cancellation.
func await[T any](e *Engine, ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}

	ch := make(chan asyncResult[T], 1)
	if err := e.pool.Submit(ctx, func() {
		v, err := fn()
		ch <- asyncResult[T]{value: v, err: err}
	}); err != nil {
		e.rejected.Add(1)
		return zero, err
	}

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		e.rejected.Add(1)
		return zero, ctx.Err()
	}
}

// CreateTokenContext is the non-blocking form of [Engine.CreateToken].
func (e *Engine) CreateTokenContext(ctx context.Context, ttl time.Duration, tokenType string, subject *big.Int, extra map[string]any) (string, error) {
	claims := e.newClaims(ttl, tokenType, subject, normalizeExtra(extra))
	return await(e, ctx, func() (string, error) {
		return e.sign(claims)
	})
}

// AccessContext is the non-blocking form of [Engine.Access].
func (e *Engine) AccessContext(ctx context.Context, subject *big.Int, extra map[string]any) (string, error) {
	return e.CreateTokenContext(ctx, e.config.AccessTTL, TokenAccess, subject, extra)
}

// RefreshContext is the non-blocking form of [Engine.Refresh].
func (e *Engine) RefreshContext(ctx context.Context, subject *big.Int, extra map[string]any) (string, error) {
	return e.CreateTokenContext(ctx, e.config.RefreshTTL, TokenRefresh, subject, extra)
}

// DecodeContext is the non-blocking form of [Engine.Decode].
func (e *Engine) DecodeContext(ctx context.Context, token string) (*Claims, error) {
	return await(e, ctx, func() (*Claims, error) {
		return e.Decode(token)
	})
}

// VerifyContext is the non-blocking form of [Engine.Verify]. The boolean
// carries the verification outcome; the error is non-nil only for
// cancellation or a closed pool, never for a failed verification.
func (e *Engine) VerifyContext(ctx context.Context, token string) (bool, error) {
	return await(e, ctx, func() (bool, error) {
		return e.Verify(token), nil
	})
}

// InspectContext is the non-blocking form of [Engine.Inspect].
func (e *Engine) InspectContext(ctx context.Context, token string) (*Claims, error) {
	return await(e, ctx, func() (*Claims, error) {
		return e.Inspect(token)
	})
}

// RemainingTimeContext is the non-blocking form of [Engine.RemainingTime].
func (e *Engine) RemainingTimeContext(ctx context.Context, token string) (time.Duration, bool, error) {
	type result struct {
		remaining time.Duration
		ok        bool
	}
	r, err := await(e, ctx, func() (result, error) {
		remaining, ok, err := e.RemainingTime(token)
		return result{remaining: remaining, ok: ok}, err
	})
	return r.remaining, r.ok, err
}

// RotateClaimsContext is the non-blocking form of [Engine.RotateClaims].
func (e *Engine) RotateClaimsContext(ctx context.Context, claims *Claims, extra map[string]any) (TokenPair, error) {
	extraNorm := normalizeExtra(extra)
	return await(e, ctx, func() (TokenPair, error) {
		pair, err := e.rotateClaims(claims, extraNorm)
		if err != nil {
			e.metricInc(MetricRotateFailure)
			return TokenPair{}, err
		}
		e.metricInc(MetricRotateSuccess)
		return pair, nil
	})
}

// RotateContext is the non-blocking form of [Engine.Rotate]. The whole
// protocol (decode, type and subject checks, both re-issues) runs as one
// pool task. A cancelled await is not a rotation failure and leaves the
// rotation counters untouched.
func (e *Engine) RotateContext(ctx context.Context, refreshToken string, extra map[string]any) (TokenPair, error) {
	extraNorm := normalizeExtra(extra)
	return await(e, ctx, func() (TokenPair, error) {
		pair, err := e.rotate(refreshToken, extraNorm)
		if err != nil {
			e.metricInc(MetricRotateFailure)
			return TokenPair{}, err
		}
		e.metricInc(MetricRotateSuccess)
		return pair, nil
	})
}
