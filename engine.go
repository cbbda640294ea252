package ciphertoken

import (
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrEthical07/ciphertoken/algorithm"
	"github.com/MrEthical07/ciphertoken/internal/keys"
	"github.com/MrEthical07/ciphertoken/pool"
	"github.com/MrEthical07/ciphertoken/secret"
	"github.com/MrEthical07/ciphertoken/timeutil"
)

// Engine mints, verifies, inspects, and rotates tokens. It is immutable
// after [Builder.Build]: any number of operations may run concurrently
// against the same instance without coordination.
type Engine struct {
	config   Config
	alg      algorithm.Algorithm
	metrics  *Metrics
	pool     *pool.Pool
	ownsPool bool
	rejected atomic.Uint64
}

// Close releases the engine-owned worker pool. Pools supplied through
// [Builder.WithWorkerPool] are left running.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.ownsPool && e.pool != nil {
		e.pool.Close()
	}
}

/*
====================================
ISSUANCE
====================================
*/

// CreateToken mints a token with an explicit TTL and token type. subject may
// be nil for tokens not bound to a subject; extra is merged flat alongside
// the fixed claims. exp is computed as now + ttl at call time.
func (e *Engine) CreateToken(ttl time.Duration, tokenType string, subject *big.Int, extra map[string]any) (string, error) {
	claims := e.newClaims(ttl, tokenType, subject, normalizeExtra(extra))
	return e.sign(claims)
}

// Access mints an access token for subject using the engine's access TTL.
func (e *Engine) Access(subject *big.Int, extra map[string]any) (string, error) {
	return e.CreateToken(e.config.AccessTTL, TokenAccess, subject, extra)
}

// Refresh mints a refresh token for subject using the engine's refresh TTL.
func (e *Engine) Refresh(subject *big.Int, extra map[string]any) (string, error) {
	return e.CreateToken(e.config.RefreshTTL, TokenRefresh, subject, extra)
}

// newClaims assembles the payload. extra must already be normalized.
func (e *Engine) newClaims(ttl time.Duration, tokenType string, subject *big.Int, extra map[string]any) *Claims {
	if ttl < 0 {
		ttl = 0
	}
	ttlSecs := uint64(ttl / time.Second)

	return &Claims{
		ID:        subject,
		Exp:       timeutil.Now() + ttlSecs,
		TTL:       ttlSecs,
		TokenType: tokenType,
		JTI:       uuid.NewString(),
		Extra:     extra,
		hasExp:    true,
	}
}

// sign serializes and signs claims with the engine's encoding key.
func (e *Engine) sign(claims *Claims) (string, error) {
	key, err := keys.Encoding(e.config.Secret, e.alg)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		return "", err
	}

	start := time.Now()
	signed, err := jwt.NewWithClaims(e.alg.Method(), claims).SignedString(key)
	e.metricObserve(MetricSignLatency, time.Since(start))
	if err != nil {
		e.metricInc(MetricIssueFailure)
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	e.metricInc(MetricIssueSuccess)
	return signed, nil
}

/*
====================================
VERIFICATION + INSPECTION
====================================
*/

// Decode verifies the token's signature and expiry and returns the full
// claim set. A payload without an exp claim is rejected. All rejects wrap
// [ErrTokenInvalid] with the underlying cause chained.
func (e *Engine) Decode(token string) (*Claims, error) {
	claims, err := e.decode(token)
	if err != nil {
		e.metricInc(MetricDecodeFailure)
		return nil, err
	}
	e.metricInc(MetricDecodeSuccess)
	return claims, nil
}

func (e *Engine) decode(token string) (*Claims, error) {
	key, err := keys.Decoding(e.config.Secret, e.alg)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{e.alg.Name()}),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Verify reports whether the token's signature and expiry both pass. It is
// total: any failure, including unparseable key material, yields false.
func (e *Engine) Verify(token string) bool {
	_, err := e.decode(token)
	if err != nil {
		e.metricInc(MetricVerifyFail)
		return false
	}
	e.metricInc(MetricVerifyPass)
	return true
}

// Inspect decodes the payload WITHOUT verifying the signature and WITHOUT
// checking expiry. It requires only that the token is syntactically a
// three-part compact JWT and that the payload deserializes into the claims
// shape; anything else fails wrapping [ErrInspectFailed]. Inspect output is
// never trust-bearing.
func (e *Engine) Inspect(token string) (*Claims, error) {
	claims, err := e.inspect(token)
	if err != nil {
		e.metricInc(MetricInspectFailure)
		return nil, err
	}
	e.metricInc(MetricInspectSuccess)
	return claims, nil
}

func (e *Engine) inspect(token string) (*Claims, error) {
	if !IsJWTFormat(token) {
		return nil, fmt.Errorf("%w: %w", ErrInspectFailed, ErrMalformedToken)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInspectFailed, err)
	}
	return claims, nil
}

// RemainingTime returns max(0, exp - now) for the token, without verifying
// it. ok is false when the payload carries no exp claim at all; the claims
// schema always writes exp, so that case is tolerated defensively rather
// than expected.
func (e *Engine) RemainingTime(token string) (remaining time.Duration, ok bool, err error) {
	claims, err := e.inspect(token)
	if err != nil {
		return 0, false, err
	}
	if !claims.hasExp {
		return 0, false, nil
	}

	now := timeutil.Now()
	if claims.Exp <= now {
		return 0, true, nil
	}
	return time.Duration(claims.Exp-now) * time.Second, true, nil
}

/*
====================================
ROTATION
====================================
*/

// Rotate exchanges a valid refresh token for a fresh access/refresh pair
// bound to the same subject. The presented token goes through full
// verification (signature and expiry); it must carry token type "refresh"
// and a subject id. Both new tokens get fresh jtis and expiries computed
// from now at rotation time: sliding-window renewal, not lifetime
// extension.
//
// The old refresh token is NOT invalidated: the engine keeps no revocation
// state. Callers needing single-use refresh tokens layer the revoke
// subpackage on top.
func (e *Engine) Rotate(refreshToken string, extra map[string]any) (TokenPair, error) {
	extraNorm := normalizeExtra(extra)
	pair, err := e.rotate(refreshToken, extraNorm)
	if err != nil {
		e.metricInc(MetricRotateFailure)
		return TokenPair{}, err
	}
	e.metricInc(MetricRotateSuccess)
	return pair, nil
}

// RotateClaims issues a fresh access/refresh pair from a claim set that
// already passed [Engine.Decode]. It enforces the same token-type and
// subject requirements as [Engine.Rotate] but does not re-verify the wire
// token, so callers that interpose work between verification and re-issue
// (the revoke subpackage claims the jti there) decode only once. claims
// must come straight from Decode; Inspect output is not verified and must
// never be passed here.
func (e *Engine) RotateClaims(claims *Claims, extra map[string]any) (TokenPair, error) {
	extraNorm := normalizeExtra(extra)
	pair, err := e.rotateClaims(claims, extraNorm)
	if err != nil {
		e.metricInc(MetricRotateFailure)
		return TokenPair{}, err
	}
	e.metricInc(MetricRotateSuccess)
	return pair, nil
}

// rotate runs the rotation protocol. extra must already be normalized.
func (e *Engine) rotate(refreshToken string, extra map[string]any) (TokenPair, error) {
	claims, err := e.decode(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return e.rotateClaims(claims, extra)
}

// rotateClaims re-issues a pair for verified claims. extra must already be
// normalized.
func (e *Engine) rotateClaims(claims *Claims, extra map[string]any) (TokenPair, error) {
	if claims == nil {
		return TokenPair{}, ErrTokenInvalid
	}
	if claims.TokenType != TokenRefresh {
		return TokenPair{}, ErrWrongTokenType
	}
	if claims.ID == nil {
		return TokenPair{}, ErrMissingSubject
	}

	access, err := e.sign(e.newClaims(e.config.AccessTTL, TokenAccess, claims.ID, extra))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := e.sign(e.newClaims(e.config.RefreshTTL, TokenRefresh, claims.ID, extra))
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

/*
====================================
INTROSPECTION OF THE ENGINE ITSELF
====================================
*/

// AlgorithmName returns the canonical name of the configured algorithm.
func (e *Engine) AlgorithmName() string {
	return e.alg.Name()
}

// Secret returns the engine's secret masked for display: the first 8
// characters followed by "...", or "***" when shorter. The unmasked secret
// is never exposed.
func (e *Engine) Secret() string {
	return secret.Mask(e.config.Secret)
}

// AccessTTL returns the configured access-token lifetime.
func (e *Engine) AccessTTL() time.Duration {
	return e.config.AccessTTL
}

// RefreshTTL returns the configured refresh-token lifetime.
func (e *Engine) RefreshTTL() time.Duration {
	return e.config.RefreshTTL
}

// MetricsSnapshot returns a point-in-time copy of the operation counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// PoolRejected returns the number of non-blocking calls that gave up on the
// worker pool: submissions refused by a cancelled context or closed pool,
// plus awaits abandoned by cancellation.
func (e *Engine) PoolRejected() uint64 {
	if e == nil {
		return 0
	}
	return e.rejected.Load()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}
