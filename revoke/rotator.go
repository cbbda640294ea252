package revoke

import (
	"context"
	"time"

	"github.com/MrEthical07/ciphertoken"
	"github.com/MrEthical07/ciphertoken/timeutil"
)

// Rotator binds an engine to a deny list to make refresh tokens single-use.
// Each successful rotation claims the presented token's jti before any new
// tokens are signed; a replayed refresh token loses the claim and gets
// ErrTokenRevoked. The window where a crash after the claim burns the token
// without issuing replacements is accepted: failing closed is the point.
type Rotator struct {
	engine *ciphertoken.Engine
	store  *Store
}

// NewRotator binds engine and store.
func NewRotator(engine *ciphertoken.Engine, store *Store) *Rotator {
	return &Rotator{engine: engine, store: store}
}

// Rotate exchanges refreshToken for a fresh pair, consuming it. The token
// goes through the engine's full rotation checks (signature, expiry, type,
// subject); on top of that its jti must not have been used before. The jti
// is claimed only after every check has passed, so a rejected token (an
// access token presented here by mistake, say) stays live.
func (r *Rotator) Rotate(ctx context.Context, refreshToken string, extra map[string]any) (ciphertoken.TokenPair, error) {
	claims, err := r.engine.Decode(refreshToken)
	if err != nil {
		return ciphertoken.TokenPair{}, err
	}
	if claims.TokenType != ciphertoken.TokenRefresh {
		return ciphertoken.TokenPair{}, ciphertoken.ErrWrongTokenType
	}
	if claims.ID == nil {
		return ciphertoken.TokenPair{}, ciphertoken.ErrMissingSubject
	}

	first, err := r.store.Claim(ctx, claims.JTI, remainingLife(claims))
	if err != nil {
		return ciphertoken.TokenPair{}, err
	}
	if !first {
		return ciphertoken.TokenPair{}, ErrTokenRevoked
	}

	return r.engine.RotateClaimsContext(ctx, claims, extra)
}

// Revoke consumes any live token without issuing replacements, for logout
// and compromise response. The token must still verify; revoking garbage is
// rejected rather than silently accepted.
func (r *Rotator) Revoke(ctx context.Context, token string) error {
	claims, err := r.engine.Decode(token)
	if err != nil {
		return err
	}
	return r.store.Revoke(ctx, claims.JTI, remainingLife(claims))
}

// Check verifies token against both the engine and the deny list. It returns
// the claims only when the signature, expiry, and revocation status all pass.
func (r *Rotator) Check(ctx context.Context, token string) (*ciphertoken.Claims, error) {
	claims, err := r.engine.Decode(token)
	if err != nil {
		return nil, err
	}
	if err := r.store.Check(ctx, claims.JTI); err != nil {
		return nil, err
	}
	return claims, nil
}

func remainingLife(claims *ciphertoken.Claims) time.Duration {
	now := timeutil.Now()
	if claims.Exp <= now {
		return 0
	}
	return time.Duration(claims.Exp-now) * time.Second
}
