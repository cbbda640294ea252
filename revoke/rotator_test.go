package revoke

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/ciphertoken"
)

func newRotatorTest(t *testing.T) (*Rotator, *ciphertoken.Engine) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	eng, err := ciphertoken.NewEngine("0123456789abcdef0123456789abcdef", "HS256", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}

	t.Cleanup(func() {
		eng.Close()
		rdb.Close()
		mr.Close()
	})
	return NewRotator(eng, NewStore(rdb, "ct")), eng
}

func TestRotateConsumesRefreshToken(t *testing.T) {
	rot, eng := newRotatorTest(t)
	ctx := context.Background()

	refresh, err := eng.Refresh(big.NewInt(1), nil)
	if err != nil {
		t.Fatalf("refresh issuance failed: %v", err)
	}

	pair, err := rot.Rotate(ctx, refresh, nil)
	if err != nil {
		t.Fatalf("first rotation failed: %v", err)
	}
	if !eng.Verify(pair.AccessToken) || !eng.Verify(pair.RefreshToken) {
		t.Fatal("expected rotated pair to verify")
	}

	if _, err := rot.Rotate(ctx, refresh, nil); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected replay to get ErrTokenRevoked, got %v", err)
	}

	// The replacement refresh token has a fresh jti and rotates normally.
	if _, err := rot.Rotate(ctx, pair.RefreshToken, nil); err != nil {
		t.Fatalf("rotation of replacement failed: %v", err)
	}
}

func TestRotateWrongTypeLeavesTokenLive(t *testing.T) {
	rot, eng := newRotatorTest(t)
	ctx := context.Background()

	access, err := eng.Access(big.NewInt(7), nil)
	if err != nil {
		t.Fatalf("issuance failed: %v", err)
	}

	if _, err := rot.Rotate(ctx, access, nil); !errors.Is(err, ciphertoken.ErrWrongTokenType) {
		t.Fatalf("expected ErrWrongTokenType, got %v", err)
	}

	// The rejected access token must not have been claimed on the deny list.
	if _, err := rot.Check(ctx, access); err != nil {
		t.Fatalf("access token unusable after rejected rotation: %v", err)
	}

	revoked, err := rot.store.IsRevoked(ctx, mustJTI(t, eng, access))
	if err != nil {
		t.Fatalf("revocation lookup failed: %v", err)
	}
	if revoked {
		t.Fatal("rejected rotation claimed the jti")
	}
}

func TestRotateMissingSubjectLeavesTokenLive(t *testing.T) {
	rot, eng := newRotatorTest(t)
	ctx := context.Background()

	refresh, err := eng.Refresh(nil, nil)
	if err != nil {
		t.Fatalf("refresh issuance failed: %v", err)
	}

	if _, err := rot.Rotate(ctx, refresh, nil); !errors.Is(err, ciphertoken.ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
	if _, err := rot.Check(ctx, refresh); err != nil {
		t.Fatalf("refresh token unusable after rejected rotation: %v", err)
	}
}

func mustJTI(t *testing.T, eng *ciphertoken.Engine, token string) string {
	t.Helper()
	claims, err := eng.Inspect(token)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	return claims.JTI
}

func TestRotateRejectsInvalidToken(t *testing.T) {
	rot, _ := newRotatorTest(t)

	if _, err := rot.Rotate(context.Background(), "a.b.c", nil); !errors.Is(err, ciphertoken.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRevokeThenCheck(t *testing.T) {
	rot, eng := newRotatorTest(t)
	ctx := context.Background()

	access, err := eng.Access(big.NewInt(2), nil)
	if err != nil {
		t.Fatalf("issuance failed: %v", err)
	}

	claims, err := rot.Check(ctx, access)
	if err != nil {
		t.Fatalf("check of live token failed: %v", err)
	}
	if claims.ID.Int64() != 2 {
		t.Fatalf("expected subject 2, got %v", claims.ID)
	}

	if err := rot.Revoke(ctx, access); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := rot.Check(ctx, access); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after revoke, got %v", err)
	}
}

func TestRevokeRejectsGarbage(t *testing.T) {
	rot, _ := newRotatorTest(t)

	if err := rot.Revoke(context.Background(), "garbage"); !errors.Is(err, ciphertoken.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
