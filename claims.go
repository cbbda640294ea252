package ciphertoken

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// reserved claim names; extension keys colliding with these are caller error
// (encode writes the fixed field, decode consumes the key before Extra).
const (
	claimID    = "id"
	claimExp   = "exp"
	claimTTL   = "ttl"
	claimToken = "token"
	claimJTI   = "jti"
)

// Claims is the signed token payload: the fixed fields plus an open
// extension map flattened alongside them on the wire.
//
// Extra keys must not collide with the fixed claim names ("id", "exp",
// "ttl", "token", "jti"). Collision behavior is last-write-wins at decode
// reconstruction and is the caller's responsibility; the engine does not
// enforce it.
type Claims struct {
	// ID is the optional subject identifier. Nil for tokens not bound to a
	// subject; arbitrary-precision to round-trip ids wider than int64.
	ID *big.Int
	// Exp is the absolute expiry in seconds since the Unix epoch.
	Exp uint64
	// TTL is the TTL in seconds that was used to compute Exp. Redundant but
	// preserved verbatim for client convenience.
	TTL uint64
	// TokenType discriminates "access" from "refresh". Any string
	// round-trips; rotation only honors [TokenRefresh].
	TokenType string
	// JTI is a per-token random UUIDv4. Uniqueness is statistical; nothing
	// deduplicates or persists it.
	JTI string
	// Extra carries caller-supplied extension values, canonicalized to
	// string / int64 / uint64 / float64 / bool / nil / []any /
	// map[string]any.
	Extra map[string]any

	// hasExp records whether the decoded payload carried an exp claim at
	// all. Engine-issued claims always do.
	hasExp bool
}

// MarshalJSON flattens Extra alongside the fixed fields. Fixed fields win
// over colliding extension keys.
func (c *Claims) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Extra)+5)
	for k, v := range c.Extra {
		m[k] = v
	}
	if c.ID != nil {
		m[claimID] = c.ID
	}
	m[claimExp] = c.Exp
	m[claimTTL] = c.TTL
	m[claimToken] = c.TokenType
	m[claimJTI] = c.JTI
	return json.Marshal(m)
}

// UnmarshalJSON reconstructs the fixed fields and routes every remaining key
// into Extra, canonicalizing numbers as it goes.
func (c *Claims) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*c = Claims{}

	if v, ok := raw[claimID]; ok {
		id, err := bigIntClaim(v)
		if err != nil {
			return fmt.Errorf("id claim: %w", err)
		}
		c.ID = id
		delete(raw, claimID)
	}
	if v, ok := raw[claimExp]; ok {
		exp, err := uintClaim(v)
		if err != nil {
			return fmt.Errorf("exp claim: %w", err)
		}
		c.Exp = exp
		c.hasExp = true
		delete(raw, claimExp)
	}
	if v, ok := raw[claimTTL]; ok {
		ttl, err := uintClaim(v)
		if err != nil {
			return fmt.Errorf("ttl claim: %w", err)
		}
		c.TTL = ttl
		delete(raw, claimTTL)
	}
	if v, ok := raw[claimToken]; ok {
		s, sok := v.(string)
		if !sok {
			return fmt.Errorf("token claim: not a string")
		}
		c.TokenType = s
		delete(raw, claimToken)
	}
	if v, ok := raw[claimJTI]; ok {
		s, sok := v.(string)
		if !sok {
			return fmt.Errorf("jti claim: not a string")
		}
		c.JTI = s
		delete(raw, claimJTI)
	}

	if len(raw) > 0 {
		c.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			c.Extra[k] = canonicalValue(v)
		}
	}

	return nil
}

// GetExpirationTime implements [jwt.Claims]. It returns nil when the payload
// carried no exp claim so that the parser's required-expiry check rejects it.
func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if !c.hasExp {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(int64(c.Exp), 0)), nil
}

// GetIssuedAt implements [jwt.Claims]; the schema carries no iat.
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) { return nil, nil }

// GetNotBefore implements [jwt.Claims]; the schema carries no nbf.
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

// GetIssuer implements [jwt.Claims]; the schema carries no iss.
func (c *Claims) GetIssuer() (string, error) { return "", nil }

// GetSubject implements [jwt.Claims]; the subject id travels in the "id"
// claim, not "sub".
func (c *Claims) GetSubject() (string, error) { return "", nil }

// GetAudience implements [jwt.Claims]; the schema carries no aud.
func (c *Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }
