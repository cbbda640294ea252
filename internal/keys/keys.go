// Package keys builds signing and verification key handles from raw secret
// strings. Both builders are pure functions of (secret, algorithm) and are
// rebuilt on every call; nothing here caches parsed key material.
package keys

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/ciphertoken/algorithm"
)

// ErrInvalidMaterial is returned when the secret cannot be parsed as key
// material for the selected algorithm family.
var ErrInvalidMaterial = errors.New("invalid key material")

// Encoding turns the raw secret into a signing key handle for the given
// algorithm. HMAC secrets are wrapped as-is; asymmetric families require a
// private key PEM. The returned value has the concrete type the golang-jwt
// signing method expects.
func Encoding(secret string, alg algorithm.Algorithm) (any, error) {
	raw := []byte(secret)

	switch alg.Family() {
	case algorithm.FamilyHMAC:
		return raw, nil
	case algorithm.FamilyRSA:
		key, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		return key, nil
	case algorithm.FamilyECDSA:
		key, err := jwt.ParseECPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		return key, nil
	default:
		key, err := jwt.ParseEdPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		edKey, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an ed25519 private key", ErrInvalidMaterial)
		}
		return edKey, nil
	}
}

// Decoding turns the raw secret into a verification key handle. For the
// asymmetric families either a public key PEM or the matching private key
// PEM is accepted; in the latter case the public component is extracted.
// A non-matching key pair is not detected here; it surfaces as a signature
// failure at verification time.
func Decoding(secret string, alg algorithm.Algorithm) (any, error) {
	raw := []byte(secret)

	switch alg.Family() {
	case algorithm.FamilyHMAC:
		return raw, nil
	case algorithm.FamilyRSA:
		if pub, err := jwt.ParseRSAPublicKeyFromPEM(raw); err == nil {
			return pub, nil
		}
		priv, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		return &priv.PublicKey, nil
	case algorithm.FamilyECDSA:
		if pub, err := jwt.ParseECPublicKeyFromPEM(raw); err == nil {
			return pub, nil
		}
		priv, err := jwt.ParseECPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		return &priv.PublicKey, nil
	default:
		if pub, err := jwt.ParseEdPublicKeyFromPEM(raw); err == nil {
			if edPub, ok := pub.(ed25519.PublicKey); ok {
				return edPub, nil
			}
		}
		priv, err := jwt.ParseEdPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		edPriv, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an ed25519 key", ErrInvalidMaterial)
		}
		return edPriv.Public().(ed25519.PublicKey), nil
	}
}
