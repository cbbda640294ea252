// Package algorithm maps textual JWT algorithm identifiers to concrete
// signing methods and classifies the key material each one requires.
//
// The mapping is pure and total over the supported set: every Algorithm
// value produced by [Parse] has a defined [Algorithm.Family] and
// [Algorithm.Method]. Anything outside the set fails Parse with
// [ErrUnsupported].
package algorithm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupported is returned by [Parse] for identifiers outside the
// supported algorithm set.
var ErrUnsupported = errors.New("unsupported algorithm")

// Algorithm is a supported JWT signing algorithm. Its string value is the
// canonical "alg" header name.
type Algorithm string

const (
	// HS256 is an exported constant of the supported algorithm set.
	HS256 Algorithm = "HS256"
	// HS384 is an exported constant of the supported algorithm set.
	HS384 Algorithm = "HS384"
	// HS512 is an exported constant of the supported algorithm set.
	HS512 Algorithm = "HS512"
	// RS256 is an exported constant of the supported algorithm set.
	RS256 Algorithm = "RS256"
	// RS384 is an exported constant of the supported algorithm set.
	RS384 Algorithm = "RS384"
	// RS512 is an exported constant of the supported algorithm set.
	RS512 Algorithm = "RS512"
	// ES256 is an exported constant of the supported algorithm set.
	ES256 Algorithm = "ES256"
	// ES384 is an exported constant of the supported algorithm set.
	ES384 Algorithm = "ES384"
	// PS256 is an exported constant of the supported algorithm set.
	PS256 Algorithm = "PS256"
	// PS384 is an exported constant of the supported algorithm set.
	PS384 Algorithm = "PS384"
	// PS512 is an exported constant of the supported algorithm set.
	PS512 Algorithm = "PS512"
	// EdDSA is an exported constant of the supported algorithm set.
	EdDSA Algorithm = "EdDSA"
)

// Family classifies the key material an algorithm requires.
type Family int

const (
	// FamilyHMAC algorithms take a raw symmetric secret.
	FamilyHMAC Family = iota
	// FamilyRSA algorithms (RS* and PS*) take an RSA PEM key.
	FamilyRSA
	// FamilyECDSA algorithms take an EC PEM key.
	FamilyECDSA
	// FamilyEd25519 algorithms take an Ed25519 PEM key.
	FamilyEd25519
)

// Parse resolves a case-insensitive textual identifier to an Algorithm.
// It fails with an error wrapping [ErrUnsupported] that names the
// offending input for anything outside the supported set.
func Parse(s string) (Algorithm, error) {
	switch strings.ToUpper(s) {
	case "HS256":
		return HS256, nil
	case "HS384":
		return HS384, nil
	case "HS512":
		return HS512, nil
	case "RS256":
		return RS256, nil
	case "RS384":
		return RS384, nil
	case "RS512":
		return RS512, nil
	case "ES256":
		return ES256, nil
	case "ES384":
		return ES384, nil
	case "PS256":
		return PS256, nil
	case "PS384":
		return PS384, nil
	case "PS512":
		return PS512, nil
	case "EDDSA":
		return EdDSA, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, s)
	}
}

// Name returns the canonical "alg" header name.
func (a Algorithm) Name() string {
	return string(a)
}

// Family returns the key-material family the algorithm requires.
func (a Algorithm) Family() Family {
	switch a {
	case HS256, HS384, HS512:
		return FamilyHMAC
	case ES256, ES384:
		return FamilyECDSA
	case EdDSA:
		return FamilyEd25519
	default:
		// RS* and PS*
		return FamilyRSA
	}
}

// Method returns the golang-jwt signing method for the algorithm.
func (a Algorithm) Method() jwt.SigningMethod {
	switch a {
	case HS256:
		return jwt.SigningMethodHS256
	case HS384:
		return jwt.SigningMethodHS384
	case HS512:
		return jwt.SigningMethodHS512
	case RS256:
		return jwt.SigningMethodRS256
	case RS384:
		return jwt.SigningMethodRS384
	case RS512:
		return jwt.SigningMethodRS512
	case ES256:
		return jwt.SigningMethodES256
	case ES384:
		return jwt.SigningMethodES384
	case PS256:
		return jwt.SigningMethodPS256
	case PS384:
		return jwt.SigningMethodPS384
	case PS512:
		return jwt.SigningMethodPS512
	default:
		return jwt.SigningMethodEdDSA
	}
}

// All returns the supported algorithm set in declaration order.
func All() []Algorithm {
	return []Algorithm{
		HS256, HS384, HS512,
		RS256, RS384, RS512,
		ES256, ES384,
		PS256, PS384, PS512,
		EdDSA,
	}
}
