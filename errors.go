package ciphertoken

import (
	"errors"

	"github.com/MrEthical07/ciphertoken/algorithm"
	"github.com/MrEthical07/ciphertoken/internal/keys"
)

var (
	// ErrUnsupportedAlgorithm is returned when an algorithm identifier is
	// outside the supported set. It aliases [algorithm.ErrUnsupported].
	ErrUnsupportedAlgorithm = algorithm.ErrUnsupported
	// ErrInvalidKeyMaterial is returned when the engine's secret cannot be
	// parsed as key material for the configured algorithm family. Key
	// material is built lazily, so this surfaces per call rather than at
	// construction time.
	ErrInvalidKeyMaterial = keys.ErrInvalidMaterial
	// ErrSigningFailed wraps failures from the underlying signature library
	// while producing a token.
	ErrSigningFailed = errors.New("token signing failed")
	// ErrTokenInvalid is returned by Decode for any rejected token:
	// malformed, wrong algorithm, bad signature, or expired. The underlying
	// cause stays inspectable through errors.Is / errors.As.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrInspectFailed is returned by Inspect when the token is not
	// structurally a JWT or its payload does not deserialize.
	ErrInspectFailed = errors.New("token inspect failed")
	// ErrWrongTokenType is returned by Rotate when the presented token is
	// not a refresh token.
	ErrWrongTokenType = errors.New("only refresh tokens can be used for rotation")
	// ErrMissingSubject is returned by Rotate when the presented token
	// carries no subject id.
	ErrMissingSubject = errors.New("subject id not found in token")
	// ErrMalformedToken is returned by ValidateJWTFormat for strings that do
	// not split into exactly three non-empty dot-separated parts.
	ErrMalformedToken = errors.New("invalid jwt format: must have exactly 3 parts separated by dots")
)
