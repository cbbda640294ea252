// Package secret generates key material for the token engine and provides
// the display-safety masking helper.
//
// HMAC secrets are random bytes encoded with standard base64; RSA key pairs
// are returned as PKCS8 private / PKIX public PEM text, which is exactly the
// form the engine's key material builder parses.
package secret

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

const (
	// DefaultSecretSize is the default HMAC secret size in bytes.
	DefaultSecretSize = 32
	// MinSecretSize is the smallest accepted HMAC secret size in bytes.
	MinSecretSize = 16
	// MinRSABits is the smallest accepted RSA modulus size.
	MinRSABits = 2048
)

var (
	// ErrSecretTooSmall is returned for HMAC secret sizes below [MinSecretSize].
	ErrSecretTooSmall = errors.New("secret key size must be at least 16 bytes")
	// ErrRSAKeySize is returned for RSA modulus sizes below [MinRSABits].
	ErrRSAKeySize = errors.New("rsa key size must be at least 2048 bits")
)

// Key generates a random HMAC secret of [DefaultSecretSize] bytes.
func Key() (string, error) {
	return HMACSecret(DefaultSecretSize)
}

// KeyWithSize generates a random HMAC secret of size bytes.
func KeyWithSize(size int) (string, error) {
	return HMACSecret(size)
}

// HMACSecret generates size random bytes and returns them base64-encoded.
// Sizes below [MinSecretSize] fail with [ErrSecretTooSmall].
func HMACSecret(size int) (string, error) {
	if size < MinSecretSize {
		return "", ErrSecretTooSmall
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// RSAKeyPair generates an RSA key pair and returns (private PEM, public PEM).
// A bits value of zero or less selects the [MinRSABits] default; anything
// between 1 and 2047 fails with [ErrRSAKeySize].
func RSAKeyPair(bits int) (string, string, error) {
	if bits <= 0 {
		bits = MinRSABits
	}
	if bits < MinRSABits {
		return "", "", ErrRSAKeySize
	}

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("generate rsa key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", "", fmt.Errorf("encode private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("encode public key: %w", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return string(privPEM), string(pubPEM), nil
}

// Mask renders a secret for logs: the first 8 characters followed by "...",
// or "***" when the secret is 8 characters or shorter. This is a display
// contract only; the unmasked secret stays in memory.
func Mask(s string) string {
	if len(s) > 8 {
		return s[:8] + "..."
	}
	return "***"
}
