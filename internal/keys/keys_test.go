package keys

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/MrEthical07/ciphertoken/algorithm"
)

func rsaPEMPair(t *testing.T) (string, string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey failed: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey failed: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return string(privPEM), string(pubPEM)
}

func ecPEMPair(t *testing.T) (string, string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	privDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		t.Fatalf("MarshalECPrivateKey failed: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey failed: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return string(privPEM), string(pubPEM)
}

func edPEMPair(t *testing.T) (string, string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey failed: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey failed: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return string(privPEM), string(pubPEM)
}

func TestHMACWrapsRawBytes(t *testing.T) {
	secret := "not base64, just \x00 bytes"

	for _, alg := range []algorithm.Algorithm{algorithm.HS256, algorithm.HS384, algorithm.HS512} {
		enc, err := Encoding(secret, alg)
		if err != nil {
			t.Fatalf("Encoding failed: %v", err)
		}
		dec, err := Decoding(secret, alg)
		if err != nil {
			t.Fatalf("Decoding failed: %v", err)
		}
		if string(enc.([]byte)) != secret || string(dec.([]byte)) != secret {
			t.Fatal("HMAC key handles must wrap the raw secret bytes")
		}
	}
}

func TestRSAEncodingDecoding(t *testing.T) {
	privPEM, pubPEM := rsaPEMPair(t)

	enc, err := Encoding(privPEM, algorithm.RS256)
	if err != nil {
		t.Fatalf("Encoding failed: %v", err)
	}
	if _, ok := enc.(*rsa.PrivateKey); !ok {
		t.Fatalf("Encoding returned %T, want *rsa.PrivateKey", enc)
	}

	// decode side accepts either the public or the private PEM
	for _, secret := range []string{pubPEM, privPEM} {
		dec, err := Decoding(secret, algorithm.PS512)
		if err != nil {
			t.Fatalf("Decoding failed: %v", err)
		}
		if _, ok := dec.(*rsa.PublicKey); !ok {
			t.Fatalf("Decoding returned %T, want *rsa.PublicKey", dec)
		}
	}
}

func TestECEncodingDecoding(t *testing.T) {
	privPEM, pubPEM := ecPEMPair(t)

	enc, err := Encoding(privPEM, algorithm.ES256)
	if err != nil {
		t.Fatalf("Encoding failed: %v", err)
	}
	if _, ok := enc.(*ecdsa.PrivateKey); !ok {
		t.Fatalf("Encoding returned %T, want *ecdsa.PrivateKey", enc)
	}

	for _, secret := range []string{pubPEM, privPEM} {
		dec, err := Decoding(secret, algorithm.ES256)
		if err != nil {
			t.Fatalf("Decoding failed: %v", err)
		}
		if _, ok := dec.(*ecdsa.PublicKey); !ok {
			t.Fatalf("Decoding returned %T, want *ecdsa.PublicKey", dec)
		}
	}
}

func TestEd25519EncodingDecoding(t *testing.T) {
	privPEM, pubPEM := edPEMPair(t)

	enc, err := Encoding(privPEM, algorithm.EdDSA)
	if err != nil {
		t.Fatalf("Encoding failed: %v", err)
	}
	if _, ok := enc.(ed25519.PrivateKey); !ok {
		t.Fatalf("Encoding returned %T, want ed25519.PrivateKey", enc)
	}

	for _, secret := range []string{pubPEM, privPEM} {
		dec, err := Decoding(secret, algorithm.EdDSA)
		if err != nil {
			t.Fatalf("Decoding failed: %v", err)
		}
		if _, ok := dec.(ed25519.PublicKey); !ok {
			t.Fatalf("Decoding returned %T, want ed25519.PublicKey", dec)
		}
	}
}

func TestInvalidMaterial(t *testing.T) {
	for _, alg := range []algorithm.Algorithm{algorithm.RS256, algorithm.ES384, algorithm.EdDSA} {
		if _, err := Encoding("not a pem", alg); !errors.Is(err, ErrInvalidMaterial) {
			t.Fatalf("Encoding(%s) error = %v, want ErrInvalidMaterial", alg, err)
		}
		if _, err := Decoding("not a pem", alg); !errors.Is(err, ErrInvalidMaterial) {
			t.Fatalf("Decoding(%s) error = %v, want ErrInvalidMaterial", alg, err)
		}
	}

	// wrong family PEM: an EC key is not RSA material
	ecPriv, _ := ecPEMPair(t)
	if _, err := Encoding(ecPriv, algorithm.RS256); !errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("Encoding(EC PEM as RSA) error = %v, want ErrInvalidMaterial", err)
	}
}
