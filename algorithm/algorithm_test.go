package algorithm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  Algorithm
	}{
		{"HS256", HS256},
		{"hs256", HS256},
		{"Hs384", HS384},
		{"hs512", HS512},
		{"rs256", RS256},
		{"RS384", RS384},
		{"rs512", RS512},
		{"es256", ES256},
		{"ES384", ES384},
		{"ps256", PS256},
		{"Ps384", PS384},
		{"PS512", PS512},
		{"EDDSA", EdDSA},
		{"eddsa", EdDSA},
		{"EdDSA", EdDSA},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseUnsupported(t *testing.T) {
	for _, input := range []string{"", "none", "HS1024", "RSA", "es512", "hmac"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", input)
		}
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("Parse(%q) error = %v, want ErrUnsupported", input, err)
		}
		if input != "" && !strings.Contains(err.Error(), input) {
			t.Fatalf("Parse(%q) error %q does not name the input", input, err)
		}
	}
}

func TestFamilyTotal(t *testing.T) {
	want := map[Algorithm]Family{
		HS256: FamilyHMAC, HS384: FamilyHMAC, HS512: FamilyHMAC,
		RS256: FamilyRSA, RS384: FamilyRSA, RS512: FamilyRSA,
		PS256: FamilyRSA, PS384: FamilyRSA, PS512: FamilyRSA,
		ES256: FamilyECDSA, ES384: FamilyECDSA,
		EdDSA: FamilyEd25519,
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d algorithms, want %d", len(all), len(want))
	}
	for _, alg := range all {
		fam, ok := want[alg]
		if !ok {
			t.Fatalf("All() returned unexpected algorithm %q", alg)
		}
		if alg.Family() != fam {
			t.Fatalf("%s.Family() = %d, want %d", alg, alg.Family(), fam)
		}
	}
}

func TestMethodMatchesHeaderName(t *testing.T) {
	for _, alg := range All() {
		if alg.Method() == nil {
			t.Fatalf("%s.Method() returned nil", alg)
		}
		if alg.Method().Alg() != alg.Name() {
			t.Fatalf("%s.Method().Alg() = %q, want %q", alg, alg.Method().Alg(), alg.Name())
		}
	}
}
