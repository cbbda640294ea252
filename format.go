package ciphertoken

import "strings"

// IsJWTFormat reports whether s looks like a compact JWT: exactly three
// non-empty parts separated by dots. No content validation is performed
// beyond the split.
func IsJWTFormat(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

// ValidateJWTFormat performs the same check as [IsJWTFormat] but fails with
// [ErrMalformedToken] instead of returning false.
func ValidateJWTFormat(s string) error {
	if !IsJWTFormat(s) {
		return ErrMalformedToken
	}
	return nil
}
