package ciphertoken

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// normalizeExtra converts a caller-supplied extension map into the canonical
// value representation: string / int64 / uint64 / float64 / bool / nil /
// []any / map[string]any, recursively. It always returns a fresh map, so the
// caller's map can be mutated afterwards without affecting issued claims.
func normalizeExtra(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue canonicalizes one extension value. Integers too wide for
// int64 become decimal strings; unsupported types fall back to their string
// rendering rather than failing the whole token.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool, string, int64, uint64, float64:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case float32:
		return float64(t)
	case json.Number:
		return canonicalNumber(t)
	case *big.Int:
		if t == nil {
			return nil
		}
		if t.IsInt64() {
			return t.Int64()
		}
		if t.IsUint64() {
			return t.Uint64()
		}
		return t.String()
	case big.Int:
		return normalizeValue(&t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalizeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalizeValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				out[iter.Key().String()] = normalizeValue(iter.Value().Interface())
			}
			return out
		}
	}

	return fmt.Sprint(v)
}

// canonicalValue canonicalizes a value decoded with json.Decoder.UseNumber:
// json.Number becomes int64 when it fits, then uint64, then float64, falling
// back to the literal string. Containers recurse.
func canonicalValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		return canonicalNumber(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = canonicalValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalValue(val)
		}
		return out
	default:
		return v
	}
}

func canonicalNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// bigIntClaim parses the "id" claim. Ids are integral; anything else is a
// malformed payload.
func bigIntClaim(v any) (*big.Int, error) {
	switch t := v.(type) {
	case json.Number:
		id, ok := new(big.Int).SetString(t.String(), 10)
		if !ok {
			return nil, fmt.Errorf("not an integer: %s", t)
		}
		return id, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("not a number: %T", v)
	}
}

// uintClaim parses the "exp"/"ttl" claims. Fractional values are accepted
// the way the signature library's numeric dates are: truncated.
func uintClaim(v any) (uint64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number: %T", v)
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u, nil
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxUint64 {
		return 0, fmt.Errorf("out of range: %s", n)
	}
	return uint64(f), nil
}
