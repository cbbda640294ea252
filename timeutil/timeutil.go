// Package timeutil provides the wall-clock primitive the token engine
// consumes plus second-based unit converters for TTL arithmetic.
package timeutil

import "time"

// Now returns the current wall-clock time in seconds since the Unix epoch.
func Now() uint64 {
	return uint64(time.Now().Unix())
}

// Seconds returns n seconds, unchanged. It exists for symmetry with the
// other converters.
func Seconds(n uint64) uint64 { return n }

// Minutes converts n minutes to seconds.
func Minutes(n uint64) uint64 { return n * 60 }

// Hours converts n hours to seconds.
func Hours(n uint64) uint64 { return n * 60 * 60 }

// Days converts n days to seconds.
func Days(n uint64) uint64 { return n * 60 * 60 * 24 }

// Weeks converts n weeks to seconds.
func Weeks(n uint64) uint64 { return n * 60 * 60 * 24 * 7 }
