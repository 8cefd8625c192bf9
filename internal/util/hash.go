// Package util contains internal helpers (digits, hashing, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// KeyHash hashes a result-cache key (format, epoch millis, utc flag) with
// 64-bit FNV-1a. The string is walked byte by byte so no allocation happens.
func KeyHash(format string, millis int64, utc bool) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(format); i++ {
		h ^= uint64(format[i])
		h *= fnvPrime64
	}
	u := uint64(millis)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	if utc {
		h ^= 1
		h *= fnvPrime64
	}
	return h
}
