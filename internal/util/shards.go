package util

import "runtime"

// MaxShards bounds the automatic shard count.
const MaxShards = 256

// NextPow2 returns the smallest power of two >= x (x == 0 -> 1).
// Results that would overflow 64 bits are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// ShardCount normalizes a requested shard count to a power of two.
// n <= 0 picks nextPow2(2*GOMAXPROCS); the result is clamped to [1..MaxShards].
func ShardCount(n int) int {
	if n <= 0 {
		p := runtime.GOMAXPROCS(0)
		if p < 1 {
			p = 1
		}
		n = 2 * p
	}
	s := int(NextPow2(uint64(n)))
	if s > MaxShards {
		s = MaxShards
	}
	return s
}

// ShardIndex maps a hash onto one of shards slots; shards must be a power of two.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	return int(hash & uint64(shards-1))
}
