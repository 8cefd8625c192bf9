// Package policy defines how the timezone bucket table makes room when it
// reaches capacity. The table is sparse and carries no recency data, so
// policies choose victims without LRU bookkeeping.
package policy

// Hooks expose the bucket table to a policy. Implementations are provided by
// the table itself.
//
// Concurrency: all hook calls happen under the table lock.
type Hooks interface {
	// Len returns the number of resident buckets.
	Len() int
	// Range visits resident bucket indexes in unspecified order until fn
	// returns false.
	Range(fn func(bucket int64) bool)
	// Remove drops one bucket.
	Remove(bucket int64)
	// Clear drops every bucket.
	Clear()
}

// Policy frees space in a full table before an insert.
type Policy interface {
	// MakeRoom is called with the table at capacity and returns how many
	// buckets it evicted.
	MakeRoom(h Hooks) int
}
