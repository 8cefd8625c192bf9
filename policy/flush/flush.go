// Package flush implements the flush-all eviction policy: a full table is
// emptied and refilled from scratch.
package flush

import "github.com/IvanBrykalov/phpdate/policy"

type flush struct{}

// New returns the flush-all policy.
func New() policy.Policy { return flush{} }

// MakeRoom clears the whole table.
func (flush) MakeRoom(h policy.Hooks) int {
	n := h.Len()
	h.Clear()
	return n
}
