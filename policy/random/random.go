// Package random implements random-slot replacement: one uniformly chosen
// bucket is dropped to admit the new one.
package random

import (
	"math/rand/v2"

	"github.com/IvanBrykalov/phpdate/policy"
)

type random struct {
	intn func(n int) int
}

// New returns a random-slot policy backed by math/rand/v2.
func New() policy.Policy { return random{intn: rand.IntN} }

// MakeRoom removes the i-th visited bucket for a random i.
func (p random) MakeRoom(h policy.Hooks) int {
	n := h.Len()
	if n == 0 {
		return 0
	}
	victim, i := int64(0), p.intn(n)
	found := false
	h.Range(func(b int64) bool {
		if i == 0 {
			victim, found = b, true
			return false
		}
		i--
		return true
	})
	if !found {
		return 0
	}
	h.Remove(victim)
	return 1
}
