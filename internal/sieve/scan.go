// Package sieve implements the SIEVE eviction algorithm: a single-hand
// circular scan over a fixed number of slots, driven by one reference bit
// per slot.
//
// The scan itself is kept ignorant of key/value types and of how a slot's
// occupancy and read-flag are actually stored. Both the single-threaded and
// the concurrent cache in pkg/sievecache close over their own slot storage
// and pass accessors in; this avoids duplicating the scan logic once per
// synchronization strategy.
//
// © 2025 sievecache authors. MIT License.
package sieve

// Scan runs the SIEVE victim-selection loop starting at *hand and returns
// the chosen victim index, advancing *hand one position past it.
//
// occupied(i) reports whether slot i currently holds a payload.
// read(i) reports the slot's reference bit.
// clearRead(i) clears it.
//
// The loop always terminates: each iteration either returns a victim or
// clears one previously-set read-flag, and there are at most n of those.
func Scan(n int, hand *int, occupied func(i int) bool, read func(i int) bool, clearRead func(i int)) int {
	if n <= 0 {
		panic("sieve: n must be positive")
	}
	h := *hand
	for {
		i := h
		h = (h + 1) % n
		if occupied(i) && read(i) {
			clearRead(i)
			continue
		}
		*hand = h
		return i
	}
}
