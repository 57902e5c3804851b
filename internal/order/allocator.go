// Package order computes display-position keys for lists and cards.
//
// Keys live strictly inside (0, 2^53). The upper bound keeps every key exact
// in a float64, so JSON clients can echo keys back without corruption.
// Adjacent items start 2^16 apart, which allows 16 repeated midpoint inserts
// into the same gap before a rebalance is needed.
package order

import "errors"

const (
	// KeyMin and KeyMax are exclusive bounds of the key domain.
	KeyMin int64 = 0
	KeyMax int64 = 1 << 53

	// Spacing is the gap between adjacent keys after a rebalance and the
	// step taken when appending past the current end.
	Spacing int64 = 1 << 16

	midKey int64 = 1 << 52
)

// ErrNeedsRebalance reports that no representable key exists strictly
// between the given neighbors. Callers redistribute the collection's keys
// with Rebalance and retry.
var ErrNeedsRebalance = errors.New("order: no key between neighbors, collection needs rebalance")

// ErrInvalidNeighbors reports a neighbor pair that is not in ascending
// order, which means the caller read an inconsistent sibling set.
var ErrInvalidNeighbors = errors.New("order: neighbor keys out of order")

// Allocate returns a fresh key positioned relative to the given neighbors.
// A nil neighbor means the corresponding side is open: both nil yields the
// domain midpoint, one nil steps Spacing into the open direction (clamped to
// the midpoint of the remaining range near a domain edge), both set yields
// the midpoint between them.
func Allocate(before, after *int64) (int64, error) {
	switch {
	case before == nil && after == nil:
		return midKey, nil
	case before == nil:
		a := *after
		if a-KeyMin < 2 {
			return 0, ErrNeedsRebalance
		}
		k := a - Spacing
		if k <= KeyMin {
			k = KeyMin + (a-KeyMin)/2
		}
		return k, nil
	case after == nil:
		b := *before
		if KeyMax-b < 2 {
			return 0, ErrNeedsRebalance
		}
		k := b + Spacing
		if k >= KeyMax {
			k = b + (KeyMax-b)/2
		}
		return k, nil
	default:
		b, a := *before, *after
		if a <= b {
			return 0, ErrInvalidNeighbors
		}
		if a-b < 2 {
			return 0, ErrNeedsRebalance
		}
		return b + (a-b)/2, nil
	}
}

// Rebalance returns evenly spaced replacement keys for a collection of
// len(keys) items, preserving relative order. Only the length of the input
// matters; the slice parameter keeps the call site honest about which
// collection is being rewritten.
func Rebalance(keys []int64) []int64 {
	out := make([]int64, len(keys))
	for i := range out {
		out[i] = int64(i+1) * Spacing
	}
	return out
}
