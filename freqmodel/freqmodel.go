// Package freqmodel implements the adaptive frequency models that drive the
// arithmetic coder: an adaptive order-K conditional model and an IID model
// seeded from an empirical snapshot.
//
// Both satisfy the same Model interface: the arithmetic coder is written
// once against Model and does not know which concrete model it drives.
package freqmodel

import (
	"fmt"

	"github.com/mewkiz/rasterz/rzerr"
)

// MaxTotal bounds the sum of counts in any one context's table, keeping the
// arithmetic coder's range arithmetic comfortably inside 32-bit precision.
const MaxTotal = 1 << 14

// Model is the contract the arithmetic coder drives: given a symbol from
// the model's alphabet and the current context, CumulativeRange returns the
// [lo, hi) sub-range of [0, total) assigned to that symbol, and Update
// records an observation of it.
type Model interface {
	// Alphabet returns the fixed, order-preserved symbol alphabet.
	Alphabet() []int

	// CumulativeRange returns (lo, hi, total) for sym under the model's
	// current context. lo and hi are cumulative counts over the alphabet in
	// order; total is their sum for the active context.
	CumulativeRange(sym int) (lo, hi, total uint32, err error)

	// Find returns the unique symbol whose cumulative range contains target
	// (0 <= target < total for the active context), along with its
	// (lo, hi, total).
	Find(target uint32) (sym int, lo, hi, total uint32, err error)

	// Update records an observation of sym and advances the conditioning
	// context.
	Update(sym int)

	// Total returns the current context's total count, the denominator
	// CumulativeRange's (lo, hi) pairs are drawn against.
	Total() uint32
}

// alphabetIndex builds a symbol -> position lookup for an alphabet.
func alphabetIndex(alphabet []int) map[int]int {
	idx := make(map[int]int, len(alphabet))
	for i, a := range alphabet {
		idx[a] = i
	}
	return idx
}

// rescale halves every count in counts, rounding up, keeping every count at
// least 1. Called whenever a context's total would exceed MaxTotal.
func rescale(counts []uint32) {
	for i, c := range counts {
		counts[i] = (c + 1) / 2
		if counts[i] < 1 {
			counts[i] = 1
		}
	}
}

func sum(counts []uint32) uint32 {
	var total uint32
	for _, c := range counts {
		total += c
	}
	return total
}

func exhaustionErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", rzerr.ErrModelExhaustion, fmt.Sprintf(format, args...))
}
