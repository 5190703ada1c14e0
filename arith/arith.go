// Package arith implements an integer range coder with P-bit precision,
// driven by a freqmodel.Model.
//
// The algorithm is the classic Witten-Neal-Cleary carryless range coder:
// low/high track a shrinking interval in [0, 2^P), renormalizing whenever
// the top bit of low and high agree (E1/E2) or whenever they straddle the
// midpoint closely enough that a pending-bit counter defers the decision
// (E3, the "near-convergence" case).
package arith

const (
	// precision is P, the number of bits in the low/high registers.
	precision = 32
	mask      = (uint64(1) << precision) - 1
	top       = uint64(1) << (precision - 1)
	second    = uint64(1) << (precision - 2)
)

// state holds the registers shared by the encoder and decoder
// renormalization loops.
type state struct {
	low, high uint64
}

func newState() state {
	return state{low: 0, high: mask}
}
