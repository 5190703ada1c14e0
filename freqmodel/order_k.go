package freqmodel

import (
	"strconv"
	"strings"
)

// AdaptiveOrderKModel is an adaptive conditional frequency estimator: the
// distribution over the next symbol is conditioned on the K most recently
// observed symbols.
//
// Context tables are allocated lazily, keyed by a string encoding of the
// K-tuple, rather than as a dense 256^K array: most contexts in a real
// residual stream are never visited, so dense allocation would waste memory
// for any K >= 2.
type AdaptiveOrderKModel struct {
	alphabet []int
	index    map[int]int
	order    int
	table    map[string][]uint32
	ctx      []int
}

// NewAdaptiveOrderKModel returns a model over alphabet with conditioning
// order K. The initial context is K zeros; every (context, symbol) count
// starts at 1, so every alphabet symbol has nonzero probability from the
// first query.
func NewAdaptiveOrderKModel(alphabet []int, order int) *AdaptiveOrderKModel {
	ctx := make([]int, order)
	return &AdaptiveOrderKModel{
		alphabet: alphabet,
		index:    alphabetIndex(alphabet),
		order:    order,
		table:    make(map[string][]uint32),
		ctx:      ctx,
	}
}

func (m *AdaptiveOrderKModel) Alphabet() []int {
	return m.alphabet
}

func contextKey(ctx []int) string {
	if len(ctx) == 0 {
		return ""
	}
	parts := make([]string, len(ctx))
	for i, c := range ctx {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// countsFor returns the count vector for the current context, allocating an
// all-ones vector on first touch.
func (m *AdaptiveOrderKModel) countsFor(ctx []int) []uint32 {
	key := contextKey(ctx)
	counts, ok := m.table[key]
	if !ok {
		counts = make([]uint32, len(m.alphabet))
		for i := range counts {
			counts[i] = 1
		}
		m.table[key] = counts
	}
	return counts
}

func (m *AdaptiveOrderKModel) CumulativeRange(sym int) (lo, hi, total uint32, err error) {
	symbolIndex, ok := m.index[sym]
	if !ok {
		return 0, 0, 0, exhaustionErrorf("symbol %d not in alphabet", sym)
	}
	counts := m.countsFor(m.ctx)
	for i := 0; i < symbolIndex; i++ {
		lo += counts[i]
	}
	hi = lo + counts[symbolIndex]
	total = sum(counts)
	if counts[symbolIndex] == 0 {
		return 0, 0, 0, exhaustionErrorf("zero-probability symbol %d in context %v", sym, m.ctx)
	}
	return lo, hi, total, nil
}

func (m *AdaptiveOrderKModel) Find(target uint32) (sym int, lo, hi, total uint32, err error) {
	counts := m.countsFor(m.ctx)
	total = sum(counts)
	if target >= total {
		return 0, 0, 0, 0, exhaustionErrorf("target %d out of bounds for total %d", target, total)
	}
	var cum uint32
	for i, c := range counts {
		if target < cum+c {
			return m.alphabet[i], cum, cum + c, total, nil
		}
		cum += c
	}
	return 0, 0, 0, 0, exhaustionErrorf("target %d not found in context %v", target, m.ctx)
}

func (m *AdaptiveOrderKModel) Total() uint32 {
	return sum(m.countsFor(m.ctx))
}

func (m *AdaptiveOrderKModel) Update(sym int) {
	symbolIndex, ok := m.index[sym]
	if !ok {
		return
	}
	counts := m.countsFor(m.ctx)
	counts[symbolIndex]++
	if sum(counts) > MaxTotal {
		rescale(counts)
	}

	if m.order > 0 {
		copy(m.ctx, m.ctx[1:])
		m.ctx[m.order-1] = sym
	}
}
