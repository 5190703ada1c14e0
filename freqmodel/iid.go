package freqmodel

// IIDModel is an order-0 frequency model seeded from caller-supplied initial
// counts (an empirical snapshot), rather than the all-ones bootstrap
// AdaptiveOrderKModel uses. It remains self-adaptive: Update still
// increments counts and rescales, exactly like the order-K model's single
// context when K=0.
type IIDModel struct {
	alphabet []int
	index    map[int]int
	counts   []uint32
}

// NewIIDModel returns a model over alphabet seeded with initialCounts
// (index-aligned with alphabet). Every count must be >= 1; zero-frequency
// symbols are padded up to 1 so that no symbol is ever assigned zero
// probability.
func NewIIDModel(alphabet []int, initialCounts []uint32) *IIDModel {
	counts := make([]uint32, len(initialCounts))
	copy(counts, initialCounts)
	for i, c := range counts {
		if c < 1 {
			counts[i] = 1
		}
	}
	return &IIDModel{alphabet: alphabet, index: alphabetIndex(alphabet), counts: counts}
}

func (m *IIDModel) Alphabet() []int {
	return m.alphabet
}

func (m *IIDModel) CumulativeRange(sym int) (lo, hi, total uint32, err error) {
	symbolIndex, ok := m.index[sym]
	if !ok {
		return 0, 0, 0, exhaustionErrorf("symbol %d not in alphabet", sym)
	}
	for i := 0; i < symbolIndex; i++ {
		lo += m.counts[i]
	}
	hi = lo + m.counts[symbolIndex]
	total = sum(m.counts)
	return lo, hi, total, nil
}

func (m *IIDModel) Find(target uint32) (sym int, lo, hi, total uint32, err error) {
	total = sum(m.counts)
	if target >= total {
		return 0, 0, 0, 0, exhaustionErrorf("target %d out of bounds for total %d", target, total)
	}
	var cum uint32
	for i, c := range m.counts {
		if target < cum+c {
			return m.alphabet[i], cum, cum + c, total, nil
		}
		cum += c
	}
	return 0, 0, 0, 0, exhaustionErrorf("target %d not found", target)
}

func (m *IIDModel) Total() uint32 {
	return sum(m.counts)
}

func (m *IIDModel) Update(sym int) {
	symbolIndex, ok := m.index[sym]
	if !ok {
		return
	}
	m.counts[symbolIndex]++
	if sum(m.counts) > MaxTotal {
		rescale(m.counts)
	}
}
