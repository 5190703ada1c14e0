package freqmodel

import "testing"

func TestAdaptiveOrderKBootstrapAllOnes(t *testing.T) {
	m := NewAdaptiveOrderKModel([]int{0, 1, 2}, 0)
	for _, sym := range m.Alphabet() {
		lo, hi, total, err := m.CumulativeRange(sym)
		if err != nil {
			t.Fatalf("CumulativeRange(%d): %v", sym, err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if hi-lo != 1 {
			t.Errorf("symbol %d: count = %d, want 1", sym, hi-lo)
		}
	}
}

func TestAdaptiveOrderKUpdateIncrementsCount(t *testing.T) {
	m := NewAdaptiveOrderKModel([]int{0, 1}, 0)
	m.Update(0)
	lo, hi, total, err := m.CumulativeRange(0)
	if err != nil {
		t.Fatal(err)
	}
	if hi-lo != 2 {
		t.Errorf("count after one update = %d, want 2", hi-lo)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestAdaptiveOrderKContextSeparation(t *testing.T) {
	// order-1 model: observing symbol 1 in one context must not perturb the
	// distribution in a different context.
	m := NewAdaptiveOrderKModel([]int{0, 1}, 1)
	m.Update(1) // ctx [0] -> observe 1; shifts context to [1]
	// Context [1] has had no observation recorded in it, so its counts
	// should still be bootstrap.
	m.ctx[0] = 1
	_, hi0, total0, _ := m.CumulativeRange(0)
	if hi0 != 1 || total0 != 2 {
		t.Errorf("fresh context perturbed: hi=%d total=%d, want 1,2", hi0, total0)
	}
}

func TestAdaptiveOrderKRescaleKeepsCountsAtLeastOne(t *testing.T) {
	m := NewAdaptiveOrderKModel([]int{0, 1}, 0)
	for i := 0; i < 2*MaxTotal; i++ {
		m.Update(0)
	}
	counts := m.countsFor(m.ctx)
	for i, c := range counts {
		if c < 1 {
			t.Errorf("count[%d] = %d, want >= 1", i, c)
		}
	}
	if sum(counts) > MaxTotal {
		t.Errorf("total %d exceeds MaxTotal %d after rescale", sum(counts), MaxTotal)
	}
}

func TestFindInvertsCumulativeRange(t *testing.T) {
	m := NewAdaptiveOrderKModel([]int{10, 20, 30}, 0)
	m.Update(20)
	m.Update(20)
	for _, sym := range m.Alphabet() {
		lo, hi, total, err := m.CumulativeRange(sym)
		if err != nil {
			t.Fatal(err)
		}
		for target := lo; target < hi; target++ {
			fSym, fLo, fHi, fTotal, err := m.Find(target)
			if err != nil {
				t.Fatal(err)
			}
			if fSym != sym || fLo != lo || fHi != hi || fTotal != total {
				t.Errorf("Find(%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)", target, fSym, fLo, fHi, fTotal, sym, lo, hi, total)
			}
		}
	}
}

func TestIIDModelUsesSuppliedCounts(t *testing.T) {
	m := NewIIDModel([]int{0, 1, 2}, []uint32{5, 1, 10})
	_, hi, total, err := m.CumulativeRange(0)
	if err != nil {
		t.Fatal(err)
	}
	if hi != 5 {
		t.Errorf("count[0] = %d, want 5", hi)
	}
	if total != 16 {
		t.Errorf("total = %d, want 16", total)
	}
}

func TestIIDModelPadsZeroCounts(t *testing.T) {
	m := NewIIDModel([]int{0, 1}, []uint32{0, 4})
	lo, hi, _, err := m.CumulativeRange(0)
	if err != nil {
		t.Fatal(err)
	}
	if hi-lo != 1 {
		t.Errorf("zero count not padded to 1: got %d", hi-lo)
	}
}
