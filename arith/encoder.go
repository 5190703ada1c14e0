package arith

import (
	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/freqmodel"
)

// Encoder range-codes a sequence of symbols against a driving model, writing
// bits into an output bitbuf.Buffer.
type Encoder struct {
	state
	pending int
	model   freqmodel.Model
	out     *bitbuf.Buffer
}

// NewEncoder returns an Encoder that will drive model and append to out.
func NewEncoder(model freqmodel.Model) *Encoder {
	return &Encoder{
		state: newState(),
		model: model,
		out:   bitbuf.New(),
	}
}

// EncodeSymbol narrows the coder's interval to sym's sub-range under the
// model's current context, renormalizes, and updates the model.
func (e *Encoder) EncodeSymbol(sym int) error {
	lo, hi, total, err := e.model.CumulativeRange(sym)
	if err != nil {
		return err
	}

	r := e.high - e.low + 1
	e.high = e.low + (r*uint64(hi))/uint64(total) - 1
	e.low = e.low + (r*uint64(lo))/uint64(total)

	e.renormalize()
	e.model.Update(sym)
	return nil
}

// renormalize emits the bits that have become determined and rescales low
// and high back up to full precision.
func (e *Encoder) renormalize() {
	for {
		switch {
		case (e.low^e.high)&top == 0:
			bit := (e.low >> (precision - 1)) & 1
			e.emitBit(int(bit))
			for ; e.pending > 0; e.pending-- {
				e.emitBit(int(1 - bit))
			}
			e.low = (e.low << 1) & mask
			e.high = ((e.high << 1) | 1) & mask
		case e.low&second != 0 && e.high&second == 0:
			e.pending++
			e.low = (e.low << 1) & mask
			e.high = ((e.high << 1) | 1) & mask
			e.low ^= top
			e.high ^= top
		default:
			return
		}
	}
}

func (e *Encoder) emitBit(bit int) {
	e.out.AppendBit(bit)
}

// Finish flushes the final disambiguating bits and returns the completed
// bit buffer. The Encoder must not be reused afterward.
//
// After renormalization low's top bit is always 0 and high's is always 1,
// so the deciding bit is low's second-highest: emitting it plus pending+1
// opposite bits pins the decoder's zero-padded code register to either the
// second quarter (when low < 2^(P-2)) or the exact midpoint, both of which
// lie strictly inside [low, high].
func (e *Encoder) Finish() *bitbuf.Buffer {
	bit := 0
	if e.low&second != 0 {
		bit = 1
	}
	e.emitBit(bit)
	for i := 0; i < e.pending+1; i++ {
		e.emitBit(1 - bit)
	}
	return e.out
}

// EncodeBlock encodes every symbol in syms against model and returns the
// completed, terminated bit buffer. It is a convenience wrapper around
// NewEncoder, EncodeSymbol and Finish for the common one-shot case.
func EncodeBlock(model freqmodel.Model, syms []int) (*bitbuf.Buffer, error) {
	enc := NewEncoder(model)
	for _, s := range syms {
		if err := enc.EncodeSymbol(s); err != nil {
			return nil, err
		}
	}
	return enc.Finish(), nil
}
