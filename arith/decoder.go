package arith

import (
	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/freqmodel"
)

// Decoder is the mirror of Encoder: it consumes bits from a bitbuf.Reader
// and reproduces the symbol sequence an Encoder driven by an identically
// configured model would have produced.
type Decoder struct {
	state
	code  uint64
	model freqmodel.Model
	in    *bitbuf.Reader
}

// NewDecoder returns a Decoder reading from in, driving model. It
// immediately primes the code register with the first P bits of in
// (zero-padded if in is shorter, which only occurs within the final
// symbol's worth of slack the encoder's termination leaves).
func NewDecoder(model freqmodel.Model, in *bitbuf.Reader) *Decoder {
	d := &Decoder{state: newState(), model: model, in: in}
	for i := 0; i < precision; i++ {
		d.code = (d.code << 1) | uint64(d.readBit())
	}
	return d
}

func (d *Decoder) readBit() int {
	bit, err := d.in.ReadBit()
	if err != nil {
		return 0
	}
	return bit
}

// DecodeSymbol decodes the next symbol and advances the model exactly as
// the encoder's EncodeSymbol did.
func (d *Decoder) DecodeSymbol() (int, error) {
	total := d.model.Total()
	r := d.high - d.low + 1
	target := uint32((((d.code - d.low + 1) * uint64(total)) - 1) / r)

	sym, lo, hi, _, err := d.model.Find(target)
	if err != nil {
		return 0, err
	}

	d.high = d.low + (r*uint64(hi))/uint64(total) - 1
	d.low = d.low + (r*uint64(lo))/uint64(total)

	d.renormalize()
	d.model.Update(sym)
	return sym, nil
}

func (d *Decoder) renormalize() {
	for {
		switch {
		case (d.low^d.high)&top == 0:
			d.low = (d.low << 1) & mask
			d.high = ((d.high << 1) | 1) & mask
			d.code = ((d.code << 1) | uint64(d.readBit())) & mask
		case d.low&second != 0 && d.high&second == 0:
			d.low = (d.low << 1) & mask
			d.high = ((d.high << 1) | 1) & mask
			d.low ^= top
			d.high ^= top
			d.code = (((d.code << 1) | uint64(d.readBit())) ^ top) & mask
		default:
			return
		}
	}
}

// DecodeBlock decodes n symbols from buf against model.
func DecodeBlock(model freqmodel.Model, buf *bitbuf.Buffer, n int) ([]int, error) {
	dec := NewDecoder(model, bitbuf.NewReader(buf))
	syms := make([]int, n)
	for i := 0; i < n; i++ {
		s, err := dec.DecodeSymbol()
		if err != nil {
			return nil, err
		}
		syms[i] = s
	}
	return syms, nil
}
