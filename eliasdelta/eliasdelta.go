// Package eliasdelta implements the Elias-delta universal prefix code for
// positive integers, used for self-delimited transmission of small integer
// sequences such as an alphabet descriptor that must be decodable without
// knowing its element count in advance.
//
// For n >= 1, let k = floor(log2(n))+1 and m = floor(log2(k))+1. The code is
// (m-1) zero bits, then the m-bit binary representation of k, then the low
// k-1 bits of n. Each integer is independently restartable: decoding one
// consumes exactly its own bits and leaves the reader positioned at the
// start of the next.
package eliasdelta

import (
	"github.com/mewkiz/rasterz/bitbuf"
)

// bitLen returns floor(log2(n))+1 for n >= 1, i.e. the number of bits in
// n's binary representation.
func bitLen(n uint64) int {
	k := 0
	for n > 0 {
		k++
		n >>= 1
	}
	return k
}

// Encode appends the Elias-delta code for n (n >= 1) to buf.
func Encode(buf *bitbuf.Buffer, n uint64) {
	k := uint64(bitLen(n))
	m := bitLen(k)

	// (m-1) zero bits.
	for i := 0; i < m-1; i++ {
		buf.AppendBit(0)
	}
	// m-bit binary representation of k.
	buf.AppendUint(k, m)
	// low k-1 bits of n.
	if k > 1 {
		buf.AppendUint(n, int(k-1))
	}
}

// EncodeBlock appends the Elias-delta codes for every value in ns, in
// order, to buf. Every value must be >= 1.
func EncodeBlock(buf *bitbuf.Buffer, ns []uint64) {
	for _, n := range ns {
		Encode(buf, n)
	}
}

// Decode reads one Elias-delta coded integer from r.
func Decode(r *bitbuf.Reader) (uint64, error) {
	m := 1
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		m++
	}

	k, err := r.ReadUint(m - 1)
	if err != nil {
		return 0, err
	}
	k |= 1 << uint(m-1) // restore the leading 1 consumed by the loop above.

	if k == 1 {
		return 1, nil
	}
	low, err := r.ReadUint(int(k - 1))
	if err != nil {
		return 0, err
	}
	return (uint64(1) << (k - 1)) | low, nil
}

// DecodeBlock reads n Elias-delta coded integers from r.
func DecodeBlock(r *bitbuf.Reader, n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		v, err := Decode(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
