// Package alphabet provides the alphabet-descriptor encoding shared by
// every entropy back-end that derives its symbol alphabet from a single
// data pre-pass rather than assuming a fixed range: the sorted distinct
// values are zigzag-mapped to positive integers and Elias-delta coded, so
// the descriptor is itself self-delimiting inside a bit-length-prefixed
// frame.
package alphabet

import (
	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/eliasdelta"
	"github.com/mewkiz/rasterz/rzerr"
)

// Zigzag maps an arbitrary (possibly negative) int to a positive integer,
// the domain Elias-delta requires.
func Zigzag(v int) uint64 {
	if v >= 0 {
		return uint64(v)*2 + 1
	}
	return uint64(-v) * 2
}

// Unzigzag reverses Zigzag.
func Unzigzag(u uint64) int {
	if u%2 == 1 {
		return int((u - 1) / 2)
	}
	return -int(u / 2)
}

// SortedDistinct returns the distinct values in values, ascending.
func SortedDistinct(values []int) []int {
	seen := make(map[int]bool, len(values))
	var out []int
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// EncodeDescriptor appends the zigzag/Elias-delta coded form of values (an
// ascending, duplicate-free alphabet) to buf. It carries no length prefix
// of its own; callers frame it with an outer bit-length header so
// DecodeDescriptor knows where to stop.
func EncodeDescriptor(buf *bitbuf.Buffer, values []int) {
	for _, v := range values {
		eliasdelta.Encode(buf, Zigzag(v))
	}
}

// DecodeDescriptor decodes values from r until the reader's position
// reaches end (an absolute bit offset), returning an error if decoding
// overshoots it.
func DecodeDescriptor(r *bitbuf.Reader, end int) ([]int, error) {
	var values []int
	for r.Pos() < end {
		v, err := eliasdelta.Decode(r)
		if err != nil {
			return nil, err
		}
		values = append(values, Unzigzag(v))
	}
	if r.Pos() > end {
		return nil, rzerr.ErrFramingMismatch
	}
	return values, nil
}
