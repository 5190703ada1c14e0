// Package lzarith composes an LZ77 parse with two independent
// arithmetic-coded streams: the sequence-tuple stream (literal counts,
// match lengths, match offsets, flattened into one mixed-sign integer
// stream) and the literal byte stream. Each is framed with an explicit
// bit-length prefix so the two segments, and the sub-fields within the
// first, are independently skippable without having to decode them.
package lzarith

import (
	"github.com/mewkiz/rasterz/alphabet"
	"github.com/mewkiz/rasterz/arith"
	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/eliasdelta"
	"github.com/mewkiz/rasterz/freqmodel"
	"github.com/mewkiz/rasterz/lz77"
	"github.com/mewkiz/rasterz/rzerr"
)

// byteAlphabet is the fixed order-1 alphabet the literal stream is coded
// against, independent of which byte values actually occur.
func byteAlphabet() []int {
	alphabet := make([]int, 256)
	for i := range alphabet {
		alphabet[i] = i
	}
	return alphabet
}

// flatten lays the sequence list out as [MinMatch, literal_counts...,
// (match_length-MinMatch)..., (match_offset-1)...], the single integer
// stream the sequence segment's arithmetic coder drives.
func flatten(sequences []lz77.Sequence) []int {
	n := len(sequences)
	combined := make([]int, 0, 1+3*n)
	combined = append(combined, lz77.MinMatch)
	for _, s := range sequences {
		combined = append(combined, s.LiteralCount)
	}
	for _, s := range sequences {
		combined = append(combined, s.MatchLength-lz77.MinMatch)
	}
	for _, s := range sequences {
		combined = append(combined, s.MatchOffset-1)
	}
	return combined
}

// unflatten reverses flatten given the decoded integer stream of length
// L = 1 + 3N.
func unflatten(combined []int) ([]lz77.Sequence, error) {
	l := len(combined)
	if l < 1 || (l-1)%3 != 0 {
		return nil, rzerr.ErrFramingMismatch
	}
	n := (l - 1) / 3
	literalCounts := combined[1 : 1+n]
	matchLengths := combined[1+n : 1+2*n]
	matchOffsets := combined[1+2*n : 1+3*n]

	sequences := make([]lz77.Sequence, n)
	for i := 0; i < n; i++ {
		sequences[i] = lz77.Sequence{
			LiteralCount: literalCounts[i],
			MatchLength:  matchLengths[i] + lz77.MinMatch,
			MatchOffset:  matchOffsets[i] + 1,
		}
	}
	return sequences, nil
}

// encodeSequenceSegment entropy-codes the flattened sequence stream and
// frames it as [64-bit alphabet-segment length][alphabet segment]
// [32-bit payload length][payload]. The alphabet segment itself opens
// with the Elias-delta coded stream length L, so a decoder can recover N
// before touching the arithmetic-coded payload, followed by the
// Elias-delta coded (zigzag-mapped) sorted distinct alphabet values.
func encodeSequenceSegment(sequences []lz77.Sequence) (*bitbuf.Buffer, error) {
	combined := flatten(sequences)
	alpha := alphabet.SortedDistinct(combined)

	alphaBuf := bitbuf.New()
	eliasdelta.Encode(alphaBuf, uint64(len(combined)))
	alphabet.EncodeDescriptor(alphaBuf, alpha)

	model := freqmodel.NewAdaptiveOrderKModel(alpha, 0)
	payload, err := arith.EncodeBlock(model, combined)
	if err != nil {
		return nil, err
	}

	frame := bitbuf.New()
	frame.AppendUint(uint64(alphaBuf.Len()), 64)
	frame.Append(alphaBuf)
	frame.AppendUint(uint64(payload.Len()), 32)
	frame.Append(payload)
	return frame, nil
}

func decodeSequenceSegment(r *bitbuf.Reader) ([]lz77.Sequence, error) {
	alphaLen, err := r.ReadUint(64)
	if err != nil {
		return nil, err
	}
	alphaStart := r.Pos()

	l, err := eliasdelta.Decode(r)
	if err != nil {
		return nil, err
	}

	alphaEnd := alphaStart + int(alphaLen)
	alpha, err := alphabet.DecodeDescriptor(r, alphaEnd)
	if err != nil {
		return nil, err
	}
	if r.Pos() != alphaEnd {
		return nil, rzerr.ErrFramingMismatch
	}

	payloadLen, err := r.ReadUint(32)
	if err != nil {
		return nil, err
	}
	payloadBuf, err := r.ReadSub(int(payloadLen))
	if err != nil {
		return nil, err
	}

	model := freqmodel.NewAdaptiveOrderKModel(alpha, 0)
	combined, err := arith.DecodeBlock(model, payloadBuf, int(l))
	if err != nil {
		return nil, err
	}
	return unflatten(combined)
}

// encodeLiteralSegment entropy-codes literals with an order-1 adaptive
// model over the fixed [0, 255] alphabet and frames the result as
// [32-bit length][payload]. An empty literal buffer frames as exactly 32
// zero bits with no payload.
func encodeLiteralSegment(literals []byte) (*bitbuf.Buffer, error) {
	frame := bitbuf.New()
	if len(literals) == 0 {
		frame.AppendUint(0, 32)
		return frame, nil
	}

	syms := make([]int, len(literals))
	for i, b := range literals {
		syms[i] = int(b)
	}
	model := freqmodel.NewAdaptiveOrderKModel(byteAlphabet(), 1)
	payload, err := arith.EncodeBlock(model, syms)
	if err != nil {
		return nil, err
	}
	frame.AppendUint(uint64(payload.Len()), 32)
	frame.Append(payload)
	return frame, nil
}

func decodeLiteralSegment(r *bitbuf.Reader, count int) ([]byte, error) {
	payloadLen, err := r.ReadUint(32)
	if err != nil {
		return nil, err
	}
	if payloadLen == 0 {
		if count != 0 {
			return nil, rzerr.ErrFramingMismatch
		}
		return nil, nil
	}
	payloadBuf, err := r.ReadSub(int(payloadLen))
	if err != nil {
		return nil, err
	}
	model := freqmodel.NewAdaptiveOrderKModel(byteAlphabet(), 1)
	syms, err := arith.DecodeBlock(model, payloadBuf, count)
	if err != nil {
		return nil, err
	}
	literals := make([]byte, count)
	for i, s := range syms {
		literals[i] = byte(s)
	}
	return literals, nil
}

// Encode LZ77-parses data and entropy-codes both resulting streams,
// returning the complete framed bit buffer.
func Encode(data []byte) (*bitbuf.Buffer, error) {
	sequences, literals := lz77.Parse(data)

	seqSegment, err := encodeSequenceSegment(sequences)
	if err != nil {
		return nil, err
	}
	litSegment, err := encodeLiteralSegment(literals)
	if err != nil {
		return nil, err
	}

	out := bitbuf.New()
	out.Append(seqSegment)
	out.Append(litSegment)
	return out, nil
}

// Decode reverses Encode, reconstructing the original byte stream.
func Decode(r *bitbuf.Reader) ([]byte, error) {
	sequences, err := decodeSequenceSegment(r)
	if err != nil {
		return nil, err
	}

	var literalCount int
	for _, s := range sequences {
		literalCount += s.LiteralCount
	}

	literals, err := decodeLiteralSegment(r, literalCount)
	if err != nil {
		return nil, err
	}

	return lz77.ExecuteParse(literals, sequences), nil
}
