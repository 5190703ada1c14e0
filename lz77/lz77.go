// Package lz77 implements a sliding-window LZ77 match finder and its
// inverse, producing (literal-count, match-length, match-offset) sequence
// tuples plus a concatenated literal buffer.
//
// The match finder uses a hash-chain index over 3-byte hashes, the same
// shape as a pixel-pair hash chain (compare
// deepteams-webp/internal/lossless/hashchain.go's 2-pixel hash), adapted
// from 32-bit ARGB pixel pairs to MinMatch-byte windows over a plain byte
// stream.
package lz77

const (
	// MinMatch is the shortest run length worth encoding as a match.
	MinMatch = 3

	// Window is the maximum backward distance a match may reference.
	Window = 1 << 15

	hashBits    = 15
	hashSize    = 1 << hashBits
	maxChainLen = 128 // bounded search depth per position
)

// Sequence describes a run of literal bytes followed by a back-reference
// into the already-emitted output. A MatchLength of 0 is the sentinel
// end-of-block form: LiteralCount trailing literals with no match
// (MatchOffset is unused in that case).
type Sequence struct {
	LiteralCount int
	MatchLength  int
	MatchOffset  int
}

func hash3(a, b, c byte) uint32 {
	key := uint32(a)<<16 | uint32(b)<<8 | uint32(c)
	return (key * 2654435761) >> (32 - hashBits)
}

// matchLength returns how many bytes starting at a and b agree, up to the
// end of data. a and b may overlap (b-a < matchLength), which is the normal
// case for a run of a repeated byte or short pattern; extending past b is
// valid because data already holds the literal bytes being matched
// against, not a partially-reconstructed output buffer.
func matchLength(data []byte, a, b int) int {
	n := len(data)
	l := 0
	for b+l < n && data[a+l] == data[b+l] {
		l++
	}
	return l
}

// Parse finds a greedy longest-match parse of data and returns the
// sequence tuples plus the concatenated literal buffer.
func Parse(data []byte) ([]Sequence, []byte) {
	n := len(data)
	head := make([]int32, hashSize)
	for i := range head {
		head[i] = -1
	}
	prev := make([]int32, n)

	var sequences []Sequence
	var literals []byte
	litStart := 0

	insert := func(i int) {
		h := hash3(data[i], data[i+1], data[i+2])
		prev[i] = head[h]
		head[h] = int32(i)
	}

	i := 0
	for i < n {
		bestLen, bestOffset := 0, 0
		if i+MinMatch <= n {
			h := hash3(data[i], data[i+1], data[i+2])
			cand := head[h]
			tries := 0
			for cand >= 0 && tries < maxChainLen {
				offset := i - int(cand)
				if offset > Window {
					break
				}
				if l := matchLength(data, int(cand), i); l > bestLen {
					bestLen, bestOffset = l, offset
				}
				cand = prev[cand]
				tries++
			}
		}

		if bestLen >= MinMatch {
			literals = append(literals, data[litStart:i]...)
			sequences = append(sequences, Sequence{
				LiteralCount: i - litStart,
				MatchLength:  bestLen,
				MatchOffset:  bestOffset,
			})
			end := i + bestLen
			for ; i < end; i++ {
				if i+MinMatch <= n {
					insert(i)
				}
			}
			litStart = i
		} else {
			if i+MinMatch <= n {
				insert(i)
			}
			i++
		}
	}

	literals = append(literals, data[litStart:n]...)
	sequences = append(sequences, Sequence{LiteralCount: n - litStart, MatchLength: 0})
	return sequences, literals
}

// ExecuteParse reproduces the original byte stream from a literal buffer
// and sequence list. Match copies proceed byte-by-byte so that overlapping
// references (match_offset < match_length) are reproduced correctly.
func ExecuteParse(literals []byte, sequences []Sequence) []byte {
	var out []byte
	litPos := 0
	for _, seq := range sequences {
		out = append(out, literals[litPos:litPos+seq.LiteralCount]...)
		litPos += seq.LiteralCount
		if seq.MatchLength > 0 {
			start := len(out) - seq.MatchOffset
			for i := 0; i < seq.MatchLength; i++ {
				out = append(out, out[start+i])
			}
		}
	}
	return out
}
