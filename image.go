// Package rasterz implements a lossless image compressor combining
// PNG-style scanline prediction with adaptive arithmetic coding —
// optionally LZ77-preprocessed — or external DEFLATE/Zstd back-ends.
//
// An Image is a fixed-size grid of 3 or 4 byte channels (RGB or RGBA).
// EncodeImage predicts each channel scanline by scanline with one of the
// five PNG filters, then entropy-codes the result with a caller-chosen
// back-end (see package pipeline); DecodeImage reverses this exactly.
package rasterz

import (
	"context"
	"fmt"

	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/filter"
	"github.com/mewkiz/rasterz/pipeline"
	"github.com/mewkiz/rasterz/rzerr"
)

// Image is the in-memory representation EncodeImage/DecodeImage operate
// on: a fixed width and height, and 3 (RGB) or 4 (RGBA) channels, each
// Width*Height bytes.
type Image struct {
	Width, Height uint32
	Channels      [][]byte
}

// Options parameterizes a whole-image encode or decode: which prediction
// heuristic to use, whether to separate the filter-type stream from the
// residual stream, and which entropy back-end drives both.
type Options struct {
	PrependFilterType bool
	Heuristic         filter.Heuristic
	Backend           pipeline.Backend
}

func bitLen32(v uint32) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// appendSizedUint writes value as [32-bit bit-width][that many value
// bits], the variable-width field convention the header uses for width
// and height so small images don't pay for a fixed 32-bit value field.
func appendSizedUint(buf *bitbuf.Buffer, value uint32) {
	width := bitLen32(value)
	buf.AppendUint(uint64(width), 32)
	buf.AppendUint(uint64(value), width)
}

func readSizedUint(r *bitbuf.Reader) (uint32, error) {
	width, err := r.ReadUint(32)
	if err != nil {
		return 0, err
	}
	v, err := r.ReadUint(int(width))
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// EncodeImage validates img's shape, writes the self-describing header
// (width, height, channel count), then encodes each channel in order.
//
// The header's 3-bit channel-count field (channel count minus 3) lets a
// decoder recover the RGB-vs-RGBA distinction from the bitstream alone,
// rather than from an out-of-band hint.
func EncodeImage(ctx context.Context, img *Image, opts Options) (*bitbuf.Buffer, error) {
	nch := len(img.Channels)
	if nch != 3 && nch != 4 {
		return nil, fmt.Errorf("%w: %d channels, want 3 or 4", rzerr.ErrInvalidShape, nch)
	}
	want := int(img.Width) * int(img.Height)
	for i, ch := range img.Channels {
		if len(ch) != want {
			return nil, fmt.Errorf("%w: channel %d has %d bytes, want %d", rzerr.ErrInvalidShape, i, len(ch), want)
		}
	}

	out := bitbuf.New()
	appendSizedUint(out, img.Width)
	appendSizedUint(out, img.Height)
	out.AppendUint(uint64(nch-3), 3)

	cfg := pipeline.Config{
		Width:             int(img.Width),
		Height:            int(img.Height),
		PrependFilterType: opts.PrependFilterType,
		Heuristic:         opts.Heuristic,
		Backend:           opts.Backend,
	}
	for _, ch := range img.Channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		encoded, err := pipeline.EncodeChannel(ctx, cfg, ch)
		if err != nil {
			return nil, err
		}
		out.Append(encoded)
	}
	return out, nil
}

// DecodeImage reverses EncodeImage.
func DecodeImage(ctx context.Context, r *bitbuf.Reader, opts Options) (*Image, error) {
	width, err := readSizedUint(r)
	if err != nil {
		return nil, err
	}
	height, err := readSizedUint(r)
	if err != nil {
		return nil, err
	}
	nchField, err := r.ReadUint(3)
	if err != nil {
		return nil, err
	}
	nch := int(nchField) + 3

	cfg := pipeline.Config{
		Width:             int(width),
		Height:            int(height),
		PrependFilterType: opts.PrependFilterType,
		Heuristic:         opts.Heuristic,
		Backend:           opts.Backend,
	}

	channels := make([][]byte, nch)
	for i := 0; i < nch; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ch, err := pipeline.DecodeChannel(ctx, cfg, r)
		if err != nil {
			return nil, err
		}
		channels[i] = ch
	}

	return &Image{Width: width, Height: height, Channels: channels}, nil
}
