package pipeline

import (
	"context"
	"fmt"

	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/filter"
	"github.com/mewkiz/rasterz/rzerr"
)

// Config parameterizes a single channel's encode/decode pass.
type Config struct {
	Width, Height     int
	PrependFilterType bool
	Heuristic         filter.Heuristic
	Backend           Backend
}

// EncodeChannel filters data (length Width*Height) scanline by scanline
// and entropy-codes the result with cfg's back-end. Cancellation is
// checked once per scanline, matching the "no suspension points mid-row,
// cancellable between rows" resource model.
func EncodeChannel(ctx context.Context, cfg Config, data []byte) (*bitbuf.Buffer, error) {
	w, h := cfg.Width, cfg.Height
	if len(data) != w*h {
		return nil, fmt.Errorf("%w: channel length %d, want %d*%d", rzerr.ErrInvalidShape, len(data), w, h)
	}

	filterTypes := make([]byte, h)
	residuals := make([]byte, 0, w*h)
	zeros := make([]byte, w)

	for row := 0; row < h; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		curr := data[row*w : (row+1)*w]
		prev := zeros
		if row > 0 {
			prev = data[(row-1)*w : row*w]
		}
		ft, residual := filter.ChooseFilter(curr, prev, cfg.Heuristic)
		filterTypes[row] = byte(ft)
		residuals = append(residuals, residual...)
	}

	if cfg.PrependFilterType {
		ftSegment, err := encodeByteStreamArithmetic(1, filterTypes)
		if err != nil {
			return nil, err
		}
		residSegment, err := encodeByteStream(cfg.Backend, residuals)
		if err != nil {
			return nil, err
		}
		out := bitbuf.New()
		out.Append(ftSegment)
		out.Append(residSegment)
		return out, nil
	}

	flat := make([]byte, 0, h*(w+1))
	for row := 0; row < h; row++ {
		flat = append(flat, filterTypes[row])
		flat = append(flat, residuals[row*w:(row+1)*w]...)
	}
	return encodeByteStream(cfg.Backend, flat)
}

// DecodeChannel reverses EncodeChannel, reconstructing the channel's
// original Width*Height bytes.
func DecodeChannel(ctx context.Context, cfg Config, r *bitbuf.Reader) ([]byte, error) {
	w, h := cfg.Width, cfg.Height

	var filterTypes, residuals []byte
	if cfg.PrependFilterType {
		var err error
		filterTypes, err = decodeByteStreamArithmetic(1, r, h)
		if err != nil {
			return nil, err
		}
		residuals, err = decodeByteStream(cfg.Backend, r, w*h)
		if err != nil {
			return nil, err
		}
		if len(residuals) != w*h {
			return nil, fmt.Errorf("%w: residual stream is %d bytes, want %d", rzerr.ErrFramingMismatch, len(residuals), w*h)
		}
	} else {
		flat, err := decodeByteStream(cfg.Backend, r, h*(w+1))
		if err != nil {
			return nil, err
		}
		if len(flat) != h*(w+1) {
			return nil, fmt.Errorf("%w: flat stream is %d bytes, want %d", rzerr.ErrFramingMismatch, len(flat), h*(w+1))
		}
		filterTypes = make([]byte, h)
		residuals = make([]byte, 0, w*h)
		for row := 0; row < h; row++ {
			start := row * (w + 1)
			filterTypes[row] = flat[start]
			residuals = append(residuals, flat[start+1:start+1+w]...)
		}
	}

	out := make([]byte, w*h)
	zeros := make([]byte, w)
	for row := 0; row < h; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prev := zeros
		if row > 0 {
			prev = out[(row-1)*w : row*w]
		}
		residual := residuals[row*w : (row+1)*w]
		curr := filter.Invert(filter.Type(filterTypes[row]), residual, prev)
		copy(out[row*w:(row+1)*w], curr)
	}
	return out, nil
}
