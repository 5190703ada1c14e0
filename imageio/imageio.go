// Package imageio adapts stdlib image decoding to the channel-major byte
// layout rasterz.Image expects, leaving the codec core itself free of
// file I/O and color-space conversion concerns.
package imageio

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/mewkiz/rasterz"
	"github.com/mewkiz/rasterz/rzerr"
)

// Read decodes any format image.Decode recognizes and converts it into a
// channel-major rasterz.Image: three channels (R, G, B) for an opaque
// source image, four (R, G, B, A) for one carrying a genuine alpha
// channel.
//
// The source is converted to straight (non-premultiplied) NRGBA before
// channel extraction. Reading through color.Color's RGBA() method instead
// would hand back alpha-premultiplied samples, silently corrupting the R,
// G, B bytes of any pixel with partial transparency.
func Read(r io.Reader) (*rasterz.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding source image: %v", rzerr.ErrUnsupportedConfig, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image bounds %v", rzerr.ErrInvalidShape, bounds)
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		converted := image.NewNRGBA(bounds)
		draw.Draw(converted, bounds, src, bounds.Min, draw.Src)
		nrgba = converted
	}

	withAlpha := !nrgba.Opaque()
	nch := 3
	if withAlpha {
		nch = 4
	}

	channels := make([][]byte, nch)
	for c := range channels {
		channels[c] = make([]byte, w*h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := nrgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			px := nrgba.Pix[o : o+4 : o+4]
			i := y*w + x
			channels[0][i] = px[0]
			channels[1][i] = px[1]
			channels[2][i] = px[2]
			if withAlpha {
				channels[3][i] = px[3]
			}
		}
	}

	return &rasterz.Image{Width: uint32(w), Height: uint32(h), Channels: channels}, nil
}

// ReadContext checks ctx once and, if it is not yet cancelled, calls Read.
// Cancellation is not observed while Read is decoding or converting the
// image.
func ReadContext(ctx context.Context, r io.Reader) (*rasterz.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(r)
}
