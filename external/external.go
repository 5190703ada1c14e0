// Package external wraps general-purpose byte compressors (DEFLATE, Zstd)
// behind the same encode_bytes/decode_bytes contract the codec's own
// entropy back-ends satisfy, so a pipeline driver can plug one in without
// caring whether the bits downstream came from an adaptive model or an
// external library.
//
// Packing the opaque compressed byte output goes through an
// icza/bitio.Writer into an intermediate byte buffer, whose bytes are then
// appended to the bitbuf.Buffer eight bits at a time, MSB-first.
package external

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/icza/bitio"
	"github.com/klauspost/compress/zstd"
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/rzerr"
)

// lengthPrefix is the width, in bits, of the frame's byte-count header.
const lengthPrefix = 32

// packBytes frames data as [32-bit byte length][data bits], writing data
// through an icza/bitio.Writer into an intermediate buffer before folding
// it into the bitbuf.Buffer representation the rest of the codec shares.
func packBytes(data []byte) (*bitbuf.Buffer, error) {
	var raw bytes.Buffer
	bw := bitio.NewWriter(&raw)
	if _, err := bw.Write(data); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.Close(); err != nil {
		return nil, errutil.Err(err)
	}

	frame := bitbuf.New()
	frame.AppendUint(uint64(len(data)), lengthPrefix)
	for _, b := range raw.Bytes() {
		frame.AppendUint(uint64(b), 8)
	}
	return frame, nil
}

// unpackBytes reverses packBytes, reading the declared byte count back
// through an icza/bitio.Reader.
func unpackBytes(r *bitbuf.Reader) ([]byte, error) {
	n, err := r.ReadUint(lengthPrefix)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, n)
	for i := range raw {
		b, err := r.ReadUint(8)
		if err != nil {
			return nil, err
		}
		raw[i] = byte(b)
	}

	br := bitio.NewReader(bytes.NewReader(raw))
	out := make([]byte, n)
	if _, err := io.ReadFull(br, out); err != nil && n > 0 {
		return nil, errutil.Err(err)
	}
	return out, nil
}

// EncodeDeflate compresses data with stdlib DEFLATE at the default level
// and frames the result for embedding in a larger bitstream.
func EncodeDeflate(data []byte) (*bitbuf.Buffer, error) {
	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return nil, wrapExternal(err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, wrapExternal(err)
	}
	if err := w.Close(); err != nil {
		return nil, wrapExternal(err)
	}
	return packBytes(compressed.Bytes())
}

// DecodeDeflate reverses EncodeDeflate.
func DecodeDeflate(r *bitbuf.Reader) ([]byte, error) {
	compressed, err := unpackBytes(r)
	if err != nil {
		return nil, err
	}
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, wrapExternal(err)
	}
	return out, nil
}

// EncodeZstd compresses data with klauspost/compress/zstd at the default
// level and frames the result for embedding in a larger bitstream.
func EncodeZstd(data []byte) (*bitbuf.Buffer, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, wrapExternal(err)
	}
	compressed := w.EncodeAll(data, nil)
	if err := w.Close(); err != nil {
		return nil, wrapExternal(err)
	}
	return packBytes(compressed)
}

// DecodeZstd reverses EncodeZstd.
func DecodeZstd(r *bitbuf.Reader) ([]byte, error) {
	compressed, err := unpackBytes(r)
	if err != nil {
		return nil, err
	}
	d, err := zstd.NewReader(nil)
	if err != nil {
		return nil, wrapExternal(err)
	}
	defer d.Close()
	out, err := d.DecodeAll(compressed, nil)
	if err != nil {
		return nil, wrapExternal(err)
	}
	return out, nil
}

func wrapExternal(err error) error {
	return fmt.Errorf("%w: %v", rzerr.ErrExternalCodec, err)
}
