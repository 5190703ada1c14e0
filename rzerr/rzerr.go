// Package rzerr defines the error kinds surfaced by the rasterz codec.
//
// Every error a caller might need to branch on is a sentinel declared here;
// use errors.Is to test for a kind. Offending-value context is attached with
// fmt.Errorf's %w wrapping, following the same "error kind plus offending
// parameter" shape that higher layers (cmd/compare) print as a single
// diagnostic line.
package rzerr

import "errors"

var (
	// ErrInvalidShape signals a block size mismatch against width*height, or
	// a channel count outside {3,4}.
	ErrInvalidShape = errors.New("rasterz: invalid input shape")

	// ErrUnsupportedConfig signals an unknown compressor name, unknown
	// heuristic, or an image mode the collaborator could not convert.
	ErrUnsupportedConfig = errors.New("rasterz: unsupported configuration")

	// ErrModelExhaustion signals a zero-probability symbol was queried from a
	// frequency model. This must not happen given the model's all-ones
	// bootstrap; it is a self-check, not a recoverable condition.
	ErrModelExhaustion = errors.New("rasterz: arithmetic model exhaustion")

	// ErrTruncatedBitstream signals a decoder ran out of input before
	// completing a frame.
	ErrTruncatedBitstream = errors.New("rasterz: truncated bitstream")

	// ErrFramingMismatch signals a length-prefixed segment's declared size
	// did not match the number of bits actually consumed decoding it.
	ErrFramingMismatch = errors.New("rasterz: framing length mismatch")

	// ErrExternalCodec signals a failure from the DEFLATE or Zstd back-end.
	ErrExternalCodec = errors.New("rasterz: external codec failure")
)
