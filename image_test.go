package rasterz

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/filter"
	"github.com/mewkiz/rasterz/pipeline"
)

func TestEncodeDecodeImageRoundTripRGB(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	w, h := 6, 5
	img := &Image{Width: uint32(w), Height: uint32(h), Channels: make([][]byte, 3)}
	for c := range img.Channels {
		ch := make([]byte, w*h)
		for i := range ch {
			ch[i] = byte(rng.Intn(256))
		}
		img.Channels[c] = ch
	}

	opts := Options{PrependFilterType: true, Heuristic: filter.HeuristicSum, Backend: pipeline.BackendArithmetic0}
	buf, err := EncodeImage(context.Background(), img, opts)
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	got, err := DecodeImage(context.Background(), bitbuf.NewReader(buf), opts)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("decoded dimensions = %dx%d, want %dx%d", got.Width, got.Height, img.Width, img.Height)
	}
	if len(got.Channels) != 3 {
		t.Fatalf("decoded channel count = %d, want 3", len(got.Channels))
	}
	for c := range img.Channels {
		if !bytes.Equal(got.Channels[c], img.Channels[c]) {
			t.Fatalf("channel %d round trip mismatch", c)
		}
	}
}

func TestEncodeDecodeImageRoundTripRGBA(t *testing.T) {
	w, h := 2, 2
	img := &Image{Width: uint32(w), Height: uint32(h), Channels: [][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}}

	opts := Options{Heuristic: filter.HeuristicDiffSum, Backend: pipeline.BackendFilteredDeflate}
	buf, err := EncodeImage(context.Background(), img, opts)
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	got, err := DecodeImage(context.Background(), bitbuf.NewReader(buf), opts)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if len(got.Channels) != 4 {
		t.Fatalf("decoded channel count = %d, want 4 (RGBA recovered from the header alone)", len(got.Channels))
	}
	for c := range img.Channels {
		if !bytes.Equal(got.Channels[c], img.Channels[c]) {
			t.Fatalf("channel %d round trip mismatch", c)
		}
	}
}

func TestEncodeImageRejectsBadChannelCount(t *testing.T) {
	img := &Image{Width: 2, Height: 2, Channels: [][]byte{{1, 2, 3, 4}, {1, 2, 3, 4}}}
	opts := Options{Backend: pipeline.BackendArithmetic0}
	if _, err := EncodeImage(context.Background(), img, opts); err == nil {
		t.Fatal("expected an error for a 2-channel image")
	}
}

func TestSizedUintRoundTripIncludingZero(t *testing.T) {
	for _, v := range []uint32{0, 1, 2, 255, 65535, 1 << 20} {
		buf := bitbuf.New()
		appendSizedUint(buf, v)
		got, err := readSizedUint(bitbuf.NewReader(buf))
		if err != nil {
			t.Fatalf("v=%d: readSizedUint: %v", v, err)
		}
		if got != v {
			t.Errorf("v=%d: round trip = %d", v, got)
		}
	}
}
