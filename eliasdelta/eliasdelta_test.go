package eliasdelta

import (
	"reflect"
	"testing"

	"github.com/mewkiz/rasterz/bitbuf"
)

func TestEncodeDecodeSingle(t *testing.T) {
	for _, n := range []uint64{1, 2, 3, 4, 5, 8, 15, 16, 17, 100, 1000, 1 << 20, 1<<32 - 1} {
		buf := bitbuf.New()
		Encode(buf, n)
		got, err := Decode(bitbuf.NewReader(buf))
		if err != nil {
			t.Fatalf("n=%d: Decode: %v", n, err)
		}
		if got != n {
			t.Errorf("n=%d: round trip = %d", n, got)
		}
	}
}

func TestEncodeDecodeBlockIsRestartable(t *testing.T) {
	ns := []uint64{1, 2, 3, 4, 5, 8, 15, 16, 17, 100, 1000}
	buf := bitbuf.New()
	EncodeBlock(buf, ns)

	r := bitbuf.NewReader(buf)
	got, err := DecodeBlock(r, len(ns))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, ns) {
		t.Errorf("DecodeBlock = %v, want %v", got, ns)
	}
	if r.Remaining() != 0 {
		t.Errorf("%d unconsumed bits after decoding the full block", r.Remaining())
	}
}

func TestKnownEncoding(t *testing.T) {
	buf := bitbuf.New()
	Encode(buf, 1)
	if got, want := buf.Len(), 1; got != want {
		t.Errorf("len(encode(1)) = %d, want %d", got, want)
	}
	if buf.ReadUint(0, 1) != 1 {
		t.Errorf("encode(1) = %d, want 1", buf.ReadUint(0, 1))
	}
}
