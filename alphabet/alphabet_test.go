package alphabet

import (
	"reflect"
	"testing"

	"github.com/mewkiz/rasterz/bitbuf"
	"github.com/mewkiz/rasterz/rzerr"
)

func TestZigzagRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, -1, 2, -2, 255, -255, 1 << 20, -(1 << 20)} {
		if got := Unzigzag(Zigzag(v)); got != v {
			t.Errorf("Unzigzag(Zigzag(%d)) = %d", v, got)
		}
	}
}

func TestSortedDistinct(t *testing.T) {
	got := SortedDistinct([]int{3, -1, 3, 0, -1, 2})
	want := []int{-1, 0, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedDistinct = %v, want %v", got, want)
	}
}

func TestEncodeDecodeDescriptorRoundTrip(t *testing.T) {
	values := []int{-40, -1, 0, 1, 2, 7, 300}
	buf := bitbuf.New()
	EncodeDescriptor(buf, values)

	r := bitbuf.NewReader(buf)
	got, err := DecodeDescriptor(r, buf.Len())
	if err != nil {
		t.Fatalf("DecodeDescriptor: %v", err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("DecodeDescriptor = %v, want %v", got, values)
	}
	if r.Remaining() != 0 {
		t.Errorf("%d unconsumed bits after decoding the full descriptor", r.Remaining())
	}
}

func TestDecodeDescriptorTruncated(t *testing.T) {
	buf := bitbuf.New()
	EncodeDescriptor(buf, []int{5})
	r := bitbuf.NewReader(buf)
	// Ask for more bits than the buffer actually has.
	_, err := DecodeDescriptor(r, buf.Len()+64)
	if err != rzerr.ErrTruncatedBitstream {
		t.Errorf("DecodeDescriptor past end of buffer = %v, want %v", err, rzerr.ErrTruncatedBitstream)
	}
}
