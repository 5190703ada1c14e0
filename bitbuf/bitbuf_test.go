package bitbuf

import "testing"

func TestAppendUintReadUint(t *testing.T) {
	b := New()
	b.AppendUint(0x1A, 8)  // 00011010
	b.AppendUint(0x3, 2)   // 11
	b.AppendUint(1234, 16) // arbitrary width field

	if got, want := b.Len(), 8+2+16; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := b.ReadUint(0, 8), uint64(0x1A); got != want {
		t.Errorf("ReadUint(0,8) = %#x, want %#x", got, want)
	}
	if got, want := b.ReadUint(8, 2), uint64(0x3); got != want {
		t.Errorf("ReadUint(8,2) = %#x, want %#x", got, want)
	}
	if got, want := b.ReadUint(10, 16), uint64(1234); got != want {
		t.Errorf("ReadUint(10,16) = %d, want %d", got, want)
	}
}

func TestAppendBitOrder(t *testing.T) {
	b := New()
	for _, bit := range []int{1, 0, 1, 1} {
		b.AppendBit(bit)
	}
	if got, want := b.ReadUint(0, 4), uint64(0b1011); got != want {
		t.Errorf("ReadUint(0,4) = %#b, want %#b", got, want)
	}
}

func TestAppend(t *testing.T) {
	a := New()
	a.AppendUint(0b101, 3)
	c := New()
	c.AppendUint(0b11, 2)
	a.Append(c)
	if got, want := a.Len(), 5; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := a.ReadUint(0, 5), uint64(0b10111); got != want {
		t.Errorf("ReadUint(0,5) = %#b, want %#b", got, want)
	}
}

func TestBytesPacksMSBFirstWithZeroPad(t *testing.T) {
	b := New()
	b.AppendUint(0b1011, 4)
	got := b.Bytes()
	want := byte(0b10110000)
	if len(got) != 1 || got[0] != want {
		t.Errorf("Bytes() = %08b, want %08b", got, want)
	}
}

func TestReaderSequential(t *testing.T) {
	b := New()
	b.AppendUint(7, 3)
	b.AppendUint(250, 8)

	r := NewReader(b)
	v, err := r.ReadUint(3)
	if err != nil || v != 7 {
		t.Fatalf("ReadUint(3) = %d, %v, want 7, nil", v, err)
	}
	v, err = r.ReadUint(8)
	if err != nil || v != 250 {
		t.Fatalf("ReadUint(8) = %d, %v, want 250, nil", v, err)
	}
	if _, err := r.ReadUint(1); err == nil {
		t.Errorf("ReadUint past end: got nil error, want truncated bitstream error")
	}
}

func TestSlice(t *testing.T) {
	b := New()
	b.AppendUint(0b11010110, 8)
	sub := b.Slice(2, 6)
	if got, want := sub.ReadUint(0, 4), uint64(0b0101); got != want {
		t.Errorf("Slice(2,6).ReadUint(0,4) = %#b, want %#b", got, want)
	}
}
