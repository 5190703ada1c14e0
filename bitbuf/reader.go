package bitbuf

import "github.com/mewkiz/rasterz/rzerr"

// Reader is a sequential, error-returning cursor over a Buffer, mirroring
// the icza/bitio.Reader contract the codec's external-codec shims use, but
// operating over an in-memory Buffer rather than an io.Reader.
type Reader struct {
	buf *Buffer
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf *Buffer) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current bit offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.buf.Len() - r.pos
}

// ReadUint reads width bits and advances the cursor, returning
// rzerr.ErrTruncatedBitstream if not enough bits remain.
func (r *Reader) ReadUint(width int) (uint64, error) {
	if r.pos+width > r.buf.Len() {
		return 0, rzerr.ErrTruncatedBitstream
	}
	v := r.buf.ReadUint(r.pos, width)
	r.pos += width
	return v, nil
}

// ReadBit reads a single bit and advances the cursor.
func (r *Reader) ReadBit() (int, error) {
	v, err := r.ReadUint(1)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Seek repositions the cursor to an absolute bit offset.
func (r *Reader) Seek(offset int) {
	r.pos = offset
}

// ReadSub extracts the next width bits as an independent Buffer and
// advances the cursor past them. Used to hand a length-prefixed segment to
// a sub-decoder as its own self-contained buffer.
func (r *Reader) ReadSub(width int) (*Buffer, error) {
	if r.pos+width > r.buf.Len() {
		return nil, rzerr.ErrTruncatedBitstream
	}
	sub := r.buf.Slice(r.pos, r.pos+width)
	r.pos += width
	return sub, nil
}
