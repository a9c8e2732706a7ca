// Package bitio provides LSB-first bit packing for palette index
// streams.
//
// Values are packed least-significant-bit first into a little-endian
// byte stream: the first value occupies the low bits of the first byte.
// A stream is padded with zero bits to the next byte boundary when
// finished.
package bitio

import "io"

// Writer packs fixed-width values into a byte stream.
type Writer struct {
	buf []byte
	acc uint64
	n   uint8
}

// NewWriter creates a Writer with a small initial buffer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// WriteBits appends the low bits of v to the stream.
// bits must be at most 32.
func (w *Writer) WriteBits(v uint32, bits uint8) {
	w.acc |= (uint64(v) & ((1 << bits) - 1)) << w.n
	w.n += bits
	for w.n >= 8 {
		w.buf = append(w.buf, byte(w.acc&0xFF))
		w.acc >>= 8
		w.n -= 8
	}
}

// Bytes flushes any partial byte and returns the packed stream.
// The Writer must not be reused after calling Bytes.
func (w *Writer) Bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc&0xFF))
		w.acc = 0
		w.n = 0
	}

	return w.buf
}

// Reader unpacks fixed-width values from a byte stream produced by
// Writer.
type Reader struct {
	data []byte
	acc  uint64
	n    uint8
	pos  int
}

// NewReader creates a Reader over the packed stream.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBits consumes the next value of the given width.
// bits must be at most 32. Running past the end of the stream returns
// io.ErrUnexpectedEOF.
func (r *Reader) ReadBits(bits uint8) (uint32, error) {
	for r.n < bits {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc |= uint64(r.data[r.pos]) << r.n
		r.n += 8
		r.pos++
	}
	mask := uint64(1)<<bits - 1
	v := uint32(r.acc & mask)
	r.acc >>= bits
	r.n -= bits

	return v, nil
}

// BytesRead returns how many bytes of the stream have been consumed,
// counting a partially consumed byte as read.
func (r *Reader) BytesRead() int {
	return r.pos
}
