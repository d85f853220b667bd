package dns

import (
	"encoding/binary"
	"fmt"
)

// Reader is a sequential, forward-only cursor over a message buffer.
//
// It supports byte-aligned reads (u8/u16/u32 in network byte order, fixed
// byte runs) and sub-byte reads (single bits and 1-8 bit groups, taken
// MSB-first within the current byte). The cursor only ever advances; there
// is no seeking.
//
// Byte-aligned reads assume the cursor is on a byte boundary. The only
// sub-byte consumer is the flags word, which always reads a whole 16 bits,
// so the invariant holds by construction.
type Reader struct {
	buf []byte
	pos int   // byte offset of the cursor
	bit uint8 // bit offset within buf[pos], 0 = MSB
}

// NewReader creates a Reader over msg. The Reader does not copy msg.
func NewReader(msg []byte) *Reader {
	return &Reader{buf: msg}
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.pos+1 > len(r.buf) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrUnexpectedEOF, r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a big-endian 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, fmt.Errorf("%w: need 2 bytes at offset %d", ErrUnexpectedEOF, r.pos)
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d", ErrUnexpectedEOF, r.pos)
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrUnexpectedEOF, n, r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBit reads a single bit, MSB-first within the current byte.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= len(r.buf) {
		return false, fmt.Errorf("%w: need 1 bit at offset %d", ErrUnexpectedEOF, r.pos)
	}
	set := r.buf[r.pos]&(0x80>>r.bit) != 0
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.pos++
	}
	return set, nil
}

// ReadBits reads an n-bit group (1 <= n <= 8), MSB-first.
func (r *Reader) ReadBits(n uint8) (uint8, error) {
	var v uint8
	for range n {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// Remaining reports how many whole bytes are left after the cursor.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Writer mirrors Reader for encoding: it appends to a growable buffer.
// Write operations never fail.
type Writer struct {
	buf []byte
	bit uint8 // bit offset within the last byte, 0 = byte-aligned
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends a big-endian 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends a big-endian 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteBytes appends a byte run.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteBit appends a single bit, MSB-first within the current byte.
func (w *Writer) WriteBit(set bool) {
	if w.bit == 0 {
		w.buf = append(w.buf, 0)
	}
	if set {
		w.buf[len(w.buf)-1] |= 0x80 >> w.bit
	}
	w.bit++
	if w.bit == 8 {
		w.bit = 0
	}
}

// WriteBits appends the low n bits of v (1 <= n <= 8), MSB-first.
func (w *Writer) WriteBits(v uint8, n uint8) {
	for i := n; i > 0; i-- {
		w.WriteBit(v&(1<<(i-1)) != 0)
	}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}
