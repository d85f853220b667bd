package dns

// RCode represents DNS response codes (RFC 1035 Section 4.1.1).
type RCode uint8

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure: internal error
	RCodeNXDomain RCode = 3 // Name error: at least one question went unanswered
)

// Flags is the unpacked 16-bit flags word of the DNS header.
//
// Wire layout, MSB-first across the word:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// The three Z bits are reserved: they are read and discarded on decode and
// always written as zero.
type Flags struct {
	QR                  bool  // true = response, false = query
	Opcode              uint8 // 4 bits, 0 = standard query
	AuthoritativeAnswer bool
	Truncated           bool
	RecursionDesired    bool
	RecursionAvailable  bool
	ResponseCode        RCode // 4 bits
}

// parseFlags reads exactly 16 bits from r.
func parseFlags(r *Reader) (Flags, error) {
	var f Flags
	var err error
	if f.QR, err = r.ReadBit(); err != nil {
		return Flags{}, err
	}
	if f.Opcode, err = r.ReadBits(4); err != nil {
		return Flags{}, err
	}
	if f.AuthoritativeAnswer, err = r.ReadBit(); err != nil {
		return Flags{}, err
	}
	if f.Truncated, err = r.ReadBit(); err != nil {
		return Flags{}, err
	}
	if f.RecursionDesired, err = r.ReadBit(); err != nil {
		return Flags{}, err
	}
	if f.RecursionAvailable, err = r.ReadBit(); err != nil {
		return Flags{}, err
	}
	if _, err = r.ReadBits(3); err != nil { // reserved, discarded
		return Flags{}, err
	}
	rcode, err := r.ReadBits(4)
	if err != nil {
		return Flags{}, err
	}
	f.ResponseCode = RCode(rcode)
	return f, nil
}

// marshal writes exactly 16 bits to w.
func (f Flags) marshal(w *Writer) {
	w.WriteBit(f.QR)
	w.WriteBits(f.Opcode, 4)
	w.WriteBit(f.AuthoritativeAnswer)
	w.WriteBit(f.Truncated)
	w.WriteBit(f.RecursionDesired)
	w.WriteBit(f.RecursionAvailable)
	w.WriteBits(0, 3)
	w.WriteBits(uint8(f.ResponseCode), 4)
}

// Header represents the DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes: the transaction ID, the flags word, and
// four section counts.
type Header struct {
	ID      uint16
	Flags   Flags
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority (nameserver) count
	ARCount uint16 // Additional records count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// parseHeader reads a header from r in fixed field order:
// id, flags, questions, answers, authorities, additional.
func parseHeader(r *Reader) (Header, error) {
	var h Header
	var err error
	if h.ID, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.Flags, err = parseFlags(r); err != nil {
		return Header{}, err
	}
	if h.QDCount, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.ANCount, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.NSCount, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.ARCount, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// marshal writes the header in the same field order parseHeader reads it.
func (h Header) marshal(w *Writer) {
	w.WriteUint16(h.ID)
	h.Flags.marshal(w)
	w.WriteUint16(h.QDCount)
	w.WriteUint16(h.ANCount)
	w.WriteUint16(h.NSCount)
	w.WriteUint16(h.ARCount)
}

// ParseHeader decodes a header from the start of msg.
func ParseHeader(msg []byte) (Header, error) {
	return parseHeader(NewReader(msg))
}

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal() []byte {
	w := NewWriter()
	h.marshal(w)
	return w.Bytes()
}
