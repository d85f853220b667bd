package dns

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// decodeName reads a domain name as a sequence of length-prefixed labels
// terminated by a zero-length label (RFC 1035 Section 3.1).
//
// Example: [3]www[7]example[3]com[0] decodes to "www.example.com".
//
// Compression pointers (RFC 1035 Section 4.1.4) are not recognized: a
// length byte with the top two bits set is treated as a literal length.
//
// A name must contain at least one label, and every label must be valid
// UTF-8 text; otherwise ErrInvalidLabel is returned.
func decodeName(r *Reader) (string, error) {
	labels := make([]string, 0, 4)
	for {
		length, err := r.ReadUint8()
		if err != nil {
			return "", err
		}
		if length == 0 {
			break
		}
		raw, err := r.ReadBytes(int(length))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: label is not valid text", ErrInvalidLabel)
		}
		labels = append(labels, string(raw))
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("%w: name has no labels", ErrInvalidLabel)
	}
	return strings.Join(labels, "."), nil
}

// encodeName writes name as length-prefixed labels plus the terminating
// zero-length label. The name is split on '.'; no validation is applied on
// the encode path, mirroring the decode-side strictness asymmetry.
func encodeName(w *Writer, name string) {
	for token := range strings.SplitSeq(name, ".") {
		w.WriteUint8(uint8(len(token)))
		w.WriteBytes([]byte(token))
	}
	w.WriteUint8(0)
}

// EncodeName returns the wire encoding of a dot-separated name, including
// the terminating zero-length label.
func EncodeName(name string) []byte {
	w := NewWriter()
	encodeName(w, name)
	return w.Bytes()
}

// DecodeName decodes a wire-encoded name from the start of data. Trailing
// bytes after the terminating zero-length label are ignored.
func DecodeName(data []byte) (string, error) {
	return decodeName(NewReader(data))
}
