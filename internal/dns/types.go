package dns

import "fmt"

// QType represents DNS record type codes (RFC 1035 Section 3.2.2).
//
// Decode and encode are deliberately asymmetric: ParseQType rejects any
// code outside the supported set, while encoding passes an arbitrary code
// through unchanged. A QType holding an unsupported code can only be built
// by direct construction, never by decoding.
type QType uint16

const (
	TypeA     QType = 1 // IPv4 address
	TypeCNAME QType = 5 // Canonical name (alias)
)

// ParseQType validates a numeric type code. Codes outside {A, CNAME}
// return ErrUnknownType.
func ParseQType(code uint16) (QType, error) {
	switch QType(code) {
	case TypeA, TypeCNAME:
		return QType(code), nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnknownType, code)
	}
}

// QTypeFromString maps a record-source token to a type.
func QTypeFromString(s string) (QType, bool) {
	switch s {
	case "A":
		return TypeA, true
	case "CNAME":
		return TypeCNAME, true
	default:
		return 0, false
	}
}

func (t QType) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeCNAME:
		return "CNAME"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// QClass represents DNS record class codes (RFC 1035 Section 3.2.4).
// It carries the same decode-strict, encode-total asymmetry as QType.
type QClass uint16

// ClassIN is the Internet class, the only class this server decodes.
const ClassIN QClass = 1

// ParseQClass validates a numeric class code. Anything but IN returns
// ErrUnknownClass.
func ParseQClass(code uint16) (QClass, error) {
	if QClass(code) == ClassIN {
		return ClassIN, nil
	}
	return 0, fmt.Errorf("%w: code %d", ErrUnknownClass, code)
}

// QClassFromString maps a record-source token to a class.
func QClassFromString(s string) (QClass, bool) {
	if s == "IN" {
		return ClassIN, true
	}
	return 0, false
}

func (c QClass) String() string {
	if c == ClassIN {
		return "IN"
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}
