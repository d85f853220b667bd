package dns

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  QType
	Class QClass
}

// parseQuestion reads a question: name, then 16-bit type and class codes.
// Type and class codes are validated strictly; an unsupported code fails
// the whole decode.
func parseQuestion(r *Reader) (Question, error) {
	name, err := decodeName(r)
	if err != nil {
		return Question{}, err
	}
	typeCode, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	qtype, err := ParseQType(typeCode)
	if err != nil {
		return Question{}, err
	}
	classCode, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	qclass, err := ParseQClass(classCode)
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: qtype, Class: qclass}, nil
}

// marshal writes the question in wire order: name, type, class.
func (q Question) marshal(w *Writer) {
	encodeName(w, q.Name)
	w.WriteUint16(uint16(q.Type))
	w.WriteUint16(uint16(q.Class))
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() []byte {
	w := NewWriter()
	q.marshal(w)
	return w.Bytes()
}
