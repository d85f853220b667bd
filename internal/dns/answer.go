package dns

import "github.com/Skazzi00/dns-server/internal/helpers"

// Answer represents a DNS answer section entry (RFC 1035 Section 4.1.3).
//
// The wire RDLENGTH field is always derived from len(Data) at encode time;
// it is never stored separately, so a stale or miscounted length cannot be
// emitted.
type Answer struct {
	Name  string
	Type  QType
	Class QClass
	TTL   uint32
	Data  []byte
}

// parseAnswer reads an answer in wire order: name, type, class, ttl,
// rdlength, rdata. Type and class codes are validated strictly, matching
// the question path.
func parseAnswer(r *Reader) (Answer, error) {
	name, err := decodeName(r)
	if err != nil {
		return Answer{}, err
	}
	typeCode, err := r.ReadUint16()
	if err != nil {
		return Answer{}, err
	}
	qtype, err := ParseQType(typeCode)
	if err != nil {
		return Answer{}, err
	}
	classCode, err := r.ReadUint16()
	if err != nil {
		return Answer{}, err
	}
	qclass, err := ParseQClass(classCode)
	if err != nil {
		return Answer{}, err
	}
	ttl, err := r.ReadUint32()
	if err != nil {
		return Answer{}, err
	}
	rdlen, err := r.ReadUint16()
	if err != nil {
		return Answer{}, err
	}
	data, err := r.ReadBytes(int(rdlen))
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Name:  name,
		Type:  qtype,
		Class: qclass,
		TTL:   ttl,
		Data:  append([]byte(nil), data...),
	}, nil
}

// marshal writes the answer in wire order:
// name, type, class, ttl, rdlength, rdata.
func (a Answer) marshal(w *Writer) {
	encodeName(w, a.Name)
	w.WriteUint16(uint16(a.Type))
	w.WriteUint16(uint16(a.Class))
	w.WriteUint32(a.TTL)
	w.WriteUint16(helpers.ClampIntToUint16(len(a.Data)))
	w.WriteBytes(a.Data)
}

// Marshal serializes the answer to DNS wire format.
func (a Answer) Marshal() []byte {
	w := NewWriter()
	a.marshal(w)
	return w.Bytes()
}
