package dns

import "github.com/Skazzi00/dns-server/internal/helpers"

// Limits for incoming DNS messages.
const (
	// MaxMessageSize is the classic 512-byte UDP message limit
	// (RFC 1035 Section 2.3.4). The server's receive path enforces it
	// before decoding so a transport-truncated datagram is rejected
	// instead of misparsed.
	MaxMessageSize = 512

	// MaxQuestions caps the question-slice preallocation so a forged
	// QDCount cannot force a large allocation from a tiny packet.
	MaxQuestions = 16
)

// Message represents a DNS message: header, question section, answer
// section (RFC 1035 Section 4.1).
//
// The serve path decodes requests with ParseMessage, which stops after
// the question section; clients decode responses with ParseResponse,
// which also reads the answer section. Authority and additional sections
// are never read on either path and never written.
type Message struct {
	Header    Header
	Questions []Question
	Answers   []Answer
}

// parseThroughQuestions reads the header and exactly QDCount questions,
// leaving r positioned at the start of the answer section.
func parseThroughQuestions(r *Reader) (Message, error) {
	h, err := parseHeader(r)
	if err != nil {
		return Message{}, err
	}
	m := Message{Header: h}
	m.Questions = make([]Question, 0, min(int(h.QDCount), MaxQuestions))
	for range h.QDCount {
		q, err := parseQuestion(r)
		if err != nil {
			return Message{}, err
		}
		m.Questions = append(m.Questions, q)
	}
	return m, nil
}

// ParseMessage decodes a request from msg: the header, then exactly
// header.QDCount questions. The answer section is never read; a request
// carrying one is ignored, not rejected.
func ParseMessage(msg []byte) (Message, error) {
	return parseThroughQuestions(NewReader(msg))
}

// ParseResponse decodes a response from msg: the header, header.QDCount
// questions, then header.ANCount answers. This is the client-side
// counterpart to ParseMessage; the serve path never calls it.
func ParseResponse(msg []byte) (Message, error) {
	r := NewReader(msg)
	m, err := parseThroughQuestions(r)
	if err != nil {
		return Message{}, err
	}
	m.Answers = make([]Answer, 0, min(int(m.Header.ANCount), MaxQuestions))
	for range m.Header.ANCount {
		a, err := parseAnswer(r)
		if err != nil {
			return Message{}, err
		}
		m.Answers = append(m.Answers, a)
	}
	return m, nil
}

// Marshal serializes the message: header, questions, answers.
//
// The question and answer counts are recomputed from the actual section
// lengths; authority and additional counts are forced to zero since those
// sections are never emitted.
func (m Message) Marshal() []byte {
	h := m.Header
	h.QDCount = helpers.ClampIntToUint16(len(m.Questions))
	h.ANCount = helpers.ClampIntToUint16(len(m.Answers))
	h.NSCount = 0
	h.ARCount = 0

	w := NewWriter()
	h.marshal(w)
	for _, q := range m.Questions {
		q.marshal(w)
	}
	for _, a := range m.Answers {
		a.marshal(w)
	}
	return w.Bytes()
}
