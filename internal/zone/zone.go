// Package zone loads the record source file and holds the resulting
// record store.
//
// The record source is plain text, one record per line, four
// whitespace-separated tokens:
//
//	<name> <class> <type> <value>
//
// Lines that do not yield exactly four tokens are silently skipped. A line
// with four tokens but an unrecognized class or type is a load error: the
// file is the server's entire authority, so a typo there should stop
// startup rather than silently shrink the zone.
//
// The store is immutable after load. Every lookup reads the same shared
// slice, so concurrent request handlers need no locking.
package zone

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Skazzi00/dns-server/internal/dns"
)

var (
	// ErrMalformedAddress is returned when an A record's value is not four
	// dot-separated decimal octets.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrRecordSource is returned for record source file failures at load.
	ErrRecordSource = errors.New("record source error")
)

// Record is one configured name->value mapping, immutable after load.
// Payload bytes and their length are derived on demand, never stored.
type Record struct {
	Name  string
	Class dns.QClass
	Type  dns.QType
	Value string
}

// Data derives the answer payload for the record.
//
// For type A the value must be exactly four dot-separated decimal octets
// and the payload is those four bytes. For any other type the payload is
// the domain-name label encoding of the value, so its length is the true
// encoded byte count even for multi-label targets.
func (r Record) Data() ([]byte, error) {
	if r.Type != dns.TypeA {
		return dns.EncodeName(r.Value), nil
	}

	octets := strings.Split(r.Value, ".")
	if len(octets) != 4 {
		return nil, fmt.Errorf("%w: %q is not four octets", ErrMalformedAddress, r.Value)
	}
	data := make([]byte, 4)
	for i, o := range octets {
		v, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: octet %q in %q", ErrMalformedAddress, o, r.Value)
		}
		data[i] = byte(v)
	}
	return data, nil
}

// Store is the loaded, read-only record set.
type Store struct {
	records   []Record
	nameIndex map[string][]int // exact name -> indices into records
}

// LoadFile reads the record source file at path into a Store.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordSource, err)
	}
	defer f.Close()

	records := make([]Record, 0, 16)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) != 4 {
			continue
		}
		rec, err := parseRecord(tokens)
		if err != nil {
			return nil, fmt.Errorf("%w (line %d)", err, lineNo)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordSource, err)
	}

	return NewStore(records), nil
}

// NewStore builds a Store over the given records.
func NewStore(records []Record) *Store {
	s := &Store{
		records:   records,
		nameIndex: make(map[string][]int, len(records)),
	}
	for i, rec := range records {
		s.nameIndex[rec.Name] = append(s.nameIndex[rec.Name], i)
	}
	return s
}

func parseRecord(tokens []string) (Record, error) {
	class, ok := dns.QClassFromString(tokens[1])
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown class %q", ErrRecordSource, tokens[1])
	}
	qtype, ok := dns.QTypeFromString(tokens[2])
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown type %q", ErrRecordSource, tokens[2])
	}
	return Record{Name: tokens[0], Class: class, Type: qtype, Value: tokens[3]}, nil
}

// Lookup returns all records exactly matching name, type, and class.
// Matching is case-sensitive with no wildcard or suffix semantics.
func (s *Store) Lookup(name string, qtype dns.QType, qclass dns.QClass) []Record {
	indices := s.nameIndex[name]
	if len(indices) == 0 {
		return nil
	}
	out := make([]Record, 0, len(indices))
	for _, idx := range indices {
		rec := s.records[idx]
		if rec.Type == qtype && rec.Class == qclass {
			out = append(out, rec)
		}
	}
	return out
}

// Records returns the full record set. Callers must treat it as read-only.
func (s *Store) Records() []Record {
	return s.records
}

// Len reports the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}
