// Package dns implements the DNS wire-format subset this server speaks:
// the 12-byte header with its packed flags word, length-prefixed domain
// names, and messages carrying question and answer sections.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification
//
// Deliberate limitations: no message compression (pointer labels), no
// EDNS/OPT records, and authority/additional sections are never encoded.
//
// Error Handling:
//
// All decode failures are typed sentinel errors wrapped with context using
// fmt.Errorf("%w: ...", err). A malformed packet can never produce a panic;
// every failure path returns an error the caller can inspect with errors.Is.
package dns

import "errors"

var (
	// ErrUnexpectedEOF is returned when a read would consume past the end
	// of the message buffer.
	ErrUnexpectedEOF = errors.New("unexpected end of buffer")

	// ErrUnknownType is returned when decoding a type code outside the
	// supported set (A, CNAME).
	ErrUnknownType = errors.New("unknown record type")

	// ErrUnknownClass is returned when decoding a class code other than IN.
	ErrUnknownClass = errors.New("unknown record class")

	// ErrInvalidLabel is returned when a domain-name label does not decode
	// to valid text, or when a name contains no labels at all.
	ErrInvalidLabel = errors.New("invalid label encoding")
)
