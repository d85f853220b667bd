// Package resolvers answers decoded DNS questions from the record store.
package resolvers

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Skazzi00/dns-server/internal/dns"
	"github.com/Skazzi00/dns-server/internal/zone"
)

// AnswerTTL is the fixed TTL applied to every synthesized answer.
const AnswerTTL = 60

// Rand is the randomness source used to pick among duplicate records.
// *math/rand/v2.Rand satisfies it; tests inject a deterministic source.
type Rand interface {
	IntN(n int) int
}

// StoreResolver resolves questions against an immutable record store.
//
// For each question the store is filtered by exact name/type/class
// equality. An empty match set skips the question silently; otherwise one
// record is chosen uniformly at random among the matches, spreading load
// across duplicate entries round-robin style.
type StoreResolver struct {
	Logger *slog.Logger // optional

	store *zone.Store

	mu  sync.Mutex // guards rng; rand.Rand is not safe for concurrent use
	rng Rand
}

// NewStoreResolver creates a resolver over store. If rng is nil a
// time-seeded generator is used; tests pass a seeded source instead.
func NewStoreResolver(store *zone.Store, rng Rand) *StoreResolver {
	if rng == nil {
		now := uint64(time.Now().UnixNano()) //nolint:gosec // seed, not security
		rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return &StoreResolver{store: store, rng: rng}
}

// Resolve builds the response message for a decoded query.
//
// The response echoes the request ID, opcode, and RD flag, carries the
// original questions, and appends one answer per resolvable question. The
// response code is NOERROR only when every question produced an answer;
// otherwise it is NXDOMAIN, a coarse whole-response signal since the wire
// format has no per-question status field.
func (r *StoreResolver) Resolve(req dns.Message) dns.Message {
	answers := make([]dns.Answer, 0, len(req.Questions))
	for _, q := range req.Questions {
		if a, ok := r.answerQuestion(q); ok {
			answers = append(answers, a)
		}
	}

	rcode := dns.RCodeNoError
	if len(answers) != len(req.Questions) {
		rcode = dns.RCodeNXDomain
	}

	return dns.Message{
		Header: dns.Header{
			ID: req.Header.ID,
			Flags: dns.Flags{
				QR:               true,
				Opcode:           req.Header.Flags.Opcode,
				RecursionDesired: req.Header.Flags.RecursionDesired,
				ResponseCode:     rcode,
			},
		},
		Questions: req.Questions,
		Answers:   answers,
	}
}

// answerQuestion resolves a single question. It returns ok=false when the
// question has no match or its record payload cannot be derived; either
// way the question simply goes unanswered.
func (r *StoreResolver) answerQuestion(q dns.Question) (dns.Answer, bool) {
	matches := r.store.Lookup(q.Name, q.Type, q.Class)
	if len(matches) == 0 {
		return dns.Answer{}, false
	}

	rec := matches[r.pick(len(matches))]
	data, err := rec.Data()
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("record payload derivation failed",
				"name", rec.Name,
				"type", rec.Type.String(),
				"value", rec.Value,
				"err", err,
			)
		}
		return dns.Answer{}, false
	}

	return dns.Answer{
		Name:  rec.Name,
		Type:  rec.Type,
		Class: rec.Class,
		TTL:   AnswerTTL,
		Data:  data,
	}, true
}

func (r *StoreResolver) pick(n int) int {
	if n == 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
