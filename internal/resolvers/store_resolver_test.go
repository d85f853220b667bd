package resolvers_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skazzi00/dns-server/internal/dns"
	"github.com/Skazzi00/dns-server/internal/resolvers"
	"github.com/Skazzi00/dns-server/internal/zone"
)

// firstMatch is a deterministic Rand that always picks index 0.
type firstMatch struct{}

func (firstMatch) IntN(int) int { return 0 }

func query(questions ...dns.Question) dns.Message {
	return dns.Message{
		Header:    dns.Header{ID: 0x1234, Flags: dns.Flags{RecursionDesired: true}},
		Questions: questions,
	}
}

func TestResolveExactMatch(t *testing.T) {
	store := zone.NewStore([]zone.Record{
		{Name: "x", Class: dns.ClassIN, Type: dns.TypeA, Value: "1.2.3.4"},
	})
	r := resolvers.NewStoreResolver(store, firstMatch{})

	resp := r.Resolve(query(dns.Question{Name: "x", Type: dns.TypeA, Class: dns.ClassIN}))

	require.Len(t, resp.Answers, 1)
	a := resp.Answers[0]
	assert.Equal(t, "x", a.Name)
	assert.Equal(t, []byte{1, 2, 3, 4}, a.Data)
	assert.Equal(t, uint32(60), a.TTL)
	assert.Equal(t, dns.RCodeNoError, resp.Header.Flags.ResponseCode)
	assert.True(t, resp.Header.Flags.QR)
	assert.True(t, resp.Header.Flags.RecursionDesired, "RD echoed from request")
	assert.False(t, resp.Header.Flags.AuthoritativeAnswer)
	assert.False(t, resp.Header.Flags.RecursionAvailable)
	assert.Equal(t, uint16(0x1234), resp.Header.ID)
}

func TestResolveNoMatch(t *testing.T) {
	store := zone.NewStore(nil)
	r := resolvers.NewStoreResolver(store, firstMatch{})

	resp := r.Resolve(query(dns.Question{Name: "absent", Type: dns.TypeA, Class: dns.ClassIN}))

	assert.Empty(t, resp.Answers)
	assert.Equal(t, dns.RCodeNXDomain, resp.Header.Flags.ResponseCode)
	assert.Len(t, resp.Questions, 1, "questions echoed even when unanswered")
}

func TestResolveMixedBatch(t *testing.T) {
	store := zone.NewStore([]zone.Record{
		{Name: "hit", Class: dns.ClassIN, Type: dns.TypeA, Value: "9.9.9.9"},
	})
	r := resolvers.NewStoreResolver(store, firstMatch{})

	resp := r.Resolve(query(
		dns.Question{Name: "hit", Type: dns.TypeA, Class: dns.ClassIN},
		dns.Question{Name: "miss", Type: dns.TypeA, Class: dns.ClassIN},
	))

	require.Len(t, resp.Answers, 1)
	assert.Equal(t, dns.RCodeNXDomain, resp.Header.Flags.ResponseCode)

	// The encoded header answer count must reflect the single answer.
	h, err := dns.ParseHeader(resp.Marshal())
	require.NoError(t, err)
	assert.Equal(t, uint16(1), h.ANCount)
	assert.Equal(t, uint16(2), h.QDCount)
}

func TestResolveCNAMEPayload(t *testing.T) {
	store := zone.NewStore([]zone.Record{
		{Name: "alias", Class: dns.ClassIN, Type: dns.TypeCNAME, Value: "a.b.c"},
	})
	r := resolvers.NewStoreResolver(store, firstMatch{})

	resp := r.Resolve(query(dns.Question{Name: "alias", Type: dns.TypeCNAME, Class: dns.ClassIN}))

	require.Len(t, resp.Answers, 1)
	assert.Equal(t, []byte{1, 'a', 1, 'b', 1, 'c', 0}, resp.Answers[0].Data)
}

func TestResolveMalformedAddressSkipsQuestion(t *testing.T) {
	store := zone.NewStore([]zone.Record{
		{Name: "bad", Class: dns.ClassIN, Type: dns.TypeA, Value: "1.2.3.cat"},
	})
	r := resolvers.NewStoreResolver(store, firstMatch{})

	resp := r.Resolve(query(dns.Question{Name: "bad", Type: dns.TypeA, Class: dns.ClassIN}))

	assert.Empty(t, resp.Answers)
	assert.Equal(t, dns.RCodeNXDomain, resp.Header.Flags.ResponseCode)
}

func TestResolveSpreadsLoadAcrossDuplicates(t *testing.T) {
	store := zone.NewStore([]zone.Record{
		{Name: "x", Class: dns.ClassIN, Type: dns.TypeA, Value: "1.1.1.1"},
		{Name: "x", Class: dns.ClassIN, Type: dns.TypeA, Value: "2.2.2.2"},
	})
	r := resolvers.NewStoreResolver(store, rand.New(rand.NewPCG(42, 1)))

	const trials = 2000
	counts := map[byte]int{}
	q := query(dns.Question{Name: "x", Type: dns.TypeA, Class: dns.ClassIN})
	for range trials {
		resp := r.Resolve(q)
		require.Len(t, resp.Answers, 1)
		counts[resp.Answers[0].Data[0]]++
	}

	// Uniform pick: each entry should land near trials/2. A 40/60 split
	// is far outside what a fair coin produces over 2000 trials.
	assert.Greater(t, counts[1], trials*2/5)
	assert.Greater(t, counts[2], trials*2/5)
}
