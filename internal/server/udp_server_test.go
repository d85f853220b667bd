package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skazzi00/dns-server/internal/dns"
	"github.com/Skazzi00/dns-server/internal/server"
	"github.com/Skazzi00/dns-server/internal/zone"
)

// startServer runs a UDPServer on an ephemeral loopback port and returns
// its address.
func startServer(t *testing.T, records ...zone.Record) *net.UDPAddr {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	srv := &server.UDPServer{
		Handler:        newHandler(server.NewDNSStats(), records...),
		MaxConcurrency: 4,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.RunOnConn(ctx, conn)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		_ = srv.Stop(2 * time.Second)
		<-done
	})

	return conn.LocalAddr().(*net.UDPAddr)
}

func exchange(t *testing.T, addr *net.UDPAddr, payload []byte) ([]byte, bool) {
	t.Helper()

	client, err := net.DialUDP("udp", nil, addr)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Write(payload)
	require.NoError(t, err)

	buf := make([]byte, dns.MaxMessageSize)
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := client.Read(buf)
	if err != nil {
		return nil, false
	}
	return buf[:n], true
}

func TestServeQuery(t *testing.T) {
	addr := startServer(t,
		zone.Record{Name: "www.example.com", Class: dns.ClassIN, Type: dns.TypeA, Value: "1.2.3.4"},
	)

	out, ok := exchange(t, addr, wireQuery(t,
		dns.Question{Name: "www.example.com", Type: dns.TypeA, Class: dns.ClassIN}))
	require.True(t, ok, "expected a response")

	resp, err := dns.ParseResponse(out)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, uint16(1), resp.Header.ANCount)
	assert.Equal(t, []byte{1, 2, 3, 4}, resp.Answers[0].Data)
	assert.Equal(t, uint32(60), resp.Answers[0].TTL)
	assert.Equal(t, dns.RCodeNoError, resp.Header.Flags.ResponseCode)
}

func TestServeSurvivesGarbage(t *testing.T) {
	addr := startServer(t,
		zone.Record{Name: "x", Class: dns.ClassIN, Type: dns.TypeA, Value: "9.9.9.9"},
	)

	// No response for an undecodable datagram.
	_, ok := exchange(t, addr, []byte{0x01, 0x02, 0x03})
	assert.False(t, ok)

	// The loop keeps serving afterwards.
	out, ok := exchange(t, addr, wireQuery(t,
		dns.Question{Name: "x", Type: dns.TypeA, Class: dns.ClassIN}))
	require.True(t, ok)
	resp, err := dns.ParseResponse(out)
	require.NoError(t, err)
	assert.Len(t, resp.Answers, 1)
}

func TestServeDropsOversizedDatagram(t *testing.T) {
	addr := startServer(t,
		zone.Record{Name: "x", Class: dns.ClassIN, Type: dns.TypeA, Value: "9.9.9.9"},
	)

	big := make([]byte, dns.MaxMessageSize+64)
	_, ok := exchange(t, addr, big)
	assert.False(t, ok, "oversized datagram must be dropped without a response")

	out, ok := exchange(t, addr, wireQuery(t,
		dns.Question{Name: "x", Type: dns.TypeA, Class: dns.ClassIN}))
	require.True(t, ok)
	_, err := dns.ParseResponse(out)
	assert.NoError(t, err)
}

func TestStopIdleServer(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	srv := &server.UDPServer{Handler: newHandler(server.NewDNSStats())}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.RunOnConn(ctx, conn)
		close(done)
	}()

	cancel()
	assert.NoError(t, srv.Stop(2*time.Second))
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("server did not exit after cancellation")
	}
}
