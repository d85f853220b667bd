package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/Skazzi00/dns-server/internal/dns"
)

// bufferPool reduces allocations for incoming UDP packets. Buffers hold
// one byte more than the message limit so an oversized datagram is
// detectable instead of silently truncated by the read.
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, dns.MaxMessageSize+1)
		return &buf
	},
}

// UDPServer serves DNS queries over UDP.
//
// Requests are handled concurrently up to MaxConcurrency; the record store
// behind the handler is read-only, and the handler isolates every
// per-request failure, so no further coordination is needed.
type UDPServer struct {
	Logger         *slog.Logger  // optional
	Handler        *QueryHandler // query processor
	MaxConcurrency int           // maximum concurrent request handlers

	conn *net.UDPConn
	wg   sync.WaitGroup // tracks in-flight requests
	sem  chan struct{}  // concurrency semaphore
}

// Run starts the server, listening on the given address, and blocks until
// ctx is cancelled.
func (s *UDPServer) Run(ctx context.Context, addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	return s.RunOnConn(ctx, conn)
}

// RunOnConn runs the server on an existing UDP connection. Useful for
// tests and callers that manage the socket themselves.
func (s *UDPServer) RunOnConn(ctx context.Context, conn *net.UDPConn) error {
	s.conn = conn
	defer conn.Close()

	maxConc := s.MaxConcurrency
	if maxConc <= 0 {
		maxConc = 1
	}
	s.sem = make(chan struct{}, maxConc)

	for ctx.Err() == nil {
		packet, remote, ok := s.receivePacket(ctx, conn)
		if !ok {
			continue
		}

		if len(packet) > dns.MaxMessageSize {
			// The transport truncated anything longer; decoding the
			// fragment would misparse, so drop it outright.
			if s.Logger != nil {
				s.Logger.Debug("dropping oversized datagram",
					"src", remote.String(),
					"bytes", len(packet),
				)
			}
			continue
		}

		if !s.tryAcquireSemaphore() {
			continue // at max concurrency, drop request
		}
		s.wg.Add(1)
		go s.handleRequest(ctx, conn, packet, remote)
	}

	return nil
}

// receivePacket reads a UDP packet using a pooled buffer. The short read
// deadline keeps the loop responsive to context cancellation.
func (s *UDPServer) receivePacket(ctx context.Context, conn *net.UDPConn) ([]byte, *net.UDPAddr, bool) {
	bufPtr := bufferPool.Get().(*[]byte)
	buf := *bufPtr
	defer bufferPool.Put(bufPtr)

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	n, remote, err := conn.ReadFromUDP(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, nil, false
		}
		if ctx.Err() == nil && s.Logger != nil {
			s.Logger.Warn("udp receive failed", "err", err)
		}
		return nil, nil, false
	}
	if remote == nil {
		return nil, nil, false
	}

	// Copy data out of the pooled buffer.
	data := make([]byte, n)
	copy(data, buf[:n])
	return data, remote, true
}

func (s *UDPServer) tryAcquireSemaphore() bool {
	select {
	case s.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// handleRequest processes a single DNS request.
func (s *UDPServer) handleRequest(ctx context.Context, conn *net.UDPConn, payload []byte, peer *net.UDPAddr) {
	defer s.wg.Done()
	defer func() { <-s.sem }()

	if s.Handler == nil {
		return
	}
	res := s.Handler.Handle(ctx, peer.String(), payload)
	if len(res) == 0 {
		return
	}
	if _, err := conn.WriteToUDP(res, peer); err != nil && s.Logger != nil {
		s.Logger.Warn("udp send failed", "dst", peer.String(), "err", err)
	}
}

// Stop shuts the server down, waiting up to timeout for in-flight
// requests to complete.
func (s *UDPServer) Stop(timeout time.Duration) error {
	if s.conn == nil {
		return nil
	}
	_ = s.conn.Close()

	if timeout <= 0 {
		s.wg.Wait()
		return nil
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("udp server: timeout waiting for in-flight requests")
	}
}
