// Command dnsbench load-tests a dnsd instance over UDP and reports
// throughput and latency percentiles.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Skazzi00/dns-server/internal/dns"
)

func main() {
	var (
		server      = flag.String("server", "127.0.0.1:5353", "DNS server HOST:PORT")
		name        = flag.String("name", "www.example.com", "Query name")
		qtype       = flag.String("type", "A", "Query type (A or CNAME)")
		concurrency = flag.Int("concurrency", 200, "Number of concurrent workers")
		requests    = flag.Int("requests", 20000, "Total number of requests")
		timeout     = flag.Duration("timeout", 2*time.Second, "Per-request timeout")
	)
	flag.Parse()

	t, ok := dns.QTypeFromString(strings.ToUpper(*qtype))
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported query type %q\n", *qtype)
		os.Exit(2)
	}

	addr, err := net.ResolveUDPAddr("udp", *server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve %s: %v\n", *server, err)
		os.Exit(1)
	}

	req := dns.Message{
		Header:    dns.Header{ID: 0xBEEF, Flags: dns.Flags{RecursionDesired: true}},
		Questions: []dns.Question{{Name: *name, Type: t, Class: dns.ClassIN}},
	}
	reqBytes := req.Marshal()

	conc := max(*concurrency, 1)
	total := max(*requests, 1)
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex

	t0 := time.Now()
	var wg sync.WaitGroup
	for i := range conc {
		n := per
		if i < rem {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			conn, err := net.DialUDP("udp", nil, addr)
			if err != nil {
				return
			}
			defer conn.Close()
			buf := make([]byte, dns.MaxMessageSize)
			for range num {
				start := time.Now()
				_ = conn.SetDeadline(time.Now().Add(*timeout))
				if _, err := conn.Write(reqBytes); err != nil {
					continue
				}
				nn, err := conn.Read(buf)
				if err != nil {
					continue
				}
				if _, err := dns.ParseMessage(buf[:nn]); err != nil {
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(n)
	}
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	if len(lat) == 0 {
		fmt.Println("no successful requests")
		os.Exit(1)
	}
	sort.Float64s(lat)
	qps := float64(len(lat)) / elapsed

	fmt.Printf("server=%s name=%q type=%s concurrency=%d requests=%d\n",
		*server, *name, t, conc, len(lat))
	fmt.Printf("elapsed_s=%.3f qps=%.1f\n", elapsed, qps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n",
		percentile(lat, 50), percentile(lat, 95), percentile(lat, 99),
		lat[0], lat[len(lat)-1])
}

func percentile(sorted []float64, p int) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[min(idx, len(sorted)-1)]
}
