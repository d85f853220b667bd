// Command dnsq is a small debugging client for the dnsd server. It sends a
// single UDP query and prints the decoded response.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"strings"
	"time"

	"github.com/Skazzi00/dns-server/internal/dns"
)

func main() {
	var (
		server  = flag.String("server", "127.0.0.1:5353", "DNS server HOST:PORT")
		name    = flag.String("name", "example.com", "Query name")
		qtype   = flag.String("type", "A", "Query type (A or CNAME)")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
		quiet   = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	t, ok := dns.QTypeFromString(strings.ToUpper(*qtype))
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported query type %q\n", *qtype)
		os.Exit(2)
	}

	resp, err := queryUDP(*server, *name, t, *timeout)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsq error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	msg, err := dns.ParseResponse(resp)
	if err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		os.Exit(1)
	}

	fmt.Printf("id=%d rcode=%d questions=%d answers=%d\n",
		msg.Header.ID,
		msg.Header.Flags.ResponseCode,
		len(msg.Questions),
		len(msg.Answers),
	)
	for _, a := range msg.Answers {
		fmt.Println(formatAnswer(a))
	}
}

func queryUDP(server, name string, qtype dns.QType, timeout time.Duration) ([]byte, error) {
	conn, err := net.Dial("udp", server)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := dns.Message{
		Header: dns.Header{
			ID:    uint16(rand.Uint32()),
			Flags: dns.Flags{RecursionDesired: true},
		},
		Questions: []dns.Question{
			{Name: strings.TrimSuffix(name, "."), Type: qtype, Class: dns.ClassIN},
		},
	}

	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := conn.Write(req.Marshal()); err != nil {
		return nil, err
	}
	buf := make([]byte, dns.MaxMessageSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func formatAnswer(a dns.Answer) string {
	switch a.Type {
	case dns.TypeA:
		if len(a.Data) == 4 {
			return fmt.Sprintf("%s %d %s %s %d.%d.%d.%d",
				a.Name, a.TTL, a.Class, a.Type, a.Data[0], a.Data[1], a.Data[2], a.Data[3])
		}
	case dns.TypeCNAME:
		if target, err := dns.DecodeName(a.Data); err == nil {
			return fmt.Sprintf("%s %d %s %s %s", a.Name, a.TTL, a.Class, a.Type, target)
		}
	}
	return fmt.Sprintf("%s %d %s %s (%d bytes)", a.Name, a.TTL, a.Class, a.Type, len(a.Data))
}
