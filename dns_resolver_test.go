package ddns_test

import (
	"context"
	"net"
	"net/netip"
	"testing"

	ddns "github.com/Travis-Britz/nfsn-ddns"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDNSServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go srv.ActivateAndServe()
	<-started
	t.Cleanup(func() { srv.Shutdown() })
	return pc.LocalAddr().String()
}

func TestDNSResolver(t *testing.T) {
	addr := startDNSServer(t, func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)
		if req.Question[0].Name == "myip.opendns.com." {
			m.Answer = append(m.Answer, &dns.A{
				Hdr: dns.RR_Header{Name: req.Question[0].Name, Rrtype: dns.TypeA, Class: dns.ClassINET},
				A:   net.ParseIP("203.0.113.7"),
			})
		} else {
			m.Rcode = dns.RcodeNameError
		}
		w.WriteMsg(m)
	})

	res, err := ddns.DNSResolver(addr, ddns.OpenDNSMyIP).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("203.0.113.7"), res)

	_, err = ddns.DNSResolver(addr, "example.invalid").Resolve(context.Background())
	assert.ErrorContains(t, err, "NXDOMAIN")
}

func TestDNSResolverEmptyAnswer(t *testing.T) {
	addr := startDNSServer(t, func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)
		w.WriteMsg(m)
	})

	_, err := ddns.DNSResolver(addr, ddns.OpenDNSMyIP).Resolve(context.Background())
	assert.Error(t, err)
}

func TestFromString(t *testing.T) {
	r, err := ddns.FromString("203.0.113.7")
	require.NoError(t, err)
	addr, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("203.0.113.7"), addr)

	_, err = ddns.FromString("203.0.113")
	assert.Error(t, err)
}

func TestInterfaceResolverUnknownInterface(t *testing.T) {
	_, err := ddns.InterfaceResolver("no-such-interface0").Resolve(context.Background())
	assert.Error(t, err)
}
