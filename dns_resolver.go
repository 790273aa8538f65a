package ddns

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// OpenDNS answers A queries for myip.opendns.com with the address of the client.
const (
	OpenDNSServer = "resolver1.opendns.com:53"
	OpenDNSMyIP   = "myip.opendns.com"
)

// DNSResolver constructs a resolver that asks server for the A record of name,
// for services that answer with the address the query came from.
func DNSResolver(server, name string) Resolver {
	return &dnsResolver{
		server: server,
		name:   dns.Fqdn(name),
		client: &dns.Client{Timeout: 5 * time.Second},
	}
}

type dnsResolver struct {
	server string
	name   string
	client *dns.Client
}

func (r *dnsResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	m := new(dns.Msg)
	m.SetQuestion(r.name, dns.TypeA)
	in, _, err := r.client.ExchangeContext(ctx, m, r.server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error querying %s for %s: %w", r.server, r.name, err)
	}
	if in.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("query for %s returned %s", r.name, dns.RcodeToString[in.Rcode])
	}
	for _, rr := range in.Answer {
		a, ok := rr.(*dns.A)
		if !ok {
			continue
		}
		if addr, ok := netip.AddrFromSlice(a.A); ok {
			return addr.Unmap(), nil
		}
	}
	return netip.Addr{}, fmt.Errorf("no A record in answer for %s", r.name)
}
