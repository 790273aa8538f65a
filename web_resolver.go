package ddns

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// DefaultCheckIPURL serves an HTML page stating the address of the client.
const DefaultCheckIPURL = "http://checkip.dyndns.org/"

const checkIPMarker = "current ip address:"

// CheckIPResolver constructs a resolver that scrapes the client address from checkip-style pages,
// which contain "Current IP Address: 203.0.113.7" in their body.
// With no arguments DefaultCheckIPURL is used.
//
// Multiple pages are treated the same way as in WebResolver.
func CheckIPResolver(serviceURL ...string) Resolver {
	if len(serviceURL) == 0 {
		serviceURL = []string{DefaultCheckIPURL}
	}
	return &webResolver{serviceURLs: serviceURL, parse: parseCheckIP, logger: discard}
}

// WebResolver constructs a resolver which uses external web services to look up a "public" IP address.
//
// Each serviceURL must speak http and return status "200 OK",
// with a valid IPv4 or IPv6 address as the first line of the response body.
// All other responses are considered an error.
//
// If only one serviceURL is given,
// then the resolver will simply return the response.
// If multiple are given,
// then the resolver will request from up to three of them and only return successfully if two non-error responses agreed on the IP.
// This approach is taken due to the sensitive nature of having control over DNS records.
//
// The recommended approach is to run your own service over https.
func WebResolver(serviceURL ...string) Resolver {
	return &webResolver{serviceURLs: serviceURL, parse: parseFirstLine, logger: discard}
}

type webResolver struct {
	httpClient  *http.Client
	serviceURLs []string
	parse       func(io.Reader) (netip.Addr, error)
	logger      logrus.FieldLogger
}

// Resolve implements ddns.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	// With several services configured, lookups go out to up to three of them concurrently.
	// A result is only returned once two of them agree, which protects against:
	// - a single service being down
	// - wrong results from accidental caching
	// - a single compromised service returning malicious results (assuming all supplied resolvers are https)
	if len(wr.serviceURLs) == 0 {
		return netip.Addr{}, errors.New("no external IP lookup services were provided")
	}
	if len(wr.serviceURLs) == 1 {
		return wr.lookup(ctx, wr.serviceURLs[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		addr netip.Addr
		err  error
	}

	useCount := 3
	if len(wr.serviceURLs) < useCount {
		useCount = len(wr.serviceURLs)
	}
	results := make(chan result, useCount)

	var wg sync.WaitGroup
	wg.Add(useCount)
	for _, u := range wr.serviceURLs[:useCount] {
		u := u
		go func() {
			defer wg.Done()
			r := result{}
			r.addr, r.err = wr.lookup(ctx, u)
			results <- r
		}()
	}
	go func() { wg.Wait(); close(results) }()

	resultCount := 0
	var errs []error
	var ip netip.Addr
	for r := range results {
		if r.err != nil {
			wr.logger.WithError(r.err).Debug("IP lookup failed")
			errs = append(errs, r.err)
			continue
		}
		resultCount++ // don't increase the result count for errors
		if !ip.IsValid() {
			ip = r.addr
			continue
		}
		if ip == r.addr {
			return ip, nil
		}
	}
	if resultCount < 2 {
		return netip.Addr{}, fmt.Errorf("not enough resolvers responded without errors: %w", errors.Join(errs...))
	}

	return netip.Addr{}, errors.New("IP resolvers did not agree on our IP")
}

func (wr *webResolver) lookup(ctx context.Context, url string) (netip.Addr, error) {
	// 15 seconds is an eternity for the size of the request we're making,
	// but this ensures that all calls to resolve will eventually complete even if the user supplied context.TODO or context.Background
	// using http.DefaultClient (with no timeout).
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	httpclient := wr.httpClient
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return netip.Addr{}, fmt.Errorf("http request to %s returned %s", url, resp.Status)
	}

	ip, err := wr.parse(resp.Body)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error parsing IP address from %s: %w", url, err)
	}
	return ip, nil
}

func parseFirstLine(r io.Reader) (netip.Addr, error) {
	ipstring, _ := bufio.NewReader(r).ReadString('\n')
	return netip.ParseAddr(strings.TrimSpace(ipstring))
}

// parseCheckIP finds the address following "Current IP Address:" in the text of the page body.
func parseCheckIP(r io.Reader) (netip.Addr, error) {
	var text strings.Builder
	inBody := false
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return netip.Addr{}, err
			}
			return addrAfterMarker(text.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "body" {
				inBody = true
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "body" {
				return addrAfterMarker(text.String())
			}
		case html.TextToken:
			if inBody {
				text.Write(z.Text())
			}
		}
	}
}

func addrAfterMarker(text string) (netip.Addr, error) {
	i := strings.Index(strings.ToLower(text), checkIPMarker)
	if i < 0 {
		return netip.Addr{}, fmt.Errorf("page does not contain %q", "Current IP Address:")
	}
	fields := strings.Fields(text[i+len(checkIPMarker):])
	if len(fields) == 0 {
		return netip.Addr{}, errors.New("no address after marker")
	}
	return netip.ParseAddr(fields[0])
}
