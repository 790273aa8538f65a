package ddns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"time"

	"github.com/Travis-Britz/nfsn-ddns/nfsn"
	"github.com/cloudflare/cloudflare-go"
	"github.com/sirupsen/logrus"
)

var DefaultResolver Resolver = CheckIPResolver()

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// New returns a client that keeps the record subdomain pointed at the resolved address.
// A RecordStore must be registered with UsingNFSN, UsingCloudflare or UsingStore.
func New(subdomain string, options ...clientOption) (DDNSClient, error) {
	c := &client{
		Resolver:  DefaultResolver,
		subdomain: subdomain,
		ttl:       DefaultTTL,
		logger:    discard,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %s", i, err)
		}
	}

	if c.RecordStore == nil {
		return nil, fmt.Errorf("ddns.New: no DNS provider was registered and there is no default option - use ddns.UsingNFSN or similar")
	}

	// this lets us propagate the logger to dependencies that use one if WithLogger was called before all of the dependencies were registered
	withLogger(c.logger)(c)
	return c, nil
}

type clientOption func(*client) error

// UsingNFSN manages records in domain's zone through an NFSN API client.
func UsingNFSN(api *nfsn.Client, domain string) clientOption {
	return func(c *client) error {
		if api == nil {
			return fmt.Errorf("ddns.UsingNFSN: api client cannot be nil")
		}
		if domain == "" {
			return fmt.Errorf("ddns.UsingNFSN: domain cannot be empty")
		}
		c.RecordStore = &nfsnStore{dns: api.DNS(domain), logger: discard}
		return nil
	}
}

// UsingCloudflare manages records in the Cloudflare zone named zone.
func UsingCloudflare(token, zone string, opts ...cloudflare.Option) clientOption {
	return func(c *client) (err error) {
		if c.RecordStore, err = newCloudflareStore(token, zone, opts...); err != nil {
			return fmt.Errorf("ddns.UsingCloudflare: error creating cloudflare DNS provider: %w", err)
		}
		return nil
	}
}

// UsingStore registers any RecordStore implementation.
func UsingStore(store RecordStore) clientOption {
	return func(c *client) error {
		c.RecordStore = store
		return nil
	}
}

func UsingResolver(resolver Resolver) clientOption {
	return func(c *client) error {
		if resolver == nil {
			resolver = DefaultResolver
		}
		c.Resolver = resolver
		return nil
	}
}

// WithTTL sets the TTL in seconds of records created by the client.
func WithTTL(ttl int) clientOption {
	return func(c *client) error {
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive; got %d", ttl)
		}
		c.ttl = ttl
		return nil
	}
}

func withLogger(logger logrus.FieldLogger) clientOption {
	return func(c *client) error {
		if logger == nil {
			logger = discard
		}
		type setLogger interface {
			SetLogger(logrus.FieldLogger)
		}

		switch p := c.RecordStore.(type) {
		case *nfsnStore:
			p.logger = logger
		case *cloudflareStore:
			p.logger = logger
		case setLogger:
			p.SetLogger(logger)
		}

		switch r := c.Resolver.(type) {
		case *webResolver:
			r.logger = logger
		case setLogger:
			r.SetLogger(logger)
		}

		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) clientOption {
	return func(c *client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		return nil
	}
}

// UsingHTTPClient sets the client used by web resolvers and the Cloudflare provider.
// The NFSN provider uses the client passed to nfsn.New.
func UsingHTTPClient(httpclient *http.Client) clientOption {
	return func(c *client) error {
		if httpclient == nil {
			httpclient = http.DefaultClient
		}
		type setHTTPClient interface {
			SetHTTPClient(*http.Client)
		}
		switch hc := c.Resolver.(type) {
		case *webResolver:
			hc.httpClient = httpclient
		case setHTTPClient:
			hc.SetHTTPClient(httpclient)
		}
		switch p := c.RecordStore.(type) {
		case *cloudflareStore:
			if err := cloudflare.HTTPClient(httpclient)(p.api); err != nil {
				return err
			}
		case setHTTPClient:
			p.SetHTTPClient(httpclient)
		}
		return nil
	}
}

type DDNSClient interface {
	RunDDNS(ctx context.Context) error
}

type client struct {
	Resolver
	RecordStore
	logger    logrus.FieldLogger
	subdomain string
	ttl       int
}

// RunDDNS resolves the current address and reconciles the record with it.
func (c *client) RunDDNS(ctx context.Context) error {
	addr, err := c.Resolve(ctx)
	if err != nil {
		return &IPResolutionError{Err: err}
	}
	c.logger.WithField("addr", addr).Info("resolved address")

	_, err = c.Update(ctx, addr)
	return err
}

// Update reconciles the record with addr.
func (c *client) Update(ctx context.Context, addr netip.Addr) (Result, error) {
	addr = addr.Unmap()
	want := DesiredState{
		Subdomain: c.subdomain,
		Type:      recordType(addr),
		Value:     addr.String(),
		TTL:       c.ttl,
	}
	res, err := Reconcile(ctx, c.RecordStore, want)
	for _, r := range res.Removed {
		c.logger.WithField("record", r.String()).Info("removed stale record")
	}
	if err != nil {
		return res, fmt.Errorf("error updating %q with %s: %w", c.subdomain, addr, err)
	}
	if res.Created {
		c.logger.WithFields(logrus.Fields{"subdomain": c.subdomain, "addr": addr}).Info("created record")
	} else {
		c.logger.WithFields(logrus.Fields{"subdomain": c.subdomain, "addr": addr}).Info("record is up to date")
	}
	return res, nil
}

// IPResolutionError is returned by RunDDNS when the address lookup fails.
type IPResolutionError struct {
	Err error
}

func (e *IPResolutionError) Error() string {
	return fmt.Sprintf("error getting our IP address: %s", e.Err)
}

func (e *IPResolutionError) Unwrap() error { return e.Err }

// RunDaemon starts ddnsClient as a goroutine.
//
// A nil logger for the DDNSClient supplied by this library indicates that the daemon should send error logs to the logger configured in the client.
// Otherwise the default is to discard log messages.
func RunDaemon(ddnsClient DDNSClient, ctx context.Context, interval time.Duration, logger logrus.FieldLogger) {
	if interval < 1*time.Minute {
		interval = 1 * time.Minute
	}
	if logger == nil {
		if c, ok := ddnsClient.(*client); ok && c.logger != nil {
			logger = c.logger
		} else {
			logger = discard
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := ddnsClient.RunDDNS(ctx)
				if err != nil {
					logger.Errorf("ddns.RunDaemon: %s", err)
				}
			}
		}
	}()
}

func recordType(a netip.Addr) string {
	if a.Is4() {
		return "A"
	}
	return "AAAA"
}
