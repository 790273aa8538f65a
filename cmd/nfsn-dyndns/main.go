// Command nfsn-dyndns points an A or AAAA record in an NFSN-hosted zone at
// the current public address of this machine.
//
//	nfsn-dyndns [flags] username apiKey hostname subdomain [ipAddress]
//
// The apiKey argument may be the key itself, @path to read it from a file
// with mode 0600 or 0400, or - to prompt for it on the terminal.
//
// The API certificate is pinned on first use. The first certificate seen is
// trusted even if its chain does not verify, and any later certificate that
// differs is rejected. Delete the pin file to learn a new certificate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ddns "github.com/Travis-Britz/nfsn-ddns"
	"github.com/Travis-Britz/nfsn-ddns/nfsn"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

const (
	exitOK      = 0
	exitFailure = -1
	exitUsage   = -2
)

const usageLine = "Usage: nfsn-dyndns [flags] <username> <api key> <hostname> <subdomain> [<IP address>]"

// config is read from NFSN_DYNDNS_* environment variables and overridden by flags.
type config struct {
	BaseURL    string        `envconfig:"BASE_URL"`
	PinFile    string        `envconfig:"PIN_FILE"`
	TTL        int           `envconfig:"TTL" default:"3600"`
	CheckIPURL string        `envconfig:"CHECKIP_URL"`
	DNSServer  string        `envconfig:"DNS_SERVER"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Verbose    bool          `envconfig:"VERBOSE"`
	Interval   time.Duration `envconfig:"INTERVAL"`
	Resolver   string        `envconfig:"RESOLVER" default:"checkip"`
}

// transport replaces the pinned API transport when set.
var transport http.RoundTripper

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nfsn-dyndns", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintln(stdout, usageLine)
		fs.PrintDefaults()
	}

	var (
		envFile  = fs.String("env", "", "Load environment variables from a dotenv `file`")
		verbose  = fs.Bool("v", false, "Enable verbose logging")
		pinFile  = fs.String("pin", "", "Path of the pinned certificate fingerprint `file` (default: user config dir)")
		ttl      = fs.Int("ttl", ddns.DefaultTTL, "TTL in seconds of the created record")
		interval = fs.Duration("i", 0, "Duration to wait between IP checks; 0 runs once")
		resolver = fs.String("resolver", "checkip", "How to find the address when none is given: checkip, web, dns or iface:<name>")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if fs.NArg() != 4 && fs.NArg() != 5 {
		fmt.Fprintln(stdout, usageLine)
		return exitUsage
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			report(stdout, fmt.Errorf("error loading %q: %w", *envFile, err))
			return exitFailure
		}
	}
	var cfg config
	if err := envconfig.Process("NFSN_DYNDNS", &cfg); err != nil {
		report(stdout, fmt.Errorf("error reading environment: %w", err))
		return exitFailure
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = *verbose
		case "pin":
			cfg.PinFile = *pinFile
		case "ttl":
			cfg.TTL = *ttl
		case "i":
			cfg.Interval = *interval
		case "resolver":
			cfg.Resolver = *resolver
		}
	})

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	client, err := setup(cfg, fs.Args(), stdout, logger)
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			fmt.Fprintf(stdout, "%s\n%s\n", argErr, usageLine)
			return exitUsage
		}
		report(stdout, err)
		return exitFailure
	}

	if cfg.Interval <= 0 {
		if err := runOnce(context.Background(), client, cfg.Timeout); err != nil {
			report(stdout, err)
			return exitFailure
		}
		return exitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runOnce(ctx, client, cfg.Timeout); err != nil {
		logger.Errorf("initial update failed: %s", err)
	}
	ddns.RunDaemon(client, ctx, cfg.Interval, logger)
	<-ctx.Done()
	return exitOK
}

func runOnce(ctx context.Context, client ddns.DDNSClient, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return client.RunDDNS(ctx)
}

// setup validates the positional arguments and builds the updater.
func setup(cfg config, args []string, stdout io.Writer, logger *logrus.Logger) (ddns.DDNSClient, error) {
	username, keyArg, hostname, subdomain := args[0], args[1], args[2], args[3]

	if username == "" {
		return nil, &argumentError{"username cannot be empty"}
	}
	if _, ok := dns.IsDomainName(hostname); !ok || !strings.Contains(hostname, ".") {
		return nil, &argumentError{fmt.Sprintf("invalid hostname %q", hostname)}
	}
	if _, ok := dns.IsDomainName(subdomain); !ok {
		return nil, &argumentError{fmt.Sprintf("invalid subdomain %q", subdomain)}
	}

	var res ddns.Resolver
	if len(args) == 5 {
		r, err := ddns.FromString(args[4])
		if err != nil {
			return nil, &argumentError{err.Error()}
		}
		res = r
	} else {
		r, err := newResolver(cfg)
		if err != nil {
			return nil, err
		}
		res = r
	}

	key, err := apiKey(keyArg, stdout)
	if err != nil {
		return nil, fmt.Errorf("error reading API key: %w", err)
	}

	opts := []nfsn.Option{
		nfsn.WithHTTPClient(&http.Client{Timeout: cfg.Timeout, Transport: transport}),
		nfsn.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, nfsn.WithBaseURL(cfg.BaseURL))
	}
	if transport == nil {
		pinFile := cfg.PinFile
		if pinFile == "" {
			if pinFile, err = nfsn.DefaultPinFile(); err != nil {
				return nil, err
			}
		}
		logger.WithField("file", pinFile).Debug("using pinned certificate fingerprint")
		opts = append(opts, nfsn.WithPinner(&nfsn.Pinner{Store: nfsn.FileStore(pinFile), Logger: logger}))
	}

	api, err := nfsn.New(nfsn.Credentials{Login: username, APIKey: key}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating NFSN client: %w", err)
	}

	client, err := ddns.New(subdomain,
		ddns.UsingNFSN(api, hostname),
		ddns.UsingResolver(res),
		ddns.WithTTL(cfg.TTL),
		ddns.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating ddns client: %w", err)
	}
	return client, nil
}

func newResolver(cfg config) (ddns.Resolver, error) {
	switch name := cfg.Resolver; {
	case name == "checkip":
		if cfg.CheckIPURL != "" {
			return ddns.CheckIPResolver(cfg.CheckIPURL), nil
		}
		return ddns.CheckIPResolver(), nil
	case name == "web":
		return ddns.WebResolver(
			"https://checkip.amazonaws.com/",
			"https://icanhazip.com/",
			"https://ipinfo.io/ip",
		), nil
	case name == "dns":
		server := cfg.DNSServer
		if server == "" {
			server = ddns.OpenDNSServer
		}
		return ddns.DNSResolver(server, ddns.OpenDNSMyIP), nil
	case strings.HasPrefix(name, "iface:"):
		return ddns.InterfaceResolver(strings.TrimPrefix(name, "iface:")), nil
	}
	return nil, &argumentError{fmt.Sprintf("unknown resolver %q", cfg.Resolver)}
}

// argumentError reports a malformed invocation. No request has been made when it is returned.
type argumentError struct {
	msg string
}

func (e *argumentError) Error() string { return e.msg }

// report prints err and each error it wraps on its own line.
func report(w io.Writer, err error) {
	label := "error"
	for err != nil {
		fmt.Fprintf(w, "%s: %s\n", label, err)
		label = "cause"
		err = errors.Unwrap(err)
	}
}
