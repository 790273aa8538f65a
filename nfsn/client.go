package nfsn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the NFSN member API endpoint.
const DefaultBaseURL = "https://api.nearlyfreespeech.net"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Credentials identify the member making requests.
type Credentials struct {
	Login  string
	APIKey string
}

// Client sends signed requests to the API.
// It does not retry; every failure is returned to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *Signer
	logger     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client) error

// New returns a Client for creds.
//
// Without WithHTTPClient or WithPinner the client validates TLS certificates
// through the system trust store only.
func New(creds Credentials, options ...Option) (*Client, error) {
	if creds.Login == "" {
		return nil, fmt.Errorf("nfsn.New: login cannot be empty")
	}
	if creds.APIKey == "" {
		return nil, fmt.Errorf("nfsn.New: api key cannot be empty")
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: cleanhttp.DefaultPooledClient(),
		signer:     NewSigner(creds),
		logger:     discard,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("nfsn.New: option %d returned an error: %s", i, err)
		}
	}
	return c, nil
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("error parsing base URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base URL %q must be absolute", baseURL)
		}
		c.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			httpClient = cleanhttp.DefaultPooledClient()
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithPinner installs p's TLS policy on a dedicated transport.
// It replaces any client set with WithHTTPClient, keeping its timeout.
func WithPinner(p *Pinner) Option {
	return func(c *Client) error {
		if p == nil {
			return fmt.Errorf("pinner cannot be nil")
		}
		transport := cleanhttp.DefaultPooledTransport()
		transport.TLSClientConfig = p.TLSConfig()
		c.httpClient = &http.Client{
			Transport: transport,
			Timeout:   c.httpClient.Timeout,
		}
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		return nil
	}
}

// Get requests path without a body.
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	return c.Send(ctx, http.MethodGet, path, "", "")
}

// Put sends body as text/plain.
func (c *Client) Put(ctx context.Context, path, body string) (string, error) {
	return c.Send(ctx, http.MethodPut, path, body, "text/plain")
}

// Post sends params form-encoded. Empty params send no body.
func (c *Client) Post(ctx context.Context, path string, params Params) (string, error) {
	return c.Send(ctx, http.MethodPost, path, params.Encode(), "application/x-www-form-urlencoded")
}

// Send performs one signed request and returns the response body unparsed.
// An empty body is sent as no body at all, and is signed as the empty string.
func (c *Client) Send(ctx context.Context, method, path, body, contentType string) (string, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return "", &RequestError{Method: method, Path: path, Err: fmt.Errorf("error creating request: %w", err)}
	}
	if body != "" && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token, err := c.signer.Token(path, body)
	if err != nil {
		return "", &RequestError{Method: method, Path: path, Err: err}
	}
	req.Header.Set(AuthHeader, token)

	log := c.logger.WithFields(logrus.Fields{"method": method, "path": path})
	log.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("error reading response body: %w", err)}
	}
	log.WithField("status", resp.StatusCode).Debug("got response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &RequestError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var apiErr struct {
			Error string `json:"error"`
			Debug string `json:"debug"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			e.Message = apiErr.Error
			if apiErr.Debug != "" {
				e.Message += " (" + apiErr.Debug + ")"
			}
		}
		e.Err = fmt.Errorf("http request returned %s", resp.Status)
		return "", e
	}
	return string(data), nil
}

// Param is one name=value pair of a form body.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered form body. Names may repeat.
type Params []Param

func (p *Params) Add(name, value string) {
	*p = append(*p, Param{Name: name, Value: value})
}

// Encode returns the pairs form-urlencoded in order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
