package nfsn

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Parameters reads and writes the named properties of one API object,
// e.g. /account/A1B2-C3D4/balance.
// The resource types embed it for their property accessors.
type Parameters struct {
	client *Client
	base   string
}

func newParameters(c *Client, kind, id string) Parameters {
	return Parameters{client: c, base: fmt.Sprintf("/%s/%s", kind, id)}
}

// Path is the object's URL path, without a trailing slash.
func (p Parameters) Path() string { return p.base }

// GetParameter returns the raw value of the named property.
func (p Parameters) GetParameter(ctx context.Context, name string) (string, error) {
	return p.client.Get(ctx, p.base+"/"+name)
}

// SetParameter replaces the named property with value.
func (p Parameters) SetParameter(ctx context.Context, name, value string) error {
	_, err := p.client.Put(ctx, p.base+"/"+name, value)
	return err
}

func (p Parameters) call(ctx context.Context, method string, params Params) (string, error) {
	return p.client.Post(ctx, p.base+"/"+method, params)
}

func (p Parameters) getJSON(ctx context.Context, name string, v any) error {
	data, err := p.GetParameter(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("error decoding %s/%s: %w", p.base, name, err)
	}
	return nil
}

func (p Parameters) getInt(ctx context.Context, name string) (int, error) {
	data, err := p.GetParameter(ctx, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(unquote(data))
	if err != nil {
		return 0, fmt.Errorf("error parsing %s/%s: %w", p.base, name, err)
	}
	return n, nil
}

func (p Parameters) getFloat(ctx context.Context, name string) (float64, error) {
	data, err := p.GetParameter(ctx, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(unquote(data), 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s/%s: %w", p.base, name, err)
	}
	return f, nil
}

// unquote accepts scalar values sent either bare or as a JSON string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
