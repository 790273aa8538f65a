package nfsn

import (
	"context"
	"fmt"
)

// Email manages the mail forwarding of one domain.
type Email struct {
	Parameters
	domain string
}

func (c *Client) Email(domain string) *Email {
	return &Email{Parameters: newParameters(c, "email", domain), domain: domain}
}

func (e *Email) Domain() string { return e.domain }

// ListForwards maps each forward name (e.g. "cat" for cat@example.com) to its destination.
func (e *Email) ListForwards(ctx context.Context) (map[string]string, error) {
	body, err := e.call(ctx, "listForwards", nil)
	if err != nil {
		return nil, err
	}
	forwards := map[string]string{}
	if err := json.Unmarshal([]byte(body), &forwards); err != nil {
		return nil, fmt.Errorf("error decoding forwards for %s: %w", e.domain, err)
	}
	return forwards, nil
}

// SetForward creates or replaces the forward for name.
func (e *Email) SetForward(ctx context.Context, name, destination string) error {
	_, err := e.call(ctx, "setForward", Params{
		{Name: "forward", Value: name},
		{Name: "dest_email", Value: destination},
	})
	return err
}

func (e *Email) RemoveForward(ctx context.Context, name string) error {
	_, err := e.call(ctx, "removeForward", Params{{Name: "forward", Value: name}})
	return err
}
