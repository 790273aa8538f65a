package nfsn

import (
	"context"
	"fmt"
	"strconv"
)

// Record is a resource record as the API returns it.
type Record struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
	TTL  int    `json:"-"`
	// Scope is assigned by the server and ignored when adding records.
	Scope string `json:"scope,omitempty"`
}

// UnmarshalJSON accepts ttl as either a string or a number;
// the API sends a string.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var v struct {
		plain
		TTL any `json:"ttl"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Record(v.plain)
	switch ttl := v.TTL.(type) {
	case nil:
	case float64:
		r.TTL = int(ttl)
	case string:
		n, err := strconv.Atoi(ttl)
		if err != nil {
			return fmt.Errorf("invalid ttl %q: %w", ttl, err)
		}
		r.TTL = n
	default:
		return fmt.Errorf("invalid ttl %v", ttl)
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("%s %d %s %s", r.Name, r.TTL, r.Type, r.Data)
}

// DNS manages the zone of one domain.
type DNS struct {
	Parameters
	domain string
}

func (c *Client) DNS(domain string) *DNS {
	return &DNS{Parameters: newParameters(c, "dns", domain), domain: domain}
}

// Domain returns the name of the zone, e.g. example.com.
func (d *DNS) Domain() string { return d.domain }

// ListRRs returns the records matching every non-empty filter.
func (d *DNS) ListRRs(ctx context.Context, name, rrType, data string) ([]Record, error) {
	var params Params
	if name != "" {
		params.Add("name", name)
	}
	if rrType != "" {
		params.Add("type", rrType)
	}
	if data != "" {
		params.Add("data", data)
	}
	body, err := d.call(ctx, "listRRs", params)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, fmt.Errorf("error decoding records for %s: %w", d.domain, err)
	}
	return records, nil
}

// AddRR creates r in the zone. Scope is ignored.
func (d *DNS) AddRR(ctx context.Context, r Record) error {
	var params Params
	params.Add("name", r.Name)
	params.Add("type", r.Type)
	params.Add("data", r.Data)
	params.Add("ttl", strconv.Itoa(r.TTL))
	_, err := d.call(ctx, "addRR", params)
	return err
}

// RemoveRR deletes the record identified by r's name, type and data.
func (d *DNS) RemoveRR(ctx context.Context, r Record) error {
	var params Params
	params.Add("name", r.Name)
	params.Add("type", r.Type)
	params.Add("data", r.Data)
	_, err := d.call(ctx, "removeRR", params)
	return err
}

// UpdateSerial bumps the zone's SOA serial number.
func (d *DNS) UpdateSerial(ctx context.Context) error {
	_, err := d.call(ctx, "updateSerial", nil)
	return err
}

func (d *DNS) Expire(ctx context.Context) (int, error)  { return d.getInt(ctx, "expire") }
func (d *DNS) MinTTL(ctx context.Context) (int, error)  { return d.getInt(ctx, "minTTL") }
func (d *DNS) Refresh(ctx context.Context) (int, error) { return d.getInt(ctx, "refresh") }
func (d *DNS) Retry(ctx context.Context) (int, error)   { return d.getInt(ctx, "retry") }
func (d *DNS) Serial(ctx context.Context) (int, error)  { return d.getInt(ctx, "serial") }

func (d *DNS) SetExpire(ctx context.Context, v int) error {
	return d.SetParameter(ctx, "expire", strconv.Itoa(v))
}

func (d *DNS) SetMinTTL(ctx context.Context, v int) error {
	return d.SetParameter(ctx, "minTTL", strconv.Itoa(v))
}

func (d *DNS) SetRefresh(ctx context.Context, v int) error {
	return d.SetParameter(ctx, "refresh", strconv.Itoa(v))
}

func (d *DNS) SetRetry(ctx context.Context, v int) error {
	return d.SetParameter(ctx, "retry", strconv.Itoa(v))
}
