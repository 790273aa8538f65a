package ddns

import (
	"context"
	"fmt"
	"net/netip"
)

// Resolver looks up the address the DNS record should point to.
type Resolver interface {
	Resolve(context.Context) (netip.Addr, error)
}

// ResolverFunc adapts an ordinary function to a Resolver.
type ResolverFunc func(context.Context) (netip.Addr, error)

func (f ResolverFunc) Resolve(ctx context.Context) (netip.Addr, error) { return f(ctx) }

//go:generate go run go.uber.org/mock/mockgen@v0.5.0 -destination mock_store_test.go -package ddns_test . RecordStore

// RecordStore lists and mutates the records of one zone.
// Record names are relative to the zone.
type RecordStore interface {
	List(ctx context.Context, name, recordType string) ([]Record, error)
	Add(ctx context.Context, r Record) error
	Remove(ctx context.Context, r Record) error
}

// Record is a DNS resource record.
type Record struct {
	Name string
	Type string
	Data string
	TTL  int
	// Scope is assigned by the provider and is read-only.
	Scope string
	// ID is a provider-specific handle, if the provider has one.
	ID string
}

// Identity is the part of a record that identifies it for comparison and removal.
type Identity struct {
	Name, Type, Data string
}

func (r Record) Identity() Identity {
	return Identity{Name: r.Name, Type: r.Type, Data: r.Data}
}

func (r Record) String() string {
	return fmt.Sprintf("%s %d %s %s", r.Name, r.TTL, r.Type, r.Data)
}

// DefaultTTL is used for new records unless WithTTL says otherwise.
const DefaultTTL = 3600

// DesiredState is the single record a run converges on.
type DesiredState struct {
	Subdomain string
	Type      string
	Value     string
	TTL       int
}
