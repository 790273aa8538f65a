package ddns

import (
	"context"
	"fmt"
)

// Result reports the mutations made by Reconcile.
type Result struct {
	Created bool
	Removed []Record
}

// Changed reports whether any record was added or removed.
func (r Result) Changed() bool { return r.Created || len(r.Removed) > 0 }

// Reconcile converges the records named want.Subdomain of type want.Type on want.Value.
//
// Every listed record whose data differs from want.Value is removed.
// One record is then added if nothing was listed or anything was removed.
// Records already holding want.Value are left alone, so a store holding such
// a record next to stale ones ends up with two matching records.
//
// The first failing call aborts the run. Reconcile is not transactional:
// a stale record may already be gone when the add fails,
// and running it again finishes the job.
func Reconcile(ctx context.Context, store RecordStore, want DesiredState) (Result, error) {
	var res Result
	if want.TTL <= 0 {
		want.TTL = DefaultTTL
	}

	records, err := store.List(ctx, want.Subdomain, want.Type)
	if err != nil {
		return res, fmt.Errorf("error listing %s records for %q: %w", want.Type, want.Subdomain, err)
	}

	found, required := false, false
	for _, r := range records {
		found = true
		if r.Data == want.Value {
			continue
		}
		required = true
		if err := store.Remove(ctx, r); err != nil {
			return res, fmt.Errorf("error removing record %s: %w", r, err)
		}
		res.Removed = append(res.Removed, r)
	}

	if found && !required {
		return res, nil
	}

	r := Record{Name: want.Subdomain, Type: want.Type, Data: want.Value, TTL: want.TTL}
	if err := store.Add(ctx, r); err != nil {
		return res, fmt.Errorf("error adding record %s: %w", r, err)
	}
	res.Created = true
	return res, nil
}
