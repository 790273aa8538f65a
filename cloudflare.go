package ddns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/sirupsen/logrus"
)

func newCloudflareStore(token, zone string, opts ...cloudflare.Option) (cf *cloudflareStore, err error) {
	if zone == "" {
		return nil, errors.New("zone cannot be empty")
	}
	cf = new(cloudflareStore)
	cf.api, err = cloudflare.NewWithAPIToken(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating cloudflare api client: %w", err)
	}
	cf.zone = strings.TrimSuffix(zone, ".")
	cf.logger = discard
	cf.comment = "managed by ddns"
	return cf, err
}

// cloudflareStore implements RecordStore for a Cloudflare zone.
//
// Record names are translated between zone-relative (as used by Reconcile)
// and the fully qualified names Cloudflare expects.
type cloudflareStore struct {
	api     *cloudflare.API
	zone    string
	zoneID  string
	logger  logrus.FieldLogger
	comment string // optional comment to attach to each new DNS entry
}

func (cf *cloudflareStore) List(ctx context.Context, name, recordType string) ([]Record, error) {
	zid, err := cf.zoneIdentifier(ctx)
	if err != nil {
		return nil, err
	}
	cf.logger.Debugf("looking up %s records for %s in zone %s...", recordType, cf.fqdn(name), zid)
	rs, _, err := cf.api.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.ListDNSRecordsParams{
		Type: recordType,
		Name: cf.fqdn(name),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing DNS records: %w", err)
	}
	records := make([]Record, 0, len(rs))
	for _, r := range rs {
		records = append(records, Record{
			Name: cf.relative(r.Name),
			Type: r.Type,
			Data: r.Content,
			TTL:  r.TTL,
			ID:   r.ID,
		})
	}
	cf.logger.Debugf("found %d existing records: %+v", len(records), records)
	return records, nil
}

func (cf *cloudflareStore) Add(ctx context.Context, r Record) error {
	zid, err := cf.zoneIdentifier(ctx)
	if err != nil {
		return err
	}
	cf.logger.Debugf("creating record for %s...", r)
	record, err := cf.api.CreateDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.CreateDNSRecordParams{
		Type:    r.Type,
		Name:    cf.fqdn(r.Name),
		Content: r.Data,
		ZoneID:  zid,
		TTL:     r.TTL,
		Comment: cf.comment,
	})
	if err != nil {
		return fmt.Errorf("error creating DNS record: %w", err)
	}
	cf.logger.Debugf("successfully added record: %+v", record)
	return nil
}

// Remove deletes every record with r's identity.
func (cf *cloudflareStore) Remove(ctx context.Context, r Record) error {
	zid, err := cf.zoneIdentifier(ctx)
	if err != nil {
		return err
	}
	ids := []string{r.ID}
	if r.ID == "" {
		ids = ids[:0]
		existing, err := cf.List(ctx, r.Name, r.Type)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.Identity() == r.Identity() {
				ids = append(ids, e.ID)
			}
		}
	}
	for _, id := range ids {
		cf.logger.Debugf("deleting DNS record %s for %s...", id, r)
		if err := cf.api.DeleteDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), id); err != nil {
			return fmt.Errorf("unable to delete DNS record %s: %w", id, err)
		}
	}
	return nil
}

func (cf *cloudflareStore) zoneIdentifier(ctx context.Context) (string, error) {
	if cf.zoneID != "" {
		return cf.zoneID, nil
	}
	zones, err := cf.api.ListZones(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing zones: %w", err)
	}
	for _, z := range zones {
		if z.Name == cf.zone {
			cf.zoneID = z.ID
			cf.logger.Debugf("got zone ID: %s", z.ID)
			return z.ID, nil
		}
	}
	return "", fmt.Errorf("unable to find a zone matching \"%s\"", cf.zone)
}

func (cf *cloudflareStore) fqdn(name string) string {
	if name == "" || name == "@" {
		return cf.zone
	}
	return name + "." + cf.zone
}

func (cf *cloudflareStore) relative(name string) string {
	if name == cf.zone {
		return ""
	}
	return strings.TrimSuffix(name, "."+cf.zone)
}
