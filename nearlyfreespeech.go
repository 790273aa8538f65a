package ddns

import (
	"context"

	"github.com/Travis-Britz/nfsn-ddns/nfsn"
	"github.com/sirupsen/logrus"
)

// nfsnStore implements RecordStore on top of an NFSN zone.
type nfsnStore struct {
	dns    *nfsn.DNS
	logger logrus.FieldLogger
}

func (s *nfsnStore) List(ctx context.Context, name, recordType string) ([]Record, error) {
	s.logger.WithFields(logrus.Fields{"zone": s.dns.Domain(), "name": name, "type": recordType}).Debug("listing records")
	rrs, err := s.dns.ListRRs(ctx, name, recordType, "")
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rrs))
	for _, rr := range rrs {
		records = append(records, Record{Name: rr.Name, Type: rr.Type, Data: rr.Data, TTL: rr.TTL, Scope: rr.Scope})
	}
	s.logger.Debugf("found %d existing records: %+v", len(records), records)
	return records, nil
}

func (s *nfsnStore) Add(ctx context.Context, r Record) error {
	s.logger.WithField("record", r.String()).Debug("adding record")
	return s.dns.AddRR(ctx, nfsn.Record{Name: r.Name, Type: r.Type, Data: r.Data, TTL: r.TTL})
}

func (s *nfsnStore) Remove(ctx context.Context, r Record) error {
	s.logger.WithField("record", r.String()).Debug("removing record")
	return s.dns.RemoveRR(ctx, nfsn.Record{Name: r.Name, Type: r.Type, Data: r.Data})
}
