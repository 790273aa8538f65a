package ddns_test

import (
	"context"
	"net/http"
	"net/netip"
	"testing"

	ddns "github.com/Travis-Britz/nfsn-ddns"
	"github.com/cloudflare/cloudflare-go"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfResponse(result any) map[string]any {
	return map[string]any{
		"success":  true,
		"errors":   make([]any, 0),
		"messages": make([]any, 0),
		"result":   result,
		"result_info": map[string]any{
			"page":        1,
			"per_page":    100,
			"count":       1,
			"total_count": 1,
			"total_pages": 1,
		},
	}
}

func cfRecord(id, content string) map[string]any {
	return map[string]any{
		"id":          id,
		"content":     content,
		"name":        "home.example.com",
		"proxied":     false,
		"type":        "A",
		"comment":     "",
		"created_on":  "2014-01-01T05:20:00.12345Z",
		"modified_on": "2014-01-01T05:20:00.12345Z",
		"proxyable":   true,
		"ttl":         3600,
		"zone_id":     "zone1",
		"zone_name":   "example.com",
	}
}

func TestCloudflareReplacesStaleRecord(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "http://cf/client/v4/zones",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, cfResponse([]map[string]any{
			{"id": "zone0", "name": "example.org"},
			{"id": "zone1", "name": "example.com"},
		})))
	mt.RegisterResponder(http.MethodGet, "http://cf/client/v4/zones/zone1/dns_records",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, cfResponse([]map[string]any{cfRecord("record1", "198.51.100.1")})))
	mt.RegisterResponder(http.MethodDelete, "http://cf/client/v4/zones/zone1/dns_records/record1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, cfResponse(map[string]any{"id": "record1"})))
	mt.RegisterResponder(http.MethodPost, "http://cf/client/v4/zones/zone1/dns_records",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, cfResponse(cfRecord("record2", "203.0.113.7"))))

	c, err := ddns.New("home",
		ddns.UsingCloudflare("token", "example.com",
			cloudflare.BaseURL("http://cf/client/v4"),
			cloudflare.HTTPClient(&http.Client{Transport: mt}),
		),
		ddns.UsingResolver(ddns.ResolverFunc(func(context.Context) (netip.Addr, error) {
			return netip.MustParseAddr("203.0.113.7"), nil
		})),
	)
	require.NoError(t, err)
	require.NoError(t, c.RunDDNS(context.Background()))

	calls := mt.GetCallCountInfo()
	assert.Equal(t, 1, calls["DELETE http://cf/client/v4/zones/zone1/dns_records/record1"])
	assert.Equal(t, 1, calls["POST http://cf/client/v4/zones/zone1/dns_records"])
}

func TestCloudflareUnknownZone(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "http://cf/client/v4/zones",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, cfResponse([]map[string]any{{"id": "zone0", "name": "example.org"}})))

	c, err := ddns.New("home",
		ddns.UsingCloudflare("token", "example.com",
			cloudflare.BaseURL("http://cf/client/v4"),
			cloudflare.HTTPClient(&http.Client{Transport: mt}),
		),
		ddns.UsingResolver(ddns.ResolverFunc(func(context.Context) (netip.Addr, error) {
			return netip.MustParseAddr("203.0.113.7"), nil
		})),
	)
	require.NoError(t, err)
	assert.ErrorContains(t, c.RunDDNS(context.Background()), "example.com")
}
