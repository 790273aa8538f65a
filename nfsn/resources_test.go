package nfsn

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const api = "https://api.nearlyfreespeech.net"

func TestListRRs(t *testing.T) {
	c, mt := newTestClient(t)
	var got captured
	mt.RegisterResponder(http.MethodPost, api+"/dns/example.com/listRRs", capture(&got, 200, `[
		{"name":"home","type":"A","data":"192.0.2.1","ttl":"3600","scope":"member"},
		{"name":"home","type":"A","data":"192.0.2.2","ttl":"600","scope":"member"}
	]`))

	records, err := c.DNS("example.com").ListRRs(context.Background(), "home", "A", "")
	require.NoError(t, err)
	assert.Equal(t, "name=home&type=A", got.body)
	assert.Equal(t, []Record{
		{Name: "home", Type: "A", Data: "192.0.2.1", TTL: 3600, Scope: "member"},
		{Name: "home", Type: "A", Data: "192.0.2.2", TTL: 600, Scope: "member"},
	}, records)
}

func TestListRRsBadResponse(t *testing.T) {
	c, mt := newTestClient(t)
	mt.RegisterResponder(http.MethodPost, api+"/dns/example.com/listRRs", httpmock.NewStringResponder(200, `[{"name":"home","ttl":"soon"}]`))

	_, err := c.DNS("example.com").ListRRs(context.Background(), "", "", "")
	assert.Error(t, err)
}

func TestAddAndRemoveRR(t *testing.T) {
	c, mt := newTestClient(t)
	var added, removed captured
	mt.RegisterResponder(http.MethodPost, api+"/dns/example.com/addRR", capture(&added, 200, ""))
	mt.RegisterResponder(http.MethodPost, api+"/dns/example.com/removeRR", capture(&removed, 200, ""))

	d := c.DNS("example.com")
	r := Record{Name: "home", Type: "A", Data: "192.0.2.1", TTL: 3600, Scope: "member"}
	require.NoError(t, d.AddRR(context.Background(), r))
	require.NoError(t, d.RemoveRR(context.Background(), r))

	assert.Equal(t, "name=home&type=A&data=192.0.2.1&ttl=3600", added.body)
	assert.Equal(t, "name=home&type=A&data=192.0.2.1", removed.body)
}

func TestDNSProperties(t *testing.T) {
	c, mt := newTestClient(t)
	mt.RegisterResponder(http.MethodGet, api+"/dns/example.com/serial", httpmock.NewStringResponder(200, "2024010101"))
	mt.RegisterResponder(http.MethodGet, api+"/dns/example.com/minTTL", httpmock.NewStringResponder(200, `"180"`))
	var put captured
	mt.RegisterResponder(http.MethodPut, api+"/dns/example.com/refresh", capture(&put, 200, ""))

	d := c.DNS("example.com")
	serial, err := d.Serial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2024010101, serial)

	minTTL, err := d.MinTTL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 180, minTTL)

	require.NoError(t, d.SetRefresh(context.Background(), 7200))
	assert.Equal(t, "7200", put.body)
}

func TestAccount(t *testing.T) {
	c, mt := newTestClient(t)
	mt.RegisterResponder(http.MethodGet, api+"/account/A1B2-C3D4/balance", httpmock.NewStringResponder(200, "17.25"))
	mt.RegisterResponder(http.MethodGet, api+"/account/A1B2-C3D4/status",
		httpmock.NewStringResponder(200, `{"status":"Ok","short":"OK","color":"#00FF00"}`))
	mt.RegisterResponder(http.MethodGet, api+"/account/A1B2-C3D4/sites", httpmock.NewStringResponder(200, `["example","blog"]`))
	var warning captured
	mt.RegisterResponder(http.MethodPost, api+"/account/A1B2-C3D4/addWarning", capture(&warning, 200, ""))

	a := c.Account("A1B2-C3D4")
	balance, err := a.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17.25, balance)

	status, err := a.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AccountStatus{Description: "Ok", Short: "OK", Color: "#00FF00"}, status)

	sites, err := a.Sites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"example", "blog"}, sites)

	require.NoError(t, a.AddWarning(context.Background(), 5))
	assert.Equal(t, "balance=5.00", warning.body)
}

func TestEmailForwards(t *testing.T) {
	c, mt := newTestClient(t)
	mt.RegisterResponder(http.MethodPost, api+"/email/example.com/listForwards",
		httpmock.NewStringResponder(200, `{"cat":"dog@example.org","info":"me@example.org"}`))
	var set captured
	mt.RegisterResponder(http.MethodPost, api+"/email/example.com/setForward", capture(&set, 200, ""))

	e := c.Email("example.com")
	forwards, err := e.ListForwards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cat": "dog@example.org", "info": "me@example.org"}, forwards)

	require.NoError(t, e.SetForward(context.Background(), "cat", "dog@example.org"))
	assert.Equal(t, "forward=cat&dest_email=dog%40example.org", set.body)
}

func TestSiteAlias(t *testing.T) {
	c, mt := newTestClient(t)
	var got captured
	mt.RegisterResponder(http.MethodPost, api+"/site/example/addAlias", capture(&got, 200, ""))

	require.NoError(t, c.Site("example").AddAlias(context.Background(), "www.example.com"))
	assert.Equal(t, "alias=www.example.com", got.body)
	assert.Equal(t, 1, mt.GetCallCountInfo()["POST "+api+"/site/example/addAlias"])
}
