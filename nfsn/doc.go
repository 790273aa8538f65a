/*
Package nfsn is a client for the NearlyFreeSpeech.NET member API.

Every request is authenticated with a header computed by [Sign] from the
member login, API key, request path and body, a timestamp and a random salt.
Usage starts with [New]:

	c, err := nfsn.New(nfsn.Credentials{Login: "me", APIKey: "..."})
	records, err := c.DNS("example.com").ListRRs(ctx, "home", "A", "")

The API has been served with a self-signed certificate.
[Pinner] accepts such a certificate on first use and rejects any other
untrusted certificate afterwards; see its documentation for the trade-off.
*/
package nfsn
