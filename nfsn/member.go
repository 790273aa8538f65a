package nfsn

import "context"

// Member is a member login and the accounts and sites it owns.
type Member struct {
	Parameters
	username string
}

func (c *Client) Member(username string) *Member {
	return &Member{Parameters: newParameters(c, "member", username), username: username}
}

func (m *Member) Username() string { return m.username }

// Accounts lists account numbers, which are accepted by Client.Account.
func (m *Member) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := m.getJSON(ctx, "accounts", &accounts)
	return accounts, err
}

// Sites lists site short names, which are accepted by Client.Site.
func (m *Member) Sites(ctx context.Context) ([]string, error) {
	var sites []string
	err := m.getJSON(ctx, "sites", &sites)
	return sites, err
}
