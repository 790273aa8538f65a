package nfsn

import (
	"context"
	"strconv"
)

// AccountStatus describes the standing of an account.
type AccountStatus struct {
	Description string `json:"status"`
	Short       string `json:"short"`
	// Color is an HTML color for displaying the status.
	Color string `json:"color"`
}

// Account manages one hosting account, identified by its account number.
type Account struct {
	Parameters
	number string
}

func (c *Client) Account(number string) *Account {
	return &Account{Parameters: newParameters(c, "account", number), number: number}
}

func (a *Account) Number() string { return a.number }

func (a *Account) Balance(ctx context.Context) (float64, error) {
	return a.getFloat(ctx, "balance")
}

func (a *Account) BalanceCash(ctx context.Context) (float64, error) {
	return a.getFloat(ctx, "balanceCash")
}

// BalanceHigh is the credit balance, such as funds transferred from another member.
func (a *Account) BalanceHigh(ctx context.Context) (float64, error) {
	return a.getFloat(ctx, "balanceHigh")
}

func (a *Account) FriendlyName(ctx context.Context) (string, error) {
	return a.GetParameter(ctx, "friendlyName")
}

func (a *Account) SetFriendlyName(ctx context.Context, name string) error {
	return a.SetParameter(ctx, "friendlyName", name)
}

func (a *Account) Status(ctx context.Context) (AccountStatus, error) {
	var s AccountStatus
	err := a.getJSON(ctx, "status", &s)
	return s, err
}

// Sites lists the short names of the sites billed to the account.
func (a *Account) Sites(ctx context.Context) ([]string, error) {
	var sites []string
	err := a.getJSON(ctx, "sites", &sites)
	return sites, err
}

func (a *Account) AddSite(ctx context.Context, shortName string) error {
	_, err := a.call(ctx, "addSite", Params{{Name: "site", Value: shortName}})
	return err
}

// AddWarning asks for a notification when the balance drops below balance.
func (a *Account) AddWarning(ctx context.Context, balance float64) error {
	_, err := a.call(ctx, "addWarning", Params{{Name: "balance", Value: formatBalance(balance)}})
	return err
}

func (a *Account) RemoveWarning(ctx context.Context, balance float64) error {
	_, err := a.call(ctx, "removeWarning", Params{{Name: "balance", Value: formatBalance(balance)}})
	return err
}

func formatBalance(b float64) string {
	return strconv.FormatFloat(b, 'f', 2, 64)
}
