package nfsn

import "context"

type Site struct {
	Parameters
	shortName string
}

func (c *Client) Site(shortName string) *Site {
	return &Site{Parameters: newParameters(c, "site", shortName), shortName: shortName}
}

func (s *Site) ShortName() string { return s.shortName }

// AddAlias serves the site under an additional hostname, e.g. www.example.com.
func (s *Site) AddAlias(ctx context.Context, alias string) error {
	_, err := s.call(ctx, "addAlias", Params{{Name: "alias", Value: alias}})
	return err
}

func (s *Site) RemoveAlias(ctx context.Context, alias string) error {
	_, err := s.call(ctx, "removeAlias", Params{{Name: "alias", Value: alias}})
	return err
}
