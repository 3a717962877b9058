package setup

import (
	"context"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/pkg/nav"
	"github.com/bornholm/compass/pkg/nav/expr"
	"github.com/bornholm/compass/pkg/navbar"
	"github.com/pkg/errors"
)

func NewRegistryFromConfig(ctx context.Context, conf *config.Config) (*nav.Registry, error) {
	links := make([]nav.Link, 0, len(conf.Navigation.Links))
	for _, l := range conf.Navigation.Links {
		link := nav.Link{
			URL:             string(l.URL),
			Label:           string(l.Label),
			SublinkPrefixes: []string(l.Sublinks),
		}

		if l.Visible != "" {
			rule := expr.NewRule(string(l.Visible))
			if err := rule.Compile(); err != nil {
				return nil, errors.Wrapf(err, "invalid visibility rule for link '%s'", l.URL)
			}

			link.Visible = rule
		}

		links = append(links, link)
	}

	registry, err := nav.NewRegistry(links, nav.WithDelimiter(string(conf.Navigation.Delimiter)))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return registry, nil
}

func NewBrandFromConfig(conf *config.Config) navbar.Brand {
	brand := navbar.Brand{
		URL:   string(conf.Navigation.Brand.URL),
		Label: string(conf.Navigation.Brand.Label),
	}

	if brand == (navbar.Brand{}) {
		return navbar.DefaultBrand
	}

	return brand
}
