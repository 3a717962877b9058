package config

import "github.com/goccy/go-yaml"

type Navigation struct {
	Delimiter InterpolatedString `yaml:"delimiter"`
	LoginPath InterpolatedString `yaml:"loginPath"`
	Brand     NavLink            `yaml:"brand"`
	Links     []NavLink          `yaml:"links"`
}

type NavLink struct {
	URL      InterpolatedString      `yaml:"url"`
	Label    InterpolatedString      `yaml:"label"`
	Sublinks InterpolatedStringSlice `yaml:"sublinks,omitempty"`
	Visible  InterpolatedString      `yaml:"visible,omitempty"`
}

func NewDefaultNavigationConfig() Navigation {
	return Navigation{
		Delimiter: "#",
		LoginPath: "/login",
		Brand: NavLink{
			URL:   "#/entry",
			Label: "brand_cp",
		},
		Links: []NavLink{
			{URL: "#/apps", Label: "nav_apps", Sublinks: InterpolatedStringSlice{"#/services/", "#/servicesmap"}},
			{URL: "#/pools", Label: "nav_pools", Sublinks: InterpolatedStringSlice{"#/pools/"}},
			{URL: "#/hosts", Label: "nav_hosts", Sublinks: InterpolatedStringSlice{"#/hosts/", "#/hostsmap"}},
			{URL: "#/logs", Label: "nav_logs"},
			{URL: "#/backuprestore", Label: "nav_backuprestore", Visible: "loggedIn"},
		},
	}
}

func NewNavigationConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                  []*yaml.Comment{yaml.HeadComment(" Navigation bar configuration")},
		".delimiter":        []*yaml.Comment{yaml.HeadComment(" Routing delimiter of the client router, prefixed to paths before matching")},
		".loginPath":        []*yaml.Comment{yaml.HeadComment(" Route displayed after logout")},
		".links":            []*yaml.Comment{yaml.HeadComment(" Navigation links, in display order", " A link is active when the current path equals its url or starts with one of its sublinks")},
		".links[0].visible": []*yaml.Comment{yaml.HeadComment(" Optional visibility rule (variables: loggedIn, language, path)", " See https://expr-lang.org/docs/language-definition")},
	}
}
