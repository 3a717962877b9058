package config

import (
	"maps"

	"github.com/bornholm/compass/pkg/help"
	"github.com/goccy/go-yaml"
)

type Help struct {
	Root            InterpolatedString      `yaml:"root"`
	DefaultLanguage InterpolatedString      `yaml:"defaultLanguage"`
	DefaultDocument InterpolatedString      `yaml:"defaultDocument"`
	Languages       InterpolatedStringSlice `yaml:"languages"`
	Mapping         InterpolatedStringMap   `yaml:"mapping"`
}

func NewDefaultHelpConfig() Help {
	return Help{
		Root:            help.DefaultRoot,
		DefaultLanguage: "${COMPASS_HELP_DEFAULT_LANGUAGE:-en}",
		DefaultDocument: help.DefaultDocument,
		Languages:       InterpolatedStringSlice{"en"},
		Mapping:         maps.Clone(help.DefaultMapping),
	}
}

func NewHelpConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                 []*yaml.Comment{yaml.HeadComment(" Contextual help configuration")},
		".root":            []*yaml.Comment{yaml.HeadComment(" URL prefix of the help documents")},
		".defaultDocument": []*yaml.Comment{yaml.HeadComment(" Document used for views without help")},
		".languages":       []*yaml.Comment{yaml.HeadComment(" Languages the help documents are available in")},
		".mapping":         []*yaml.Comment{yaml.HeadComment(" View template to help document mapping")},
	}
}
