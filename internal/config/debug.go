package config

import "github.com/goccy/go-yaml"

type Debug struct {
	Address InterpolatedString `yaml:"address"`
}

func NewDefaultDebugConfig() Debug {
	return Debug{
		Address: "${COMPASS_DEBUG_ADDRESS:-}",
	}
}

func NewDebugConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Debug server configuration")},
		".address": []*yaml.Comment{yaml.HeadComment(" Listening address of the profiling endpoints, disabled if empty")},
	}
}
