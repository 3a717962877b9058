package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/compass/internal/docs"
	"github.com/bornholm/compass/internal/docs/local"
	"github.com/bornholm/compass/internal/docs/s3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Docs struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultDocsConfig() Docs {
	return Docs{
		Type: InterpolatedString(fmt.Sprintf("${COMPASS_DOCS_TYPE:-%s}", local.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"dir": "${COMPASS_DOCS_DIR:-./help}",
			},
		},
	}
}

func NewDocsConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Help documents source")},
		".type": []*yaml.Comment{yaml.HeadComment(" Source type", fmt.Sprintf(" Available: %v", docs.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Source options"),
			getDocsOptionComment("S3 source", s3.Options{}),
		},
	}
}

func getDocsOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{message, "options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(string(rawOpts), "\n") {
			if !yield("  " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
