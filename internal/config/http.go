package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString `yaml:"address"`
	BaseURL InterpolatedString `yaml:"baseUrl"`
	Session Session            `yaml:"session"`
}

type Session struct {
	Name          InterpolatedString      `yaml:"name"`
	Keys          InterpolatedStringSlice `yaml:"keys"`
	Cookie        Cookie                  `yaml:"cookie"`
	PurgeInterval InterpolatedDuration    `yaml:"purgeInterval"`
}

type Cookie struct {
	Path     InterpolatedString   `yaml:"path"`
	MaxAge   InterpolatedDuration `yaml:"maxAge"`
	HTTPOnly InterpolatedBool     `yaml:"httpOnly"`
	Secure   InterpolatedBool     `yaml:"secure"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${COMPASS_HTTP_ADDRESS:-:8080}",
		BaseURL: "${COMPASS_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Name: "${COMPASS_HTTP_SESSION_NAME:-compass_session}",
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				Path:     "/",
				MaxAge:   InterpolatedDuration(24 * time.Hour),
				HTTPOnly: true,
				Secure:   false,
			},
			PurgeInterval: InterpolatedDuration(time.Hour),
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                         []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":                 []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":                 []*yaml.Comment{yaml.HeadComment(" Public base URL of the webserver")},
		".session":                 []*yaml.Comment{yaml.HeadComment(" Session configuration")},
		".session.keys":            []*yaml.Comment{yaml.HeadComment(" Cookie signing keys", " A random key is generated at startup if empty")},
		".session.cookie.maxAge":   []*yaml.Comment{yaml.HeadComment(" Session cookie lifetime")},
		".session.cookie.secure":   []*yaml.Comment{yaml.HeadComment(" Only send the session cookie over HTTPS")},
		".session.cookie.httpOnly": []*yaml.Comment{yaml.HeadComment(" Hide the session cookie from scripts")},
		".session.purgeInterval":   []*yaml.Comment{yaml.HeadComment(" Interval between purges of the sessions idle for longer than the cookie lifetime")},
	}
}
