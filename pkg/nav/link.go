package nav

import (
	"slices"
	"strings"
)

// Link is a declared navigation entry. A link is active when the current path
// equals its URL or starts with one of its sublink prefixes.
type Link struct {
	URL             string
	Label           string
	SublinkPrefixes []string

	// Visible decides whether the link is displayed. A nil rule means always.
	Visible Rule
}

func (l Link) clone() Link {
	l.SublinkPrefixes = slices.Clone(l.SublinkPrefixes)
	return l
}

func (l Link) matches(normalized string) bool {
	if l.URL == normalized {
		return true
	}

	for _, prefix := range l.SublinkPrefixes {
		if prefix != "" && strings.HasPrefix(normalized, prefix) {
			return true
		}
	}

	return false
}

// Result is the activity state of one registered link for a given path.
type Result struct {
	Link   Link
	Active bool
}

// ItemClass returns the css class of the link item.
func (r Result) ItemClass() string {
	if r.Active {
		return "active"
	}

	return ""
}
