package nav

import (
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyURL     = errors.New("link url is empty")
	ErrDuplicateURL = errors.New("link url is already registered")
)

const DefaultDelimiter = "#"

type Registry struct {
	delimiter string
	links     []Link
}

type Options struct {
	Delimiter string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Delimiter: DefaultDelimiter,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithDelimiter sets the routing delimiter used by the host router, "#" for
// fragment based routers. An empty delimiter means plain paths.
func WithDelimiter(delimiter string) OptionFunc {
	return func(opts *Options) {
		opts.Delimiter = delimiter
	}
}

func NewRegistry(links []Link, funcs ...OptionFunc) (*Registry, error) {
	opts := NewOptions(funcs...)

	registered := make([]Link, 0, len(links))
	for _, l := range links {
		if l.URL == "" {
			return nil, errors.Wrapf(ErrEmptyURL, "could not register link '%s'", l.Label)
		}

		exists := slices.ContainsFunc(registered, func(r Link) bool {
			return r.URL == l.URL
		})
		if exists {
			return nil, errors.Wrapf(ErrDuplicateURL, "could not register link '%s'", l.URL)
		}

		registered = append(registered, l.clone())
	}

	return &Registry{
		delimiter: opts.Delimiter,
		links:     registered,
	}, nil
}

// Links returns a copy of the registered links, in registration order.
func (r *Registry) Links() []Link {
	links := make([]Link, 0, len(r.links))
	for _, l := range r.links {
		links = append(links, l.clone())
	}

	return links
}

// Normalize puts the given path in the canonical form used by link URLs,
// ie. "/services/42", "services/42" and "#/services/42" all become
// "#/services/42". An empty path stays empty.
func (r *Registry) Normalize(currentPath string) string {
	if currentPath == "" {
		return ""
	}

	trimmed := strings.TrimPrefix(currentPath, r.delimiter)
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	return r.delimiter + trimmed
}

// ResolveActive returns the activity state of every registered link, in
// registration order. Exclusivity is not enforced: registries with
// overlapping prefixes may mark several links active.
func (r *Registry) ResolveActive(currentPath string) []Result {
	results := make([]Result, 0, len(r.links))
	normalized := r.Normalize(currentPath)

	for _, l := range r.links {
		results = append(results, Result{
			Link:   l.clone(),
			Active: normalized != "" && l.matches(normalized),
		})
	}

	return results
}

// Active returns the first link, in registration order, active for the
// given path.
func (r *Registry) Active(currentPath string) (Link, bool) {
	normalized := r.Normalize(currentPath)
	if normalized == "" {
		return Link{}, false
	}

	for _, l := range r.links {
		if l.matches(normalized) {
			return l.clone(), true
		}
	}

	return Link{}, false
}

// Visible yields the links allowed by their visibility rule for the given
// environment. Links whose rule fails are skipped and the error is passed to
// onError, when not nil.
func (r *Registry) Visible(env map[string]any, onError func(l Link, err error)) iter.Seq[Link] {
	return func(yield func(Link) bool) {
		for _, l := range r.links {
			if l.Visible != nil {
				visible, err := l.Visible.Exec(cloneEnv(env))
				if err != nil {
					if onError != nil {
						onError(l, errors.WithStack(err))
					}

					continue
				}

				if !visible {
					continue
				}
			}

			if !yield(l.clone()) {
				return
			}
		}
	}
}

func cloneEnv(env map[string]any) map[string]any {
	cloned := make(map[string]any, len(env))
	for k, v := range env {
		cloned[k] = v
	}

	return cloned
}
