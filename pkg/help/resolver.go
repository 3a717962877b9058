package help

import (
	"maps"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidRoot = errors.New("invalid root")
)

const (
	DefaultRoot     = "/static/help"
	DefaultLanguage = "en"
	DefaultDocument = "main.html"
)

// DefaultMapping maps the console view templates to their help document.
var DefaultMapping = map[string]string{
	"/static/partials/main.html":              "main.html",
	"/static/partials/login.html":             "login.html",
	"/static/partials/view-subservices.html":  "subservices.html",
	"/static/partials/view-apps.html":         "apps.html",
	"/static/partials/view-hosts.html":        "hosts.html",
	"/static/partials/view-host-map.html":     "hostmap.html",
	"/static/partials/view-service-map.html":  "servicemap.html",
	"/static/partials/view-host-details.html": "hostdetails.html",
	"/static/partials/view-devmode.html":      "devmode.html",
}

// Resolver maps a view template identifier and a language to the url of the
// matching help document.
type Resolver struct {
	root            string
	mapping         map[string]string
	defaultLanguage language.Tag
	defaultDocument string
	supported       []language.Tag
	matcher         language.Matcher
}

type Options struct {
	Root            string
	Mapping         map[string]string
	DefaultLanguage string
	DefaultDocument string
	Languages       []string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Root:            DefaultRoot,
		Mapping:         DefaultMapping,
		DefaultLanguage: DefaultLanguage,
		DefaultDocument: DefaultDocument,
		Languages:       []string{},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithRoot(root string) OptionFunc {
	return func(opts *Options) {
		opts.Root = root
	}
}

func WithMapping(mapping map[string]string) OptionFunc {
	return func(opts *Options) {
		opts.Mapping = mapping
	}
}

func WithDefaultLanguage(lang string) OptionFunc {
	return func(opts *Options) {
		opts.DefaultLanguage = lang
	}
}

// WithDefaultDocument sets the document used by ResolveOrDefault when the
// view is not mapped.
func WithDefaultDocument(filename string) OptionFunc {
	return func(opts *Options) {
		opts.DefaultDocument = filename
	}
}

// WithLanguages restricts the help documents to the given languages. The
// closest supported language is used for any other requested language.
func WithLanguages(langs ...string) OptionFunc {
	return func(opts *Options) {
		opts.Languages = langs
	}
}

func NewResolver(funcs ...OptionFunc) (*Resolver, error) {
	opts := NewOptions(funcs...)

	root, err := validateRoot(opts.Root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defaultLanguage, err := language.Parse(opts.DefaultLanguage)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse default language '%s'", opts.DefaultLanguage)
	}

	r := &Resolver{
		root:            root,
		mapping:         maps.Clone(opts.Mapping),
		defaultLanguage: defaultLanguage,
		defaultDocument: opts.DefaultDocument,
	}

	if len(opts.Languages) > 0 {
		// The default language comes first, the matcher falls back on it
		r.supported = []language.Tag{defaultLanguage}

		for _, l := range opts.Languages {
			tag, err := language.Parse(l)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse language '%s'", l)
			}

			if tag == defaultLanguage {
				continue
			}

			r.supported = append(r.supported, tag)
		}

		r.matcher = language.NewMatcher(r.supported)
	}

	return r, nil
}

// validateRoot checks that the root is an absolute url path, the help
// documents being served by this process under that prefix.
func validateRoot(root string) (string, error) {
	u, err := url.Parse(root)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidRoot, "could not parse root '%s': %s", root, err.Error())
	}

	if u.Scheme != "" || u.Host != "" || u.RawQuery != "" || u.Fragment != "" || !strings.HasPrefix(u.Path, "/") {
		return "", errors.Wrapf(ErrInvalidRoot, "root '%s' must be an absolute path", root)
	}

	cleaned := path.Clean(u.Path)
	if cleaned == "/" || strings.ContainsAny(cleaned, "{} ") {
		return "", errors.Wrapf(ErrInvalidRoot, "root '%s' must be a non empty path without spaces or braces", root)
	}

	return cleaned, nil
}

// Root returns the url path prefix of the help documents.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns "<root>/<language>/<document>" for the given view or
// ErrNotFound if the view has no help document.
func (r *Resolver) Resolve(viewID string, lang string) (string, error) {
	filename, exists := r.mapping[viewID]
	if !exists {
		return "", errors.Wrapf(ErrNotFound, "no help document for view '%s'", viewID)
	}

	return path.Join(r.root, r.Language(lang), filename), nil
}

// ResolveOrDefault is Resolve falling back on the default document, in the
// same language, for unmapped views.
func (r *Resolver) ResolveOrDefault(viewID string, lang string) string {
	url, err := r.Resolve(viewID, lang)
	if err != nil {
		return path.Join(r.root, r.Language(lang), r.defaultDocument)
	}

	return url
}

// Language returns the help language used for the requested one.
func (r *Resolver) Language(lang string) string {
	if lang == "" {
		return r.defaultLanguage.String()
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return r.defaultLanguage.String()
	}

	if r.matcher == nil {
		return tag.String()
	}

	_, idx, confidence := r.matcher.Match(tag)
	if confidence == language.No {
		return r.defaultLanguage.String()
	}

	return r.supported[idx].String()
}
