package local

import (
	"context"
	"io/fs"
	"os"

	"github.com/bornholm/compass/internal/docs"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const Type docs.Type = "local"

func init() {
	docs.Register(Type, CreateSourceFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

func CreateSourceFromOptions(options any) (docs.Source, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' source options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' source option 'dir' is required", Type)
	}

	return NewSource(opts.Dir), nil
}

// Source serves the help documents from a local directory.
type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Open implements docs.Source.
func (s *Source) Open(ctx context.Context, name string) (*docs.Document, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer root.Close()

	file, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(docs.ErrNotFound, "could not open '%s'", name)
		}

		return nil, errors.WithStack(err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.WithStack(err)
	}

	if stat.IsDir() {
		file.Close()
		return nil, errors.Wrapf(docs.ErrNotFound, "'%s' is a directory", name)
	}

	return &docs.Document{
		ReadSeekCloser: file,
		Name:           stat.Name(),
		ModTime:        stat.ModTime(),
	}, nil
}

var _ docs.Source = &Source{}
