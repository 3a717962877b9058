package docs

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnknownType = errors.New("unknown source type")
)

// Document is an opened help document. Callers must close it.
type Document struct {
	io.ReadSeekCloser
	Name    string
	ModTime time.Time
}

// Source provides the help documents, named "<language>/<filename>".
type Source interface {
	Open(ctx context.Context, name string) (*Document, error)
}

type Type string

type Factory func(options any) (Source, error)

var (
	factoriesMutex sync.RWMutex
	factories      = map[Type]Factory{}
)

func Register(sourceType Type, factory Factory) {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()

	factories[sourceType] = factory
}

func Registered() []Type {
	factoriesMutex.RLock()
	defer factoriesMutex.RUnlock()

	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(sourceType Type, options any) (Source, error) {
	factoriesMutex.RLock()
	factory, exists := factories[sourceType]
	factoriesMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrUnknownType, "could not create source '%s'", sourceType)
	}

	source, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return source, nil
}
