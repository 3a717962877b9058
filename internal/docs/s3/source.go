package s3

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/bornholm/compass/internal/docs"
	"github.com/bornholm/compass/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const Type docs.Type = "s3"

func init() {
	docs.Register(Type, CreateSourceFromOptions)
}

type Options struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	User     string `mapstructure:"user" yaml:"user"`
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Token    string `mapstructure:"token" yaml:"token"`
	Secure   bool   `mapstructure:"secure" yaml:"secure"`
	Region   string `mapstructure:"region" yaml:"region"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

func CreateSourceFromOptions(options any) (docs.Source, error) {
	opts := Options{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' source options", Type)
	}

	if opts.Bucket == "" {
		return nil, errors.Errorf("'%s' source option 'bucket' is required", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.User, opts.Secret, opts.Token),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' client", Type)
	}

	slog.Debug("help documents s3 source", log.ScrubbedURL("endpoint", opts.Endpoint), slog.String("bucket", opts.Bucket))

	return NewSource(client, opts.Bucket, opts.Prefix), nil
}

// Source serves the help documents from a S3 bucket, under an optional key
// prefix.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewSource(client *minio.Client, bucket, prefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Open implements docs.Source.
func (s *Source) Open(ctx context.Context, name string) (*docs.Document, error) {
	key := strings.TrimPrefix(path.Join(s.prefix, name), "/")

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// GetObject is lazy, Stat performs the actual request
	info, err := object.Stat()
	if err != nil {
		object.Close()

		if isNotFound(err) {
			return nil, errors.Wrapf(docs.ErrNotFound, "could not open '%s'", key)
		}

		return nil, errors.WithStack(err)
	}

	return &docs.Document{
		ReadSeekCloser: object,
		Name:           path.Base(key),
		ModTime:        info.LastModified,
	}, nil
}

func isNotFound(err error) bool {
	res := minio.ToErrorResponse(err)
	return res.StatusCode == http.StatusNotFound || res.Code == "NoSuchKey" || res.Code == "NoSuchBucket"
}

var _ docs.Source = &Source{}
