package experiments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/newtab/pkg/store"
)

// ErrUnsupportedSource is returned by Open for URIs with an unknown scheme.
var ErrUnsupportedSource = errors.New("experiments: unsupported source")

// maxDocumentSize bounds how much of an experiment document is read.
const maxDocumentSize = 1 << 20

// Source loads the experiment node of the store.
type Source interface {
	Load(ctx context.Context) (*store.Experiments, error)
}

// ObjectGetter is the subset of the S3 client used by S3Source.
// *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Decode parses an experiment document:
//
//	{"data": {"id": "exp-001", "reverseMenuOptions": true}, "error": false}
func Decode(r io.Reader) (*store.Experiments, error) {
	var exp store.Experiments
	dec := json.NewDecoder(io.LimitReader(r, maxDocumentSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&exp); err != nil {
		return nil, fmt.Errorf("experiments: decode: %w", err)
	}
	return &exp, nil
}

// FileSource reads the document from a local file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (f FileSource) Load(ctx context.Context) (*store.Experiments, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("experiments: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// S3Source reads the document from an S3 object.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

// Load implements Source.
func (s S3Source) Load(ctx context.Context) (*store.Experiments, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("experiments: s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()
	return Decode(out.Body)
}

// StaticSource always returns the same node. A nil node loads nothing.
type StaticSource struct {
	Experiments *store.Experiments
}

// Load implements Source.
func (s StaticSource) Load(context.Context) (*store.Experiments, error) {
	return s.Experiments, nil
}

// OpenOptions configures Open.
type OpenOptions struct {
	// S3 is used for s3:// URIs. If nil, a client is built from the
	// default AWS configuration.
	S3 ObjectGetter

	// Region overrides the region of the default AWS configuration.
	Region string
}

// Open returns the Source for uri. Supported forms are a bare path,
// file:///path and s3://bucket/key. An empty uri yields an empty
// StaticSource.
func Open(ctx context.Context, uri string, opts OpenOptions) (Source, error) {
	if uri == "" {
		return StaticSource{}, nil
	}
	if !strings.Contains(uri, "://") {
		return FileSource{Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("experiments: parse %q: %w", uri, err)
	}
	switch u.Scheme {
	case "file":
		return FileSource{Path: u.Path}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("%w: %q needs a bucket and a key", ErrUnsupportedSource, uri)
		}
		client := opts.S3
		if client == nil {
			c, err := NewS3Client(ctx, opts.Region)
			if err != nil {
				return nil, err
			}
			client = c
		}
		return S3Source{Client: client, Bucket: u.Host, Key: key}, nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}

// NewS3Client builds an S3 client from the default AWS configuration:
// environment, shared config and credentials files, SSO and instance roles.
// A non-empty region takes precedence over the configured one.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("experiments: load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Apply loads src into st. On failure the experiment node is marked with
// Error so components fall back to the natural menu order, and the load
// error is returned.
func Apply(ctx context.Context, st *store.Store, src Source) error {
	exp, err := src.Load(ctx)
	if err != nil {
		st.SetExperiments(&store.Experiments{Error: true})
		return err
	}
	st.SetExperiments(exp)
	return nil
}
