// Package s3 implements the media storage adapter on top of Amazon S3.
// Uploaded files become public-read objects addressed by a path-style URL
// (or an asset host override), and stored objects are streamed back through
// a hertz middleware.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/yi-nology/s3_media_storage/pkg/storage"
)

// CacheControl is sent with every upload. Object keys carry a timestamp, so
// stored content never changes under a given URL.
const CacheControl = "public, max-age=31536000, immutable"

// Config holds S3 storage configuration.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	AssetHost       string // Optional base URL used instead of the regional endpoint
	PathPrefix      string // Optional key namespace inside a shared bucket
	Endpoint        string // Optional S3-compatible endpoint (e.g. LocalStack)
	PathStyle       bool
}

// Validate reports every missing required field.
func (c Config) Validate() error {
	var missing []string
	if c.AccessKeyID == "" {
		missing = append(missing, "access key id")
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, "secret access key")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.Region == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", storage.ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Client is the subset of *s3.Client used by the adapter.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Option customises a Storage.
type Option func(*Storage)

// WithClient replaces the lazily built SDK client.
func WithClient(c Client) Option {
	return func(s *Storage) {
		s.client = func() (Client, error) { return c, nil }
	}
}

// WithClock replaces time.Now for key generation.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// Storage implements storage.Adapter using S3.
type Storage struct {
	cfg    Config
	now    func() time.Time
	client func() (Client, error)

	mu    sync.Mutex
	built Client
}

var _ storage.Adapter = (*Storage)(nil)

// New creates a new S3 storage adapter. It performs no I/O: the SDK client is
// built on first use, and an incomplete cfg is reported by each operation.
// A failed client build is retried by the next operation.
func New(cfg Config, opts ...Option) *Storage {
	s := &Storage{
		cfg: cfg,
		now: time.Now,
	}
	s.client = func() (Client, error) {
		return s.lazyClient(newClient)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lazyClient returns the cached client, building it with build on first
// success. Errors are not cached.
func (s *Storage) lazyClient(build func(Config) (Client, error)) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built != nil {
		return s.built, nil
	}
	c, err := build(s.cfg)
	if err != nil {
		return nil, err
	}
	s.built = c
	return c, nil
}

func newClient(cfg Config) (Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3OptFns []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.PathStyle {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(awsCfg, s3OptFns...), nil
}

// Save uploads the request's local file and returns the object's public URL.
// Backend errors are returned unchanged.
func (s *Storage) Save(ctx context.Context, req *storage.UploadRequest) (string, error) {
	if err := s.cfg.Validate(); err != nil {
		hlog.CtxErrorf(ctx, "[s3] save rejected: %v", err)
		return "", err
	}

	now := s.now()
	targetDir := req.TargetDir
	if targetDir == "" {
		targetDir = DefaultTargetDir(now)
	}
	key := ObjectKey(s.cfg.PathPrefix, targetDir, req.Name, now)

	data, err := os.ReadFile(req.Path)
	if err != nil {
		err = fmt.Errorf("%w: %w", storage.ErrUnreadableFile, err)
		hlog.CtxErrorf(ctx, "[s3] save %s: %v", req.Name, err)
		return "", err
	}

	client, err := s.client()
	if err != nil {
		hlog.CtxErrorf(ctx, "[s3] save %s: %v", key, err)
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(req.ContentType),
		CacheControl:  aws.String(CacheControl),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "[s3] put object %s: %v", key, err)
		return "", err
	}

	hlog.CtxInfof(ctx, "[s3] uploaded %s from temp file %s", key, req.Path)
	return PublicURL(s.cfg, key), nil
}

// Exists checks for the object with a metadata-only request.
func (s *Storage) Exists(ctx context.Context, ref string) (bool, error) {
	client, err := s.configuredClient()
	if err != nil {
		hlog.CtxErrorf(ctx, "[s3] exists %s: %v", ref, err)
		return false, err
	}

	key := s.KeyFor(ref)
	_, err = client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		hlog.CtxErrorf(ctx, "[s3] head object %s: %v", key, err)
		return false, err
	}
	return true, nil
}

// Delete removes the object and returns once S3 has acknowledged it.
func (s *Storage) Delete(ctx context.Context, ref string) error {
	client, err := s.configuredClient()
	if err != nil {
		hlog.CtxErrorf(ctx, "[s3] delete %s: %v", ref, err)
		return err
	}

	key := s.KeyFor(ref)
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "[s3] delete object %s: %v", key, err)
		return err
	}

	hlog.CtxInfof(ctx, "[s3] deleted %s", key)
	return nil
}

func (s *Storage) configuredClient() (Client, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return s.client()
}
