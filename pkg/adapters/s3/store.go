// Package s3 stores each key as one object in an S3-compatible bucket.
// For tests, use TestStore (gofakes3).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quire/pkg/core"
)

// Config holds the configuration for the S3 store.
type Config struct {
	// Endpoint is the S3 endpoint URL. Leave empty to use AWS S3.
	Endpoint string
	// Region is the AWS region (e.g., "us-east-1", "auto" for Tigris/R2).
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// Prefix is prepended to every object key (e.g., "notebooks/alice/").
	Prefix string
	// Ext is appended to every object key (e.g., ".json").
	Ext string
	// UsePathStyle enables path-style addressing (required for gofakes3 and MinIO).
	UsePathStyle bool
	ReadOnly     bool
	Logger       *slog.Logger
}

// Store implements core.Store on an S3 bucket.
type Store struct {
	client *s3.Client
	config Config

	mu     sync.RWMutex
	writes int
}

// New creates a store with an SDK client built from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 store: bucket is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewFromClient(client, cfg), nil
}

// NewFromClient creates a store over an existing SDK client.
func NewFromClient(client *s3.Client, cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{client: client, config: cfg}
}

// ObjectKey returns the object key that backs key.
func (s *Store) ObjectKey(key string) string {
	return s.config.Prefix + key + s.config.Ext
}

// Initialize checks that the bucket is reachable.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.config.Bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 store: bucket %q not reachable: %w", s.config.Bucket, err)
	}
	return nil
}

// Get downloads the object backing key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := core.ValidateKey(key); err != nil {
		return nil, err
	}

	objectKey := s.ObjectKey(key)
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("s3 store: failed to get %q: %w", objectKey, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 store: failed to read %q: %w", objectKey, err)
	}
	return data, nil
}

// Set uploads value as the object backing key, replacing any previous version.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return fmt.Errorf("%w: cannot write %s", core.ErrReadOnly, key)
	}
	if err := core.ValidateKey(key); err != nil {
		return err
	}

	objectKey := s.ObjectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(value),
		ContentType: aws.String(contentType(s.config.Ext)),
	})
	if err != nil {
		return fmt.Errorf("s3 store: failed to put %q: %w", objectKey, err)
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	s.config.Logger.Debug("stored object", "bucket", s.config.Bucket, "key", objectKey, "bytes", len(value))
	return nil
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Bucket   string `json:"bucket"`
	Prefix   string `json:"prefix"`
	ReadOnly bool   `json:"read_only"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{
		Bucket:   s.config.Bucket,
		Prefix:   s.config.Prefix,
		ReadOnly: s.config.ReadOnly,
		Writes:   s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
