package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const s3Scheme = "s3://"

// fileSource reads catalogue files from the local file system.
type fileSource struct {
	logger zerolog.Logger
}

// NewFileSource creates a source backed by the local file system.
func NewFileSource(logger zerolog.Logger) Source {
	return &fileSource{
		logger: logger.With().Str("component", "catalog-file").Logger(),
	}
}

func (s *fileSource) Open(_ context.Context, location string) (io.ReadCloser, error) {
	s.logger.Info().Str("file", location).Msg("opening catalogue file")

	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", location, err)
	}
	return file, nil
}

// ObjectGetter is the subset of the S3 client used by the S3 source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Source reads catalogue files addressed as s3://bucket/key.
type s3Source struct {
	client ObjectGetter
	logger zerolog.Logger
}

// NewS3Source creates a source using the default AWS credential chain.
func NewS3Source(ctx context.Context, region string, logger zerolog.Logger) (Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3SourceWithClient(s3.NewFromConfig(cfg), logger), nil
}

// NewS3SourceWithClient creates an S3 source around an existing client.
func NewS3SourceWithClient(client ObjectGetter, logger zerolog.Logger) Source {
	return &s3Source{
		client: client,
		logger: logger.With().Str("component", "catalog-s3").Logger(),
	}
}

func (s *s3Source) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("bucket", bucket).Str("key", key).Msg("fetching catalogue from S3")

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", bucket, key, err)
	}
	return out.Body, nil
}

func parseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an S3 location: %s", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("S3 location must be s3://bucket/key: %s", location)
	}
	return bucket, key, nil
}

// routingSource dispatches s3:// locations to the S3 source and everything
// else to the file source.
type routingSource struct {
	s3   Source
	file Source
}

// NewRoutingSource creates a source that picks S3 or the local file system by
// location. s3 may be nil, in which case S3 locations are rejected.
func NewRoutingSource(s3 Source, file Source) Source {
	return &routingSource{s3: s3, file: file}
}

func (s *routingSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, s3Scheme) {
		if s.s3 == nil {
			return nil, fmt.Errorf("S3 source not configured for %s", location)
		}
		return s.s3.Open(ctx, location)
	}
	return s.file.Open(ctx, location)
}

// IsS3Location reports whether location addresses an S3 object.
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}
