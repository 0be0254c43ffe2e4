// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/core/ports"
)

// SchemeS3 prefixes archive locations stored in S3
const SchemeS3 = "s3://"

// objectDownloader is the part of manager.Downloader the source uses
type objectDownloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Source fetches vendor archives mirrored into an S3 bucket
type S3Source struct {
	downloader objectDownloader
	logger     *slog.Logger
}

// Statically assert that *S3Source implements the ArchiveSource interface.
var _ ports.ArchiveSource = (*S3Source)(nil)

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// NewS3Source creates a new S3 archive source
func NewS3Source(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Source, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("S3 archive source initialized",
		slog.String("region", cfg.Region),
		slog.Bool("custom_endpoint", cfg.Endpoint != ""))

	return newS3Source(manager.NewDownloader(client), logger), nil
}

func newS3Source(downloader objectDownloader, logger *slog.Logger) *S3Source {
	return &S3Source{
		downloader: downloader,
		logger:     logger.With(slog.String("source", "s3")),
	}
}

// buildAWSConfig builds AWS configuration
func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	// Use custom credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	// Otherwise use default credential chain
	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

// Fetch downloads the object named by an s3://bucket/key location
func (s *S3Source) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	buf := manager.NewWriteAtBuffer([]byte{})

	_, err = s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &domain.HTTPError{Op: "GetObject", URL: location, Err: err}
	}

	s.logger.DebugContext(ctx, "archive downloaded",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("bytes", len(buf.Bytes())),
		slog.Duration("duration_ms", time.Since(start)))

	return buf.Bytes(), nil
}

// ParseS3Location splits s3://bucket/key into its parts
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, SchemeS3)
	if !ok {
		return "", "", &domain.ValueError{Field: "s3 location", Value: location, Err: fmt.Errorf("missing %s prefix", SchemeS3)}
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", &domain.ValueError{Field: "s3 location", Value: location, Err: fmt.Errorf("bucket and key are required")}
	}
	return bucket, key, nil
}
