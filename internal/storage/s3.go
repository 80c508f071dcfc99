package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	awsSession "github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	maxRetries    = 10
	defaultRegion = "us-east-1"
)

// S3Config selects the bucket artifacts are published to. Credentials come
// from the standard AWS environment and shared configuration.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

type s3 struct {
	bucket   string
	endpoint string
	uploader *s3manager.Uploader
}

// NewS3 builds an S3 (or S3-compatible) store.
func NewS3(cfg S3Config) (Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must not be empty")
	}

	regionName := cfg.Region
	if len(regionName) == 0 {
		regionName = defaultRegion
	}

	awsConfig := &aws.Config{
		Region:           aws.String(regionName),
		S3ForcePathStyle: aws.Bool(true),
		MaxRetries:       aws.Int(maxRetries),
	}
	if len(cfg.Endpoint) > 0 {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	session, err := awsSession.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create AWS session: %w", err)
	}

	s := &s3{bucket: cfg.Bucket, endpoint: cfg.Endpoint}
	s.uploader = s3manager.NewUploaderWithClient(awss3.New(session))
	if s.isGCSHost() {
		// GCS returns `InvalidArgument` on multipart uploads
		s.uploader.MaxUploadParts = 1
	}
	return s, nil
}

func (s *s3) Put(ctx context.Context, key string, source io.Reader) error {
	params := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   source,
	}

	_, err := s.uploader.UploadWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("unable to upload '%s': %w", key, err)
	}

	return nil
}

func (s *s3) isGCSHost() bool {
	return s.endpoint != "" && strings.Contains(s.endpoint, "storage.googleapis.com")
}
