package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config holds configuration for the S3 report store.
type S3Config struct {
	Bucket    string
	Prefix    string // optional key prefix inside the bucket
	Region    string
	Endpoint  string // S3-compatible endpoint, e.g. MinIO; enables path-style
	AccessKey string
	SecretKey string
}

// s3API is the subset of the S3 client used by S3Store.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps report blobs in an S3 bucket. Writes are conditional so a
// report ID can only be stored once.
type S3Store struct {
	api    s3API
	bucket string
	prefix string
}

// NewS3Store creates an S3-backed BlobStore.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Store{api: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(creds))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Store) PutReport(ctx context.Context, id string, data []byte) error {
	key := objectKey(s.prefix, id)
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		IfNoneMatch:  aws.String("*"),
	})
	switch {
	case err == nil:
		return nil
	case s3ErrorCode(err) == "PreconditionFailed":
		return fmt.Errorf("%w: %s", ErrExists, id)
	default:
		return fmt.Errorf("put report %s to s3://%s/%s: %w", id, s.bucket, key, err)
	}
}

func (s *S3Store) GetReport(ctx context.Context, id string) ([]byte, error) {
	key := objectKey(s.prefix, id)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) || s3ErrorCode(err) == "NotFound" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get report %s from s3://%s/%s: %w", id, s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}
	return data, nil
}

// s3ErrorCode returns the service error code carried by err, if any.
func s3ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
