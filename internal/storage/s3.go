package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage keeps each key as one object in an S3-compatible bucket
// (AWS S3, Cloudflare R2, MinIO)
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage builds a client with static credentials. An empty endpoint
// uses the AWS default for the region.
func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucket, region string) (*S3Storage, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is required for s3 storage")
	}
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // Required for MinIO and R2
		}
	})

	return &S3Storage{client: client, bucket: bucket}, nil
}

func objectKey(key string) string {
	return key + ".json"
}

func (b *S3Storage) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("download %s from s3: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return "", false, fmt.Errorf("read %s from s3: %w", key, err)
	}
	return string(data), true, nil
}

func (b *S3Storage) Set(ctx context.Context, key, value string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(objectKey(key)),
		Body:          strings.NewReader(value),
		ContentLength: aws.Int64(int64(len(value))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload %s to s3: %w", key, err)
	}
	return nil
}

func (b *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("delete %s from s3: %w", key, err)
	}
	return nil
}

func (b *S3Storage) Name() string { return "s3" }
func (b *S3Storage) Close() error { return nil }
