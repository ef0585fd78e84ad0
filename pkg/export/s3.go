package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of *s3.Client used by S3Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store stores reports in an S3 bucket.
//
// Example usage:
//
//	client, err := export.NewS3Client(ctx, "eu-west-1")
//	if err != nil {
//	    return err
//	}
//	store := export.NewS3Store(client, "my-bucket")
type S3Store struct {
	client PutObjectAPI
	bucket string
}

// NewS3Store creates a store writing to bucket.
func NewS3Store(client PutObjectAPI, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Bucket returns the target bucket.
func (s *S3Store) Bucket() string {
	return s.bucket
}

// Put uploads data as a JSON object.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"export-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}

// NewS3Client creates an S3 client from the default AWS configuration
// chain: environment, shared config and credentials files, SSO, and
// instance roles. A non-empty region overrides the resolved one.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}
