package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3PutObjectAPI is the subset of *s3.Client used by S3Sink.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads artifacts to an S3 bucket under an optional key prefix.
type S3Sink struct {
	client S3PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink wraps an existing client.
func NewS3Sink(client S3PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds a client from the default AWS credential chain. An
// empty region defers to the chain as well.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// NewS3SinkFromDefaults is NewS3Sink over NewS3Client.
func NewS3SinkFromDefaults(ctx context.Context, bucket, prefix, region string) (*S3Sink, error) {
	client, err := NewS3Client(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewS3Sink(client, bucket, prefix), nil
}

// Name identifies the sink in logs and history.
func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) key(filename string) string {
	return path.Join(s.prefix, filename)
}

// Location returns the s3:// URI of the object.
func (s *S3Sink) Location(filename string) string {
	return "s3://" + s.bucket + "/" + s.key(filename)
}

// Emit uploads data as a single object.
func (s *S3Sink) Emit(ctx context.Context, data []byte, filename, mimeType string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(filename)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", s.Location(filename), err)
	}
	return nil
}
