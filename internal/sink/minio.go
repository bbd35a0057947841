package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioPutObjectAPI is the subset of *minio.Client used by MinioSink.
type MinioPutObjectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioSink uploads artifacts to S3-compatible storage.
type MinioSink struct {
	client MinioPutObjectAPI
	bucket string
	prefix string
}

// NewMinioSink wraps an existing client.
func NewMinioSink(client MinioPutObjectAPI, bucket, prefix string) *MinioSink {
	return &MinioSink{client: client, bucket: bucket, prefix: prefix}
}

// DialMinio creates a client for endpoint with static credentials.
func DialMinio(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

// Name identifies the sink in logs and history.
func (s *MinioSink) Name() string { return "minio" }

func (s *MinioSink) key(filename string) string {
	return path.Join(s.prefix, filename)
}

// Location returns bucket/key.
func (s *MinioSink) Location(filename string) string {
	return s.bucket + "/" + s.key(filename)
}

// Emit uploads data as a single object.
func (s *MinioSink) Emit(ctx context.Context, data []byte, filename, mimeType string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	opts := minio.PutObjectOptions{ContentType: mimeType}
	if _, err := s.client.PutObject(ctx, s.bucket, s.key(filename), bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("put %s: %w", s.Location(filename), err)
	}
	return nil
}
