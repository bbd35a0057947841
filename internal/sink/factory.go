package sink

import (
	"context"
	"fmt"
	"io"

	"ngramsubset/internal/config"
)

// New builds the sink selected by cfg.Sink.Kind. stdout is used by the
// stdout sink.
func New(ctx context.Context, cfg *config.Config, stdout io.Writer) (Sink, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sink: nil config")
	}
	switch cfg.Sink.Kind {
	case config.SinkFile, "":
		return NewFileSink(cfg.Paths.OutputDir,
			WithOverwrite(cfg.Sink.Overwrite),
			WithMinFreeSpace(cfg.Sink.MinFreeSpace),
		), nil
	case config.SinkStdout:
		return NewStdoutSink(stdout), nil
	case config.SinkS3:
		s3Sink, err := NewS3SinkFromDefaults(ctx, cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.Region)
		if err != nil {
			return nil, err
		}
		return s3Sink, nil
	case config.SinkMinio:
		client, err := DialMinio(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Secure)
		if err != nil {
			return nil, err
		}
		return NewMinioSink(client, cfg.Minio.Bucket, cfg.Minio.Prefix), nil
	case config.SinkNone:
		return NopSink{}, nil
	default:
		return nil, fmt.Errorf("sink: unsupported kind %q", cfg.Sink.Kind)
	}
}
