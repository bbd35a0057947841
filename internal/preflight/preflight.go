package preflight

import (
	"context"
	"path/filepath"

	"ngramsubset/internal/config"
	"ngramsubset/internal/sink"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Option overrides how remote clients are created.
type Option func(*runner)

type runner struct {
	s3Client    HeadBucketAPI
	minioClient BucketExistsAPI
}

// WithS3Client uses client instead of one built from the AWS default chain.
func WithS3Client(client HeadBucketAPI) Option {
	return func(r *runner) { r.s3Client = client }
}

// WithMinioClient uses client instead of dialing minio.endpoint.
func WithMinioClient(client BucketExistsAPI) Option {
	return func(r *runner) { r.minioClient = client }
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts ...Option) []Result {
	if cfg == nil {
		return nil
	}
	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}

	results := []Result{
		CheckSource(cfg.Source.Path, cfg.Source.MaxSize),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if cfg.Export.RecordHistory {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.Paths.HistoryDB)))
	}

	switch cfg.Sink.Kind {
	case config.SinkFile:
		results = append(results,
			CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
			CheckFreeSpace("Output free space", cfg.Paths.OutputDir, cfg.Sink.MinFreeSpace),
		)
	case config.SinkS3:
		client := r.s3Client
		if client == nil {
			c, err := sink.NewS3Client(ctx, cfg.S3.Region)
			if err != nil {
				results = append(results, Result{Name: s3CheckName, Detail: err.Error()})
				break
			}
			client = c
		}
		results = append(results, CheckS3Bucket(ctx, client, cfg.S3.Bucket))
	case config.SinkMinio:
		client := r.minioClient
		if client == nil {
			c, err := sink.DialMinio(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Secure)
			if err != nil {
				results = append(results, Result{Name: minioCheckName, Detail: err.Error()})
				break
			}
			client = c
		}
		results = append(results, CheckMinioBucket(ctx, client, cfg.Minio.Bucket))
	}

	return results
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
