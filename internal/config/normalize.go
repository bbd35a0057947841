package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/caarlos0/env/v11"
)

func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeSink()
	c.normalizeObjectStorage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() error {
	var err error
	if c.Source.Path, err = expandPath(strings.TrimSpace(c.Source.Path)); err != nil {
		return fmt.Errorf("source.path: %w", err)
	}
	c.Source.Format = strings.ToLower(strings.TrimSpace(c.Source.Format))
	switch c.Source.Format {
	case "":
		c.Source.Format = defaultSourceFormat
	case "js", "javascript":
		c.Source.Format = SourceModule
	case "db", "sqlite3":
		c.Source.Format = SourceSQLite
	}
	return nil
}

func (c *Config) normalizeExport() {
	c.Export.FormatTag = strings.TrimSpace(c.Export.FormatTag)
	if c.Export.FormatTag == "" {
		c.Export.FormatTag = defaultFormatTag
	}
}

func (c *Config) normalizeSink() {
	c.Sink.Kind = strings.ToLower(strings.TrimSpace(c.Sink.Kind))
	if c.Sink.Kind == "" {
		c.Sink.Kind = defaultSinkKind
	}
}

func (c *Config) normalizeObjectStorage() {
	c.S3.Bucket = strings.TrimSpace(c.S3.Bucket)
	c.S3.Prefix = cleanPrefix(c.S3.Prefix)
	c.S3.Region = strings.TrimSpace(c.S3.Region)
	if c.S3.Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.S3.Region = strings.TrimSpace(value)
		}
	}

	c.Minio.Endpoint = strings.TrimSpace(c.Minio.Endpoint)
	c.Minio.Bucket = strings.TrimSpace(c.Minio.Bucket)
	c.Minio.Prefix = cleanPrefix(c.Minio.Prefix)
	if c.Minio.AccessKey == "" {
		if value, ok := os.LookupEnv("MINIO_ACCESS_KEY"); ok {
			c.Minio.AccessKey = strings.TrimSpace(value)
		}
	}
	if c.Minio.SecretKey == "" {
		if value, ok := os.LookupEnv("MINIO_SECRET_KEY"); ok {
			c.Minio.SecretKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}

func cleanPrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return path.Clean(prefix)
}
