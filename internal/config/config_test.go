package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/pelletier/go-toml/v2"

	"ngramsubset/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "ngramsubset", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "ngramsubset", "history.db")
	if cfg.Paths.HistoryDB != wantHistory {
		t.Fatalf("unexpected history db: got %q want %q", cfg.Paths.HistoryDB, wantHistory)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Sink.Kind != config.SinkFile {
		t.Fatalf("unexpected sink kind: got %q want %q", cfg.Sink.Kind, config.SinkFile)
	}
	if cfg.Export.FormatTag != "M60" {
		t.Fatalf("unexpected format tag: got %q want %q", cfg.Export.FormatTag, "M60")
	}
	if !cfg.Export.RecordHistory {
		t.Fatal("expected history recording enabled by default")
	}
	if cfg.Source.Format != config.SourceAuto {
		t.Fatalf("unexpected source format: got %q", cfg.Source.Format)
	}
	if cfg.Source.MaxSize != 256*datasize.MB {
		t.Fatalf("unexpected source max size: %v", cfg.Source.MaxSize)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "ngramsubset.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Export struct {
			FormatTag string `toml:"format_tag"`
		} `toml:"export"`
		Sink struct {
			Kind         string `toml:"kind"`
			MinFreeSpace string `toml:"min_free_space"`
		} `toml:"sink"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Export.FormatTag = " L60 "
	custom.Sink.Kind = "STDOUT"
	custom.Sink.MinFreeSpace = "10MB"
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Warning"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != custom.Paths.OutputDir {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, custom.Paths.OutputDir)
	}
	if cfg.Export.FormatTag != "L60" {
		t.Fatalf("expected trimmed format tag, got %q", cfg.Export.FormatTag)
	}
	if cfg.Sink.Kind != config.SinkStdout {
		t.Fatalf("expected lowercased sink kind, got %q", cfg.Sink.Kind)
	}
	if cfg.Sink.MinFreeSpace != 10*datasize.MB {
		t.Fatalf("unexpected min free space: %v", cfg.Sink.MinFreeSpace)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ngramsubset.toml")
	if err := os.WriteFile(configPath, []byte("[sink]\nkindd = \"file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "ngramsubset.toml")
	if err := os.WriteFile(configPath, []byte("[sink]\nkind = \"file\"\n[export]\nformat_tag = \"M60\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NGRAMSUBSET_SINK_KIND", "none")
	t.Setenv("NGRAMSUBSET_EXPORT_FORMAT_TAG", "S60")
	t.Setenv("NGRAMSUBSET_SOURCE_MAX_SIZE", "1MB")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Sink.Kind != config.SinkNone {
		t.Fatalf("expected sink kind from env, got %q", cfg.Sink.Kind)
	}
	if cfg.Export.FormatTag != "S60" {
		t.Fatalf("expected format tag from env, got %q", cfg.Export.FormatTag)
	}
	if cfg.Source.MaxSize != datasize.MB {
		t.Fatalf("expected max size from env, got %v", cfg.Source.MaxSize)
	}
}

func TestMinioCredentialFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NGRAMSUBSET_SINK_KIND", "minio")
	t.Setenv("NGRAMSUBSET_MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("NGRAMSUBSET_MINIO_BUCKET", "eld")
	t.Setenv("MINIO_ACCESS_KEY", "access")
	t.Setenv("MINIO_SECRET_KEY", "secret")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Minio.AccessKey != "access" || cfg.Minio.SecretKey != "secret" {
		t.Fatalf("expected credentials from env, got %q/%q", cfg.Minio.AccessKey, cfg.Minio.SecretKey)
	}
	if cfg.Minio.Prefix != "ngrams" {
		t.Fatalf("unexpected minio prefix: %q", cfg.Minio.Prefix)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "format_tag = \"M60\"") {
		t.Fatalf("sample config missing format tag: %s", contents)
	}

	cfg := config.Default()
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Source.MaxSize != 256*datasize.MB {
		t.Fatalf("unexpected sample max size: %v", cfg.Source.MaxSize)
	}
	if cfg.Sink.Kind != config.SinkFile {
		t.Fatalf("unexpected sample sink kind: %q", cfg.Sink.Kind)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown sink",
			mutate: func(c *config.Config) { c.Sink.Kind = "ftp" },
			want:   "sink.kind",
		},
		{
			name:   "unknown source format",
			mutate: func(c *config.Config) { c.Source.Format = "csv" },
			want:   "source.format",
		},
		{
			name:   "empty format tag",
			mutate: func(c *config.Config) { c.Export.FormatTag = "" },
			want:   "export.format_tag",
		},
		{
			name:   "bad log level",
			mutate: func(c *config.Config) { c.Logging.Level = "trace" },
			want:   "logging.level",
		},
		{
			name:   "s3 without bucket",
			mutate: func(c *config.Config) { c.Sink.Kind = config.SinkS3 },
			want:   "s3.bucket",
		},
		{
			name: "minio without credentials",
			mutate: func(c *config.Config) {
				c.Sink.Kind = config.SinkMinio
				c.Minio.Endpoint = "localhost:9000"
				c.Minio.Bucket = "eld"
			},
			want: "minio.access_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error: got %q want mention of %q", err.Error(), tt.want)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "state", "history.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.HistoryDB)} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}
