package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and state locations.
type Paths struct {
	OutputDir string `toml:"output_dir" env:"OUTPUT_DIR" validate:"required"`
	LogDir    string `toml:"log_dir" env:"LOG_DIR"`
	HistoryDB string `toml:"history_db" env:"HISTORY_DB"`
}

// Source describes where the full n-gram table is read from.
type Source struct {
	Path    string            `toml:"path" env:"PATH"`
	Format  string            `toml:"format" env:"FORMAT" validate:"omitempty,oneof=auto module json sqlite"`
	MaxSize datasize.ByteSize `toml:"max_size" env:"MAX_SIZE"`
}

// Export contains artifact naming and bookkeeping options.
type Export struct {
	FormatTag     string `toml:"format_tag" env:"FORMAT_TAG" validate:"required,max=32"`
	RecordHistory bool   `toml:"record_history" env:"RECORD_HISTORY"`
}

// Sink selects where built artifacts are delivered.
type Sink struct {
	Kind         string            `toml:"kind" env:"KIND" validate:"oneof=file stdout s3 minio none"`
	Overwrite    bool              `toml:"overwrite" env:"OVERWRITE"`
	MinFreeSpace datasize.ByteSize `toml:"min_free_space" env:"MIN_FREE_SPACE"`
}

// S3 contains settings for the AWS S3 sink. Credentials come from the
// standard AWS provider chain.
type S3 struct {
	Bucket string `toml:"bucket" env:"BUCKET"`
	Prefix string `toml:"prefix" env:"PREFIX"`
	Region string `toml:"region" env:"REGION"`
}

// Minio contains settings for S3-compatible object storage.
type Minio struct {
	Endpoint  string `toml:"endpoint" env:"ENDPOINT"`
	Bucket    string `toml:"bucket" env:"BUCKET"`
	Prefix    string `toml:"prefix" env:"PREFIX"`
	AccessKey string `toml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `toml:"secret_key" env:"SECRET_KEY"`
	Secure    bool   `toml:"secure" env:"SECURE"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"FORMAT" validate:"oneof=console json"`
	Level  string `toml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
}

// Config encapsulates all configuration values for ngramsubset.
//
// Configuration sections by subsystem:
//   - Paths: output directory, log directory, history database
//   - Source: location and format of the full n-gram table
//   - Export: format tag embedded in artifacts and history toggle
//   - Sink: delivery target selection
//   - S3, Minio: object storage targets
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths" envPrefix:"PATHS_"`
	Source  Source  `toml:"source" envPrefix:"SOURCE_"`
	Export  Export  `toml:"export" envPrefix:"EXPORT_"`
	Sink    Sink    `toml:"sink" envPrefix:"SINK_"`
	S3      S3      `toml:"s3" envPrefix:"S3_"`
	Minio   Minio   `toml:"minio" envPrefix:"MINIO_"`
	Logging Logging `toml:"logging" envPrefix:"LOGGING_"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Environment
// overrides are applied after the file. The returned config has all path
// fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ngramsubset.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a build writes into. The output
// directory is only needed by the file sink.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Sink.Kind == SinkFile {
		dirs = append(dirs, c.Paths.OutputDir)
	}
	if c.Export.RecordHistory && c.Paths.HistoryDB != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.HistoryDB))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
