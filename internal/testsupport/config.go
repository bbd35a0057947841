package testsupport

import (
	"path/filepath"
	"testing"

	"ngramsubset/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSink selects the sink kind on the test config.
func WithSink(kind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sink.Kind = kind
	}
}

// WithFormatTag overrides the export format tag.
func WithFormatTag(tag string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.FormatTag = tag
	}
}

// WithSource writes a sample data module into the temp directory and points
// source.path at it.
func WithSource() ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "ngramsM60.js")
		WriteModule(b.t, path)
		b.cfg.Source.Path = path
	}
}

// WithoutHistory disables the export ledger.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.RecordHistory = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
