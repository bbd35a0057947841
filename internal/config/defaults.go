package config

import "github.com/c2h5oh/datasize"

// Sink kinds accepted by sink.kind.
const (
	SinkFile   = "file"
	SinkStdout = "stdout"
	SinkS3     = "s3"
	SinkMinio  = "minio"
	SinkNone   = "none"
)

// Source formats accepted by source.format.
const (
	SourceAuto   = "auto"
	SourceModule = "module"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

const (
	defaultConfigPath   = "~/.config/ngramsubset/config.toml"
	defaultOutputDir    = "."
	defaultLogDir       = "~/.local/share/ngramsubset/logs"
	defaultHistoryDB    = "~/.local/share/ngramsubset/history.db"
	defaultSourceFormat = SourceAuto
	defaultSourceMax    = 256 * datasize.MB
	defaultFormatTag    = "M60"
	defaultSinkKind     = SinkFile
	defaultMinioPrefix  = "ngrams"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	envPrefix           = "NGRAMSUBSET_"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Source: Source{
			Format:  defaultSourceFormat,
			MaxSize: defaultSourceMax,
		},
		Export: Export{
			FormatTag:     defaultFormatTag,
			RecordHistory: true,
		},
		Sink: Sink{
			Kind: defaultSinkKind,
		},
		Minio: Minio{
			Prefix: defaultMinioPrefix,
			Secure: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
