package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/c2h5oh/datasize"

	"ngramsubset/internal/config"
	"ngramsubset/internal/language"
	"ngramsubset/internal/ngrams"
)

// ErrTooLarge reports a source exceeding the configured maximum size.
var ErrTooLarge = errors.New("source exceeds maximum size")

// ErrUnknownFormat reports a source whose format could not be determined.
var ErrUnknownFormat = errors.New("unknown source format")

var sqliteMagic = []byte("SQLite format 3\x00")

// Options controls how a source is read.
type Options struct {
	// Format is one of config.SourceAuto, SourceModule, SourceJSON, SourceSQLite.
	Format string
	// MaxSize bounds the decompressed size. Zero means unbounded.
	MaxSize datasize.ByteSize
}

// Dataset is a loaded full table plus whatever metadata the source carried.
type Dataset struct {
	Path   string
	Format string
	Table  ngrams.Table
	// Catalog is nil when the source carries no language list.
	Catalog *language.Catalog
	// Type is the module's type tag, empty for other formats.
	Type string
}

// Load reads path according to opts.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("source path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	codec, inner := compressionFor(path)
	reader, closeFn, err := codec.open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s stream: %w", codec.name, err)
	}
	defer closeFn()

	data, err := readBounded(reader, opts.MaxSize)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" || format == config.SourceAuto {
		format = detectFormat(inner, data)
	}

	ds := &Dataset{Path: path, Format: format}
	switch format {
	case config.SourceModule:
		err = loadModule(ds, data)
	case config.SourceJSON:
		err = loadJSON(ds, data)
	case config.SourceSQLite:
		err = loadSQLiteBytes(ctx, ds, path, codec.name == "", data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s source: %w", format, err)
	}
	return ds, nil
}

// Languages returns the dataset catalog, falling back to the built-in list.
func (d *Dataset) Languages() *language.Catalog {
	if d == nil || d.Catalog == nil {
		return language.Default()
	}
	return d.Catalog
}

func readBounded(r io.Reader, limit datasize.ByteSize) ([]byte, error) {
	if limit == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit.Bytes())+1))
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if uint64(len(data)) > limit.Bytes() {
		return nil, fmt.Errorf("%w (%s)", ErrTooLarge, limit.HumanReadable())
	}
	return data, nil
}

func detectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".js", ".mjs", ".cjs":
		return config.SourceModule
	case ".json":
		return config.SourceJSON
	case ".db", ".sqlite", ".sqlite3":
		return config.SourceSQLite
	}
	if bytes.HasPrefix(data, sqliteMagic) {
		return config.SourceSQLite
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\ufeff")))
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return config.SourceJSON
	}
	return config.SourceModule
}
