package source

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type codec struct {
	name string
	open func(io.Reader) (io.Reader, func(), error)
}

var plain = codec{
	open: func(r io.Reader) (io.Reader, func(), error) { return r, func() {}, nil },
}

var codecs = map[string]codec{
	".gz": {
		name: "gzip",
		open: func(r io.Reader) (io.Reader, func(), error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, func() { _ = zr.Close() }, nil
		},
	},
	".zst": {
		name: "zstd",
		open: func(r io.Reader) (io.Reader, func(), error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, zr.Close, nil
		},
	},
	".lz4": {
		name: "lz4",
		open: func(r io.Reader) (io.Reader, func(), error) {
			return lz4.NewReader(r), func() {}, nil
		},
	},
}

// compressionFor picks a codec from the outer extension and returns the
// name with that extension removed.
func compressionFor(path string) (codec, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := codecs[ext]; ok {
		return c, strings.TrimSuffix(path, filepath.Ext(path))
	}
	if ext == ".zstd" {
		return codecs[".zst"], strings.TrimSuffix(path, filepath.Ext(path))
	}
	return plain, path
}
