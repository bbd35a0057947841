package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"ngramsubset/internal/fileutil"
)

const lockFileName = ".ngramsubset.lock"

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (free uint64, err error)

// FileOption configures a FileSink.
type FileOption func(*FileSink)

// WithOverwrite allows replacing an existing artifact of the same name.
func WithOverwrite(overwrite bool) FileOption {
	return func(s *FileSink) { s.overwrite = overwrite }
}

// WithMinFreeSpace refuses writes when the target filesystem has less free
// space than min plus the artifact size.
func WithMinFreeSpace(min datasize.ByteSize) FileOption {
	return func(s *FileSink) { s.minFree = min.Bytes() }
}

// WithFs swaps the filesystem, typically for afero.NewMemMapFs in tests.
func WithFs(fsys afero.Fs) FileOption {
	return func(s *FileSink) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

func withStatfs(fn statfsFunc) FileOption {
	return func(s *FileSink) { s.statfs = fn }
}

// FileSink writes artifacts into a directory.
type FileSink struct {
	fs        afero.Fs
	dir       string
	overwrite bool
	minFree   uint64
	statfs    statfsFunc
}

// NewFileSink returns a sink writing into dir on the OS filesystem unless
// overridden with WithFs.
func NewFileSink(dir string, opts ...FileOption) *FileSink {
	s := &FileSink{
		fs:     afero.NewOsFs(),
		dir:    dir,
		statfs: realStatfs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the sink in logs and history.
func (s *FileSink) Name() string { return "file" }

// Location returns the path the artifact is written to.
func (s *FileSink) Location(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Emit writes data to dir/filename atomically. On the OS filesystem an
// advisory lock serializes concurrent writers sharing the directory.
func (s *FileSink) Emit(ctx context.Context, data []byte, filename, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateFilename(filename); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if _, osBacked := s.fs.(*afero.OsFs); osBacked {
		lock := flock.New(filepath.Join(s.dir, lockFileName))
		locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
		if err != nil {
			return fmt.Errorf("lock output directory: %w", err)
		}
		if !locked {
			return fmt.Errorf("lock output directory: %s is busy", s.dir)
		}
		defer func() { _ = lock.Unlock() }()
	}

	if err := s.checkFreeSpace(len(data)); err != nil {
		return err
	}

	target := s.Location(filename)
	if !s.overwrite {
		_, err := s.fs.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("%s: %w", target, ErrExists)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("stat %s: %w", target, err)
		}
	}

	if err := fileutil.WriteFileVerified(s.fs, target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func (s *FileSink) checkFreeSpace(size int) error {
	if s.minFree == 0 || s.statfs == nil {
		return nil
	}
	free, err := s.statfs(s.dir)
	if err != nil {
		return fmt.Errorf("stat filesystem: %w", err)
	}
	need := s.minFree + uint64(size)
	if free < need {
		return fmt.Errorf("insufficient free space in %s: %s available, %s required",
			s.dir, datasize.ByteSize(free).HumanReadable(), datasize.ByteSize(need).HumanReadable())
	}
	return nil
}
