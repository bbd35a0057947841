package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFile writes data to path on fsys with default permissions (0o644),
// replacing any existing file.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	return WriteFileVerified(fsys, path, data, 0o644)
}

// WriteFileVerified writes data to a temporary sibling of path, re-reads it
// for SHA256 + size verification, then renames it into place. The
// temporary file is removed on any failure, so path either keeps its old
// content or holds exactly data.
func WriteFileVerified(fsys afero.Fs, path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fsys.Remove(tmpName) }

	written, err := tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if written != len(data) {
		cleanup()
		return fmt.Errorf("write size mismatch: expected %d bytes, wrote %d bytes", len(data), written)
	}

	if err := verify(fsys, tmpName, data); err != nil {
		cleanup()
		return err
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func verify(fsys afero.Fs, path string, data []byte) error {
	in, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	hasher := sha256.New()
	read, err := io.Copy(hasher, in)
	if err != nil {
		return err
	}
	if read != int64(len(data)) {
		return fmt.Errorf("copy size mismatch: source %d bytes, written %d bytes", len(data), read)
	}
	want := sha256.Sum256(data)
	if !bytes.Equal(hasher.Sum(nil), want[:]) {
		return fmt.Errorf("write hash mismatch: file corrupted during write")
	}
	return nil
}
