package fs

import (
	"io"
	"os"
	"path/filepath"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following symlinks.
func (fs *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// ReadFile reads the whole file, refusing files larger than maxSize bytes.
// A maxSize of 0 disables the limit.
func (fs *OSFileSystem) ReadFile(path string, maxSize int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, &TooLargeError{Path: path, Size: info.Size(), Limit: maxSize}
	}

	// The size can change between Stat and Read, so the limit is enforced on the stream too.
	var r io.Reader = file
	if maxSize > 0 {
		r = io.LimitReader(file, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, &TooLargeError{Path: path, Size: int64(len(content)), Limit: maxSize}
	}
	return content, nil
}

// Open opens a file for streaming reads.
func (fs *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ReadDir lists the entries of a directory sorted by name.
func (fs *OSFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// If the process crashes mid-write, the original file remains intact.
// The temp file is created in the same directory as the target so the rename stays on one filesystem.
//
// An existing symlink is written through: its target is replaced and the link kept.
// An existing regular file must be writable by the caller, as with a plain open for writing.
func (fs *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	path, err := writeTarget(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return &TempSyncError{Path: tmpPath, Cause: err}
	}

	// Close file before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempCloseError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	// CreateTemp uses 0600; set the final mode before the file becomes visible.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return &ChmodError{Path: tmpPath, Mode: perm, Cause: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	return nil
}

// writeTarget returns the file a write to path replaces.
// A dangling symlink is replaced itself rather than followed.
func writeTarget(path string) (string, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		return path, nil
	}

	target := path
	if linfo.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return path, nil
		}
		target = resolved
	}

	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return target, nil
	}

	// Opening without O_TRUNC checks permission and leaves the content alone.
	f, err := os.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return "", &NotWritableError{Path: target, Cause: err}
	}
	_ = f.Close()
	return target, nil
}

// EnsureDirs creates parent directories recursively if they don't exist.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}
