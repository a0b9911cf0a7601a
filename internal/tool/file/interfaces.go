package file

import "os"

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Rel(path string) (string, error)
}

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, maxSize int64) ([]byte, error)
}

// fileWriter defines the minimal filesystem operations needed for writing files.
// Reading is needed to diff against the previous content.
type fileWriter interface {
	fileReader
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}
