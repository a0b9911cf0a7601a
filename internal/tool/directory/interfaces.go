package directory

import (
	"os"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}

// dirReader defines the filesystem operations needed to walk a tree.
type dirReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
}

// ignoreMatcher reports whether a root-relative path is excluded by .gitignore.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
