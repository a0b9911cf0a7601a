package search

import (
	"context"
	"io"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/directory"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}

// treeWalker enumerates the project tree with directory pruning applied.
type treeWalker interface {
	Walk(ctx context.Context, startAbs string, fn directory.WalkFunc) error
}

// fileOpener opens files for streaming reads.
type fileOpener interface {
	Open(path string) (io.ReadCloser, error)
}
