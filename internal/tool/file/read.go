package file

import (
	"context"
	"errors"
	"os"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileReader
	pathResolver pathResolver
	config       *config.Config
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(
	fileOps fileReader,
	pathResolver pathResolver,
	cfg *config.Config,
) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ReadFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run reads a whole file from the workspace and returns it as UTF-8 text.
// Invalid UTF-8 is an error, not replaced.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req ReadFileRequest) (*ReadFileResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}
	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileMissingError{Path: rel}
		}
		return nil, &StatError{Path: rel, Cause: err}
	}
	if info.IsDir() {
		return nil, &IsDirectoryError{Path: rel}
	}

	content, err := t.fileOps.ReadFile(abs, t.config.Tools.MaxFileSize)
	if err != nil {
		return nil, &ReadError{Path: rel, Cause: err}
	}

	if n, ok := validUTF8(content); !ok {
		return nil, &DecodeError{Path: rel, Offset: n}
	}

	return &ReadFileResponse{
		Path:    rel,
		Size:    int64(len(content)),
		Content: string(content),
	}, nil
}

// validUTF8 reports whether b is valid UTF-8 and, if not, the offset of the first invalid byte.
func validUTF8(b []byte) (int, bool) {
	_, n, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return n, false
	}
	return n, true
}
