package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"go.uber.org/zap"
)

// newFilePerm is the mode of files created by WriteFileTool.
const newFilePerm os.FileMode = 0o644

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps      fileWriter
	pathResolver pathResolver
	config       *config.Config
	logger       *zap.Logger
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(
	fileOps fileWriter,
	pathResolver pathResolver,
	cfg *config.Config,
	logger *zap.Logger,
) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriteFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
		logger:       logger,
	}
}

// Run replaces the content of a file in the workspace, creating it and any missing
// parent directories if needed. The write is atomic. An existing file keeps its
// permission bits.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req WriteFileRequest) (*WriteFileResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}
	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return nil, err
	}

	perm := newFilePerm
	created := true
	var oldContent string

	info, err := t.fileOps.Stat(abs)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, &IsDirectoryError{Path: rel}
		}
		created = false
		perm = info.Mode().Perm()
		oldContent = t.previousContent(abs, rel)
	case errors.Is(err, os.ErrNotExist):
		parentDir := filepath.Dir(abs)
		if err := t.fileOps.EnsureDirs(parentDir); err != nil {
			return nil, &EnsureDirsError{Path: parentDir, Cause: err}
		}
	default:
		return nil, &StatError{Path: rel, Cause: err}
	}

	contentBytes := []byte(req.Content)
	if err := t.fileOps.WriteFileAtomic(abs, contentBytes, perm); err != nil {
		return nil, &WriteError{Path: rel, Cause: err}
	}

	diff, added, removed := computeUnifiedDiff(rel, oldContent, req.Content)

	return &WriteFileResponse{
		Path:         rel,
		BytesWritten: len(contentBytes),
		Created:      created,
		Diff:         diff,
		AddedLines:   added,
		RemovedLines: removed,
	}, nil
}

// previousContent returns the current text of the file for diffing.
// Unreadable or non-UTF-8 content diffs as empty; the write still proceeds.
func (t *WriteFileTool) previousContent(abs, rel string) string {
	content, err := t.fileOps.ReadFile(abs, t.config.Tools.MaxFileSize)
	if err != nil {
		t.logger.Debug("previous content unavailable for diff", zap.String("path", rel), zap.Error(err))
		return ""
	}
	if _, ok := validUTF8(content); !ok {
		return ""
	}
	return string(content)
}

func computeUnifiedDiff(filename, oldContent, newContent string) (diff string, added, removed int) {
	if oldContent == newContent {
		return "", 0, 0
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(oldContent),
		B:        splitLines(newContent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	diff, _ = difflib.GetUnifiedDiffString(ud)

	// Count added/removed lines
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return diff, added, removed
}

// splitLines splits s into newline-terminated lines. Unlike difflib.SplitLines
// it yields no lines for empty input and no phantom trailing line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
