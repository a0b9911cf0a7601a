package directory

import (
	"context"
)

// FileTreeTool lists the project tree through a Walker.
type FileTreeTool struct {
	walker       *Walker
	pathResolver pathResolver
}

// NewFileTreeTool creates a new FileTreeTool with injected dependencies.
func NewFileTreeTool(walker *Walker, pathResolver pathResolver) *FileTreeTool {
	if walker == nil {
		panic("walker is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &FileTreeTool{
		walker:       walker,
		pathResolver: pathResolver,
	}
}

// Run returns every file and directory below req.Path, relative to the project root,
// in pre-order with children sorted by name.
func (t *FileTreeTool) Run(ctx context.Context, req FileTreeRequest) (*FileTreeResponse, error) {
	start := req.Path
	if start == "" {
		start = "."
	}

	abs, err := t.pathResolver.Abs(start)
	if err != nil {
		return nil, err
	}

	entries := []string{}
	err = t.walker.Walk(ctx, abs, func(e Entry) error {
		entries = append(entries, e.RelPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &FileTreeResponse{Entries: entries}, nil
}
