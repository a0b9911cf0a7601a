package search

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/directory"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// SearchTool handles literal content searches across the project tree.
type SearchTool struct {
	walker       treeWalker
	fs           fileOpener
	pathResolver pathResolver
	config       *config.Config
	logger       *zap.Logger
}

// NewSearchTool creates a new SearchTool with injected dependencies.
func NewSearchTool(
	walker treeWalker,
	fs fileOpener,
	pathResolver pathResolver,
	cfg *config.Config,
	logger *zap.Logger,
) *SearchTool {
	if walker == nil {
		panic("walker is required")
	}
	if fs == nil {
		panic("fs is required")
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
	return &SearchTool{
		walker:       walker,
		fs:           fs,
		pathResolver: pathResolver,
		config:       cfg,
		logger:       logger,
	}
}

// Run scans every regular file under req.Path for lines containing req.Pattern.
//
// A file that cannot be opened, is not valid UTF-8, or has a line longer than
// the configured scan limit contributes no matches and is counted in
// SkippedFiles; the search continues with the next file. Symlinks are not followed.
// An empty pattern matches every line.
func (t *SearchTool) Run(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	start := req.Path
	if start == "" {
		start = "."
	}

	abs, err := t.pathResolver.Abs(start)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{Matches: []Match{}}
	err = t.walker.Walk(ctx, abs, func(e directory.Entry) error {
		if !e.Type.IsRegular() {
			return nil
		}

		matches, err := t.scanFile(e, req.Pattern)
		if err != nil {
			t.logger.Debug("skipping file", zap.String("path", e.RelPath), zap.Error(err))
			resp.SkippedFiles++
			return nil
		}
		resp.Matches = append(resp.Matches, matches...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// scanFile returns the matches of a single file. Matches are only returned
// when the whole file was read without error.
func (t *SearchTool) scanFile(e directory.Entry, pattern string) ([]Match, error) {
	f, err := t.fs.Open(e.AbsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := transform.NewReader(f, encoding.UTF8Validator)
	scanner := bufio.NewScanner(r)
	scanner.Split(scanLines)
	maxToken := t.config.Tools.MaxScanTokenSize
	scanner.Buffer(make([]byte, 0, min(64*1024, maxToken)), maxToken)

	var matches []Match
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.Contains(line, pattern) {
			matches = append(matches, Match{
				Path:       e.RelPath,
				LineNumber: lineNum,
				Line:       strings.TrimSpace(line),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone '\r'.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}
		// A '\r' at the end of the buffer may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
