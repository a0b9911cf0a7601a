// Package agent assembles the workspace tools around a single project root and
// exposes them both as typed Go methods and as named tools for a ToolManager.
package agent

import (
	"context"
	"fmt"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/directory"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/file"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/search"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/executor"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/fs"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/git"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/path"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/shell"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/workflow/toolmanager"
	"go.uber.org/zap"
)

// Tools is the set of operations an agent may perform inside one project root.
// All path arguments are relative to the root; paths that escape it are rejected.
type Tools struct {
	root     *path.Resolver
	config   *config.Config
	logger   *zap.Logger
	read     *file.ReadFileTool
	write    *file.WriteFileTool
	tree     *directory.FileTreeTool
	search   *search.SearchTool
	commands *shell.ShellTool
}

// New canonicalises projectRoot and wires every tool against it.
// A nil cfg uses config.DefaultConfig().
func New(projectRoot string, cfg *config.Config, logger *zap.Logger) (*Tools, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	canonicalRoot, err := path.CanonicaliseRoot(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalise project root: %w", err)
	}

	resolver := path.NewResolver(canonicalRoot)
	osFS := fs.NewOSFileSystem()
	commandExecutor := executor.NewOSCommandExecutor(cfg, logger)
	policy := shell.NewCommandPolicy(cfg.Tools.BlockedCommands, cfg.Tools.BlockedCommandMessage)
	skip := directory.NewSkipSet(cfg.Tools.SkipDirs...)

	var walker *directory.Walker
	if cfg.Tools.RespectGitignore {
		matcher, err := git.NewIgnoreMatcher(canonicalRoot, osFS)
		if err != nil {
			logger.Warn("gitignore disabled", zap.Error(err))
			walker = directory.NewWalker(canonicalRoot, osFS, skip, nil, logger)
		} else {
			walker = directory.NewWalker(canonicalRoot, osFS, skip, matcher, logger)
		}
	} else {
		walker = directory.NewWalker(canonicalRoot, osFS, skip, nil, logger)
	}

	logger.Debug("agent tools ready",
		zap.String("root", canonicalRoot),
		zap.Strings("skip_dirs", skip.Names()),
		zap.Bool("respect_gitignore", cfg.Tools.RespectGitignore),
	)

	return &Tools{
		root:     resolver,
		config:   cfg,
		logger:   logger,
		read:     file.NewReadFileTool(osFS, resolver, cfg),
		write:    file.NewWriteFileTool(osFS, resolver, cfg, logger),
		tree:     directory.NewFileTreeTool(walker, resolver),
		search:   search.NewSearchTool(walker, osFS, resolver, cfg, logger),
		commands: shell.NewShellTool(commandExecutor, osFS, resolver, policy, cfg, logger),
	}, nil
}

// Root returns the canonical project root.
func (t *Tools) Root() string {
	return t.root.Root()
}

// ReadFile returns the UTF-8 content of the file at filepath.
func (t *Tools) ReadFile(ctx context.Context, filepath string) (string, error) {
	resp, err := t.read.Run(ctx, file.ReadFileRequest{Path: filepath})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// WriteFile replaces the content of filepath, creating parent directories as needed.
func (t *Tools) WriteFile(ctx context.Context, filepath, content string) (*file.WriteFileResponse, error) {
	return t.write.Run(ctx, file.WriteFileRequest{Path: filepath, Content: content})
}

// SeeFileTree lists every file and directory under rootDir relative to the
// project root, skipping the configured directories. An empty rootDir means ".".
func (t *Tools) SeeFileTree(ctx context.Context, rootDir string) ([]string, error) {
	resp, err := t.tree.Run(ctx, directory.FileTreeRequest{Path: rootDir})
	if err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// ExecuteBashCommand runs command through the configured shell. cwd is relative
// to the project root; empty means the root itself.
func (t *Tools) ExecuteBashCommand(ctx context.Context, command, cwd string) (*shell.CommandResult, error) {
	return t.commands.Run(ctx, shell.ShellRequest{Command: command, WorkingDir: cwd})
}

// SearchInFiles returns every line under rootDir that contains pattern.
func (t *Tools) SearchInFiles(ctx context.Context, pattern, rootDir string) (*search.SearchResponse, error) {
	return t.search.Run(ctx, search.SearchRequest{Pattern: pattern, Path: rootDir})
}

// NewToolManager registers the five workspace tools with a ToolManager.
func (t *Tools) NewToolManager() (*toolmanager.ToolManager, error) {
	return toolmanager.NewToolManager(t.logger,
		newReadFileAdapter(t.read),
		newWriteFileAdapter(t.write),
		newFileTreeAdapter(t.tree),
		newShellAdapter(t.commands),
		newSearchAdapter(t.search),
	)
}
