package shell

import (
	"context"
	"os"
	"time"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/executor"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Rel(path string) (string, error)
}

// dirStater checks the working directory before a command is spawned.
type dirStater interface {
	Stat(path string) (os.FileInfo, error)
}

// commandExecutor defines the interface for executing shell commands.
type commandExecutor interface {
	RunWithTimeout(ctx context.Context, cmd []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}
