package agent

import (
	"context"
	"fmt"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/directory"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/file"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/search"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/shell"
)

// Tool names as seen by the model.
const (
	ReadFileName           = "read_file"
	WriteFileName          = "write_file"
	SeeFileTreeName        = "see_file_tree"
	ExecuteBashCommandName = "execute_bash_command"
	SearchInFilesName      = "search_in_files"
)

// runFunc is the Run method of a tool with typed request and response.
type runFunc[Req, Resp any] func(context.Context, Req) (*Resp, error)

// baseAdapter exposes a typed tool through the ToolManager's untyped interface.
// The manager decodes arguments into the value returned by Input.
type baseAdapter[Req, Resp any] struct {
	declaration tool.Declaration
	run         runFunc[Req, Resp]
}

func newBaseAdapter[Req, Resp any](decl tool.Declaration, run runFunc[Req, Resp]) *baseAdapter[Req, Resp] {
	return &baseAdapter[Req, Resp]{declaration: decl, run: run}
}

func (b *baseAdapter[Req, Resp]) Name() string                  { return b.declaration.Name }
func (b *baseAdapter[Req, Resp]) Declaration() tool.Declaration { return b.declaration }
func (b *baseAdapter[Req, Resp]) Input() any                    { return new(Req) }

func (b *baseAdapter[Req, Resp]) Execute(ctx context.Context, input any) (any, error) {
	req, ok := input.(*Req)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected input type %T", b.declaration.Name, input)
	}
	resp, err := b.run(ctx, *req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func newReadFileAdapter(t *file.ReadFileTool) *baseAdapter[file.ReadFileRequest, file.ReadFileResponse] {
	return newBaseAdapter(tool.Declaration{
		Name:        ReadFileName,
		Description: "Read and return the contents of a file at the given relative filepath.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"filepath": {
					Type:        tool.TypeString,
					Description: "Path to the file, relative to the project directory.",
				},
			},
			Required:             []string{"filepath"},
			AdditionalProperties: tool.Closed(),
		},
	}, t.Run)
}

func newWriteFileAdapter(t *file.WriteFileTool) *baseAdapter[file.WriteFileRequest, file.WriteFileResponse] {
	return newBaseAdapter(tool.Declaration{
		Name:        WriteFileName,
		Description: "Write the given content to a file at the given relative filepath, creating directories as needed.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"filepath": {
					Type:        tool.TypeString,
					Description: "Path to the file, relative to the project directory.",
				},
				"content": {
					Type:        tool.TypeString,
					Description: "Content to write to the file.",
				},
			},
			Required:             []string{"filepath", "content"},
			AdditionalProperties: tool.Closed(),
		},
	}, t.Run)
}

func newFileTreeAdapter(t *directory.FileTreeTool) *baseAdapter[directory.FileTreeRequest, directory.FileTreeResponse] {
	return newBaseAdapter(tool.Declaration{
		Name: SeeFileTreeName,
		Description: "Return a list of all files and directories under the given root directory, " +
			"relative to the project directory.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"root_dir": {
					Type:        tool.TypeString,
					Description: `Root directory to list from, relative to the project directory. Defaults to ".".`,
				},
			},
			AdditionalProperties: tool.Closed(),
		},
	}, t.Run)
}

func newShellAdapter(t *shell.ShellTool) *baseAdapter[shell.ShellRequest, shell.CommandResult] {
	return newBaseAdapter(tool.Declaration{
		Name: ExecuteBashCommandName,
		Description: "Execute a bash command in the shell and return its output, error, and exit code. " +
			"Blocks running the Django development server (runserver).",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"command": {
					Type:        tool.TypeString,
					Description: "The bash command to execute.",
				},
				"cwd": {
					Type:        tool.TypeString,
					Description: "Working directory to run the command in, relative to the project directory. Defaults to the project directory.",
				},
			},
			Required:             []string{"command"},
			AdditionalProperties: tool.Closed(),
		},
	}, t.Run)
}

func newSearchAdapter(t *search.SearchTool) *baseAdapter[search.SearchRequest, search.SearchResponse] {
	return newBaseAdapter(tool.Declaration{
		Name: SearchInFilesName,
		Description: "Search for a pattern in all files under the given root directory and return a list of matches " +
			"as (relative path, line number, line content).",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"pattern": {
					Type:        tool.TypeString,
					Description: "Literal text to search for in files.",
				},
				"root_dir": {
					Type:        tool.TypeString,
					Description: `Root directory to search from, relative to the project directory. Defaults to ".".`,
				},
			},
			Required:             []string{"pattern"},
			AdditionalProperties: tool.Closed(),
		},
	}, t.Run)
}
