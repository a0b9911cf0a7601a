package file

// ReadFileRequest reads a whole file relative to the project root.
type ReadFileRequest struct {
	Path string `mapstructure:"filepath" json:"filepath"`
}

// ReadFileResponse contains the result of a ReadFile operation.
type ReadFileResponse struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// WriteFileRequest replaces (or creates) a file relative to the project root.
type WriteFileRequest struct {
	Path    string `mapstructure:"filepath" json:"filepath"`
	Content string `mapstructure:"content" json:"content"`
}

// WriteFileResponse contains the result of a WriteFile operation.
type WriteFileResponse struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytes_written"`
	Created      bool   `json:"created"`
	Diff         string `json:"diff,omitempty"`
	AddedLines   int    `json:"added_lines"`
	RemovedLines int    `json:"removed_lines"`
}
