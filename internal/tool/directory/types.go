package directory

// FileTreeRequest lists every entry under Path, relative to the project root.
// An empty Path means the project root.
type FileTreeRequest struct {
	Path string `mapstructure:"root_dir" json:"root_dir,omitempty"`
}

// FileTreeResponse contains the result of a FileTree operation.
type FileTreeResponse struct {
	Entries []string `json:"entries"`
}
