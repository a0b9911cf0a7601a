package search

// SearchRequest looks for a literal substring in every file under Path.
// An empty Path means the project root.
type SearchRequest struct {
	Pattern string `mapstructure:"pattern" json:"pattern"`
	Path    string `mapstructure:"root_dir" json:"root_dir,omitempty"`
}

// Match is a single matching line. LineNumber is 1-based and counted per file.
// Line has surrounding whitespace trimmed; matching is done on the untrimmed line.
type Match struct {
	Path       string `json:"path"`
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

// SearchResponse contains the result of a search.
type SearchResponse struct {
	Matches []Match `json:"matches"`
	// SkippedFiles counts files that could not be opened or decoded as UTF-8 text.
	SkippedFiles int `json:"skipped_files"`
}
